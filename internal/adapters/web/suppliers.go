package web

import (
	"fmt"
	"net/http"
	"time"

	"curtain-pos/internal/app"
	"curtain-pos/internal/core"

	"github.com/go-chi/chi/v5"
)

// ── Suppliers ─────────────────────────────────────────────────────────────────

func (h *Handler) apiListSuppliers(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListSuppliers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) apiCreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req app.CreateSupplierRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.CreateSupplier(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, res)
}

// apiListSupplierBills lists bills of ?supplierId=, or all bills.
func (h *Handler) apiListSupplierBills(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListSupplierBills(r.Context(), r.URL.Query().Get("supplierId"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

type supplierBillItemBody struct {
	ItemName  string   `json:"itemName"`
	ItemColor string   `json:"itemColor"`
	ItemType  string   `json:"itemType"`
	Cost      rawValue `json:"cost"`
	SellPrice rawValue `json:"sellPrice"`
	Quantity  rawValue `json:"quantity"`
}

// apiCreateSupplierBill drafts the bill item by item, as the bill form
// does, and saves it. The first bad item rejects the whole bill.
func (h *Handler) apiCreateSupplierBill(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SupplierID  string                 `json:"supplierId"`
		PaymentDate string                 `json:"paymentDate"`
		Items       []supplierBillItemBody `json:"items"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	draft := &core.SupplierBillDraft{SupplierID: body.SupplierID}
	if body.PaymentDate != "" {
		d, err := time.Parse("2006-01-02", body.PaymentDate)
		if err != nil {
			writeError(w, r, "paymentDate must be YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		draft.PaymentDate = &d
	}
	for i, it := range body.Items {
		if err := draft.AddItem(it.ItemName, it.ItemColor, it.ItemType, string(it.Cost), string(it.SellPrice), string(it.Quantity)); err != nil {
			h.writeServiceError(w, r, fmt.Errorf("item %d: %w", i+1, err))
			return
		}
	}

	res, err := h.svc.CreateSupplierBill(r.Context(), draft)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, res)
}

func (h *Handler) apiPaySupplierBill(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount rawValue `json:"amount"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	h.noContent(w, r, h.svc.PaySupplierBill(r.Context(), chi.URLParam(r, "id"), string(body.Amount)))
}

// ── Expenses ──────────────────────────────────────────────────────────────────

func (h *Handler) apiListExpenses(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.TodayExpenses(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) apiAddExpense(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name   string   `json:"name"`
		Amount rawValue `json:"amount"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := h.svc.AddExpense(r.Context(), body.Name, string(body.Amount)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) apiDeleteExpense(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.svc.DeleteExpense(r.Context(), chi.URLParam(r, "id")))
}
