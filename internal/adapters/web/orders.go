package web

import (
	"net/http"

	"curtain-pos/internal/app"
	"curtain-pos/internal/core"

	"github.com/go-chi/chi/v5"
)

// apiListOrders lists orders newest first. Query parameters customer,
// status and payment narrow the list.
func (h *Handler) apiListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := core.OrderFilter{
		CustomerName:  q.Get("customer"),
		PaymentStatus: q.Get("payment"),
	}
	if s := q.Get("status"); s != "" {
		filter.OrderStatus = core.OrderStatus(s)
	}
	res, err := h.svc.ListOrders(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) apiGetOrder(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) apiUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	h.noContent(w, r, h.svc.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), body.Status))
}

// apiAddOrderPayment records a follow-up payment against the order's balance.
func (h *Handler) apiAddOrderPayment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount      rawValue `json:"amount"`
		PaymentType string   `json:"paymentType"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	res, err := h.svc.AddOrderPayment(r.Context(), app.OrderPaymentRequest{
		OrderID:     chi.URLParam(r, "id"),
		Amount:      string(body.Amount),
		PaymentType: body.PaymentType,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, res)
}

func (h *Handler) apiCancelOrder(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.svc.CancelOrder(r.Context(), chi.URLParam(r, "id")))
}

func (h *Handler) apiCancelBill(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.svc.CancelBill(r.Context(), chi.URLParam(r, "id")))
}

// ── Reports ───────────────────────────────────────────────────────────────────

func (h *Handler) apiDashboard(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Dashboard(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// apiDailyReport returns the report of ?date=YYYY-MM-DD, or today's.
func (h *Handler) apiDailyReport(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.DailyReport(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) apiSaveDailyReport(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.svc.SaveDailyReport(r.Context()))
}
