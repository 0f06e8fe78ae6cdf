package web

import (
	"net/http"
	"strconv"

	"curtain-pos/internal/app"
	"curtain-pos/internal/core"

	"github.com/go-chi/chi/v5"
)

// ── Stock ─────────────────────────────────────────────────────────────────────

func (h *Handler) apiListStock(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListStock(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) apiDeleteStock(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.svc.DeleteStock(r.Context(), chi.URLParam(r, "id")))
}

// ── Sessions ──────────────────────────────────────────────────────────────────

func (h *Handler) apiCreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode string `json:"mode"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	mode, err := app.ParseSaleMode(body.Mode)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	sess, err := h.svc.NewSession(r.Context(), mode)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.sessions.put(sess)
	writeJSONStatus(w, http.StatusCreated, sess.View())
}

// session resolves {sid}, writing 404 when it is unknown or expired.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*app.Session, bool) {
	sess, ok := h.sessions.get(chi.URLParam(r, "sid"))
	if !ok {
		writeError(w, r, "sale session not found or expired", "SESSION_NOT_FOUND", http.StatusNotFound)
	}
	return sess, ok
}

// lineParams resolves {category} and {idx} of a line route.
func lineParams(w http.ResponseWriter, r *http.Request) (core.Category, int, bool) {
	cat, ok := categoryParam(w, r)
	if !ok {
		return "", 0, false
	}
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil || idx < 0 {
		writeError(w, r, "line index must be a non-negative integer", "BAD_REQUEST", http.StatusBadRequest)
		return "", 0, false
	}
	return cat, idx, true
}

func categoryParam(w http.ResponseWriter, r *http.Request) (core.Category, bool) {
	cat, err := core.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return "", false
	}
	return cat, true
}

func (h *Handler) apiGetSession(w http.ResponseWriter, r *http.Request) {
	if sess, ok := h.session(w, r); ok {
		writeJSON(w, sess.View())
	}
}

func (h *Handler) apiDeleteSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.delete(chi.URLParam(r, "sid"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) apiRefreshSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := h.svc.RefreshCatalog(r.Context(), sess); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, sess.View())
}

// apiSessionItems lists the items a line of the category may pick from.
func (h *Handler) apiSessionItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	cat, ok := categoryParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, app.StockResult{Items: sess.Available(cat), Category: cat})
}

func (h *Handler) apiAddLine(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	cat, ok := categoryParam(w, r)
	if !ok {
		return
	}
	sess.AddRow(cat)
	writeJSON(w, sess.View())
}

func (h *Handler) apiRemoveLine(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	cat, idx, ok := lineParams(w, r)
	if !ok {
		return
	}
	sess.RemoveRow(cat, idx)
	writeJSON(w, sess.View())
}

// apiSelectItem puts an item on a row. A quick-sell item with no stock on
// hand is 409.
func (h *Handler) apiSelectItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	cat, idx, ok := lineParams(w, r)
	if !ok {
		return
	}
	var body struct {
		ItemName string `json:"itemName"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := sess.SelectItem(cat, idx, body.ItemName); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, sess.View())
}

// apiSetQuantity applies a quantity edit. Unparseable input is ignored and
// the unchanged view is returned; a quick-sell quantity above stock is 409.
func (h *Handler) apiSetQuantity(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	cat, idx, ok := lineParams(w, r)
	if !ok {
		return
	}
	var body struct {
		Quantity rawValue `json:"quantity"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if _, err := sess.SetQuantity(cat, idx, string(body.Quantity)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, sess.View())
}

func (h *Handler) apiSetDiscount(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var body struct {
		Discount rawValue `json:"discount"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	sess.SetDiscount(string(body.Discount))
	writeJSON(w, sess.View())
}

// apiSetPayment stores the tendered amount and, when given, the payment type.
func (h *Handler) apiSetPayment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var body struct {
		Payment     rawValue `json:"payment"`
		PaymentType *string  `json:"paymentType"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.PaymentType != nil {
		if err := sess.SetPaymentType(*body.PaymentType); err != nil {
			h.writeServiceError(w, r, err)
			return
		}
	}
	sess.SetPayment(string(body.Payment))
	writeJSON(w, sess.View())
}

func (h *Handler) apiSetCustomer(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var c core.Customer
	if !decodeJSON(w, r, &c) {
		return
	}
	if err := sess.SetCustomer(c); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, sess.View())
}

// apiSubmitSession submits the session according to its mode. The session
// stays open afterwards, reset for the next sale.
func (h *Handler) apiSubmitSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	switch sess.Mode {
	case app.ModeQuickSell:
		res, err := h.svc.SubmitQuickSell(r.Context(), sess)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		writeJSONStatus(w, http.StatusCreated, res)
	default:
		res, err := h.svc.SubmitFullOrder(r.Context(), sess)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		writeJSONStatus(w, http.StatusCreated, res)
	}
}
