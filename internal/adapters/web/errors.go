package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"curtain-pos/internal/app"
	"curtain-pos/internal/backend"
	"curtain-pos/internal/core"
	"curtain-pos/internal/logger"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorMapping ties a sentinel error to its HTTP status and code.
type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{core.ErrNoItems, http.StatusUnprocessableEntity, "NO_ITEMS"},
	{core.ErrInsufficientPayment, http.StatusUnprocessableEntity, "INSUFFICIENT_PAYMENT"},
	{core.ErrMissingCustomerFields, http.StatusUnprocessableEntity, "MISSING_CUSTOMER_FIELDS"},
	{core.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
	{core.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{core.ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
	{core.ErrInvalidPaymentType, http.StatusBadRequest, "INVALID_PAYMENT_TYPE"},
	{core.ErrIncompleteBillItem, http.StatusBadRequest, "INCOMPLETE_BILL_ITEM"},
	{core.ErrIncompleteExpense, http.StatusBadRequest, "INCOMPLETE_EXPENSE"},
	{app.ErrInvalidRequest, http.StatusBadRequest, "BAD_REQUEST"},
	{app.ErrWrongMode, http.StatusConflict, "WRONG_MODE"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "BACKEND_TIMEOUT"},
}

// writeServiceError maps an application error onto a response. Backend
// rejections keep the backend's message; unexpected errors are logged and
// reported as 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			writeError(w, r, err.Error(), m.code, m.status)
			return
		}
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if backend.IsNotFound(err) {
			writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
			return
		}
		writeError(w, r, err.Error(), "BACKEND_ERROR", http.StatusBadGateway)
		return
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		writeError(w, r, "backend unavailable", "BACKEND_UNAVAILABLE", http.StatusBadGateway)
		return
	}

	logger.From(r.Context(), h.log).Error().Err(err).Msg("request failed")
	writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
}
