package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"curtain-pos/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Options configures the HTTP adapter.
type Options struct {
	AllowedOrigins string
	SessionTTL     time.Duration
}

// Handler holds the ApplicationService, the chi router and the open sale sessions.
type Handler struct {
	svc      app.ApplicationService
	router   chi.Router
	sessions *sessionStore
	log      zerolog.Logger
}

// NewHandler creates and wires the chi router with all routes. Expired
// sessions are purged until ctx is done.
func NewHandler(ctx context.Context, svc app.ApplicationService, opts Options, log zerolog.Logger) http.Handler {
	h := &Handler{
		svc:      svc,
		sessions: newSessionStore(opts.SessionTTL),
		log:      log.With().Str("component", "web").Logger(),
	}
	h.sessions.startPurge(ctx)

	r := chi.NewRouter()
	r.Use(RequestID(h.log))
	r.Use(Logger(h.log))
	r.Use(Recoverer(h.log))
	r.Use(CORS(opts.AllowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)

		// ── Stock ─────────────────────────────────────────────────────────────
		r.Get("/stock", h.apiListStock)
		r.Delete("/stock/{id}", h.apiDeleteStock)

		// ── Sale sessions ─────────────────────────────────────────────────────
		r.Post("/sessions", h.apiCreateSession)
		r.Route("/sessions/{sid}", func(r chi.Router) {
			r.Get("/", h.apiGetSession)
			r.Delete("/", h.apiDeleteSession)
			r.Post("/refresh", h.apiRefreshSession)
			r.Get("/items/{category}", h.apiSessionItems)
			r.Post("/lines/{category}", h.apiAddLine)
			r.Put("/lines/{category}/{idx}/item", h.apiSelectItem)
			r.Put("/lines/{category}/{idx}/quantity", h.apiSetQuantity)
			r.Delete("/lines/{category}/{idx}", h.apiRemoveLine)
			r.Put("/discount", h.apiSetDiscount)
			r.Put("/payment", h.apiSetPayment)
			r.Put("/customer", h.apiSetCustomer)
			r.Post("/submit", h.apiSubmitSession)
		})

		// ── Orders & bills ────────────────────────────────────────────────────
		r.Get("/orders", h.apiListOrders)
		r.Get("/orders/{id}", h.apiGetOrder)
		r.Put("/orders/{id}/status", h.apiUpdateOrderStatus)
		r.Post("/orders/{id}/payments", h.apiAddOrderPayment)
		r.Post("/orders/{id}/cancel", h.apiCancelOrder)
		r.Post("/bills/{id}/cancel", h.apiCancelBill)

		// ── Reports ───────────────────────────────────────────────────────────
		r.Get("/dashboard", h.apiDashboard)
		r.Get("/reports/daily", h.apiDailyReport)
		r.Post("/reports/daily", h.apiSaveDailyReport)

		// ── Expenses ──────────────────────────────────────────────────────────
		r.Get("/expenses", h.apiListExpenses)
		r.Post("/expenses", h.apiAddExpense)
		r.Delete("/expenses/{id}", h.apiDeleteExpense)

		// ── Suppliers ─────────────────────────────────────────────────────────
		r.Get("/suppliers", h.apiListSuppliers)
		r.Post("/suppliers", h.apiCreateSupplier)
		r.Get("/suppliers/bills", h.apiListSupplierBills)
		r.Post("/suppliers/bills", h.apiCreateSupplierBill)
		r.Post("/suppliers/bills/{id}/payments", h.apiPaySupplierBill)

		// ── Employees & payroll ───────────────────────────────────────────────
		r.Get("/employees", h.apiListEmployees)
		r.Post("/employees", h.apiCreateEmployee)
		r.Put("/employees/{id}", h.apiUpdateEmployee)
		r.Delete("/employees/{id}", h.apiDeleteEmployee)
		r.Post("/employees/{id}/advances", h.apiAddAdvance)
		r.Post("/attendance", h.apiRecordAttendance)
		r.Get("/attendance/{year}/{month}", h.apiMonthlySheet)
	})

	h.router = r
	return r
}

// health reports liveness and the number of open sale sessions.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
	}
	writeJSON(w, response{Status: "ok", Sessions: h.sessions.len()})
}

// noContent answers a successful command with 204, or maps err.
func (h *Handler) noContent(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

// rawValue is a form field sent either as a JSON string or a JSON number.
// Composer edits parse the raw text themselves.
type rawValue string

func (v *rawValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*v = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*v = rawValue(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = rawValue(n.String())
	return nil
}
