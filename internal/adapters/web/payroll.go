package web

import (
	"net/http"
	"strconv"
	"time"

	"curtain-pos/internal/app"
	"curtain-pos/internal/core"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) apiListEmployees(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListEmployees(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}

func (h *Handler) apiCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req app.EmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.CreateEmployee(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, res)
}

func (h *Handler) apiUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req app.EmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.noContent(w, r, h.svc.UpdateEmployee(r.Context(), chi.URLParam(r, "id"), req))
}

func (h *Handler) apiDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	h.noContent(w, r, h.svc.DeleteEmployee(r.Context(), chi.URLParam(r, "id")))
}

func (h *Handler) apiAddAdvance(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount rawValue `json:"amount"`
		Date   string   `json:"date"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	err := h.svc.AddAdvance(r.Context(), app.AdvanceRequest{
		EmployeeID: chi.URLParam(r, "id"),
		Amount:     string(body.Amount),
		Date:       body.Date,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// apiRecordAttendance saves a day's attendance and returns computed salaries.
func (h *Handler) apiRecordAttendance(w http.ResponseWriter, r *http.Request) {
	var sheet core.AttendanceSheet
	if !decodeJSON(w, r, &sheet) {
		return
	}
	res, err := h.svc.RecordAttendance(r.Context(), sheet)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, res)
}

func (h *Handler) apiMonthlySheet(w http.ResponseWriter, r *http.Request) {
	year, yerr := strconv.Atoi(chi.URLParam(r, "year"))
	month, merr := strconv.Atoi(chi.URLParam(r, "month"))
	if yerr != nil || merr != nil {
		writeError(w, r, "year and month must be numbers", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	res, err := h.svc.MonthlySheet(r.Context(), year, time.Month(month))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, res)
}
