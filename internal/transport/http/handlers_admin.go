package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
	"punchclock/pkg/requestcontext"
)

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.settings.Get(r.Context(), requestcontext.Actor(r.Context()).CompanyID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(st))
}

func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.KioskDeviceLabel != nil {
		if err := validDeviceLabel(*req.KioskDeviceLabel); err != nil {
			h.fail(w, r, err)
			return
		}
	}

	actor := requestcontext.Actor(r.Context())
	st, err := h.settings.Update(r.Context(), actor.CompanyID, actor.UserID, req.toUpdate())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(st))
}

func (h *Handler) handleRotateQRSecret(w http.ResponseWriter, r *http.Request) {
	actor := requestcontext.Actor(r.Context())
	if err := h.settings.RotateQRSecret(r.Context(), actor.CompanyID, actor.UserID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.employees.List(r.Context(), requestcontext.Actor(r.Context()).CompanyID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]employeeResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, toEmployeeResponse(&profiles[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}
	in, err := req.toNewEmployee()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	actor := requestcontext.Actor(r.Context())
	profile, err := h.employees.Create(r.Context(), actor.CompanyID, actor.UserID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeResponse(profile))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeParam(w, r)
	if !ok {
		return
	}
	var req updateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	actor := requestcontext.Actor(r.Context())
	profile, err := h.employees.Update(r.Context(), actor.CompanyID, actor.UserID, employeeID, req.toUpdate())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeResponse(profile))
}

func (h *Handler) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context(), requestcontext.Actor(r.Context()).CompanyID, r.URL.Query().Get("date"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardSummary(summary))
}

func (h *Handler) handleDashboardLive(w http.ResponseWriter, r *http.Request) {
	rows, err := h.dashboard.Live(r.Context(), requestcontext.Actor(r.Context()).CompanyID, r.URL.Query().Get("date"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardLive(rows))
}

func (h *Handler) handleSetPIN(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeParam(w, r)
	if !ok {
		return
	}
	var req setPINRequest
	if !h.decode(w, r, &req) {
		return
	}

	actor := requestcontext.Actor(r.Context())
	if err := h.employees.SetPIN(r.Context(), actor.CompanyID, actor.UserID, employeeID, req.PIN); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleResetPIN(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeParam(w, r)
	if !ok {
		return
	}

	actor := requestcontext.Actor(r.Context())
	pin, err := h.employees.ResetPIN(r.Context(), actor.CompanyID, actor.UserID, employeeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pinResponse{PIN: pin})
}

func (h *Handler) handleRegenerateEmployeeQR(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeParam(w, r)
	if !ok {
		return
	}

	actor := requestcontext.Actor(r.Context())
	token, err := h.employees.RegenerateEmployeeQR(r.Context(), actor.CompanyID, actor.UserID, employeeID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employeeQRResponse{Token: token})
}

func (h *Handler) employeeParam(w http.ResponseWriter, r *http.Request) (id.EmployeeID, bool) {
	employeeID, err := id.ParseEmployeeID(chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, dErrors.New(dErrors.CodeInvalidInput, "employee id must be a UUID"))
		return id.EmployeeID{}, false
	}
	return employeeID, true
}
