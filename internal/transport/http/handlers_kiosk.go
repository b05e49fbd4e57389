package httptransport

import (
	"net/http"

	id "punchclock/pkg/domain"
	dErrors "punchclock/pkg/domain-errors"
	"punchclock/pkg/requestcontext"
)

func (h *Handler) handleDailyQR(w http.ResponseWriter, r *http.Request) {
	qr, err := h.kiosk.DailyQR(r.Context(), requestcontext.Actor(r.Context()).CompanyID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dailyQRResponse{
		Date:        qr.Date,
		QRToken:     qr.Token,
		ExpiresAt:   qr.ExpiresAt,
		DeviceLabel: qr.DeviceLabel,
	})
}

func (h *Handler) handleKioskAuthPIN(w http.ResponseWriter, r *http.Request) {
	var req kioskPINRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := validDeviceLabel(req.DeviceLabel); err != nil {
		h.fail(w, r, err)
		return
	}

	identity, err := h.kiosk.AuthByPIN(r.Context(), requestcontext.Actor(r.Context()), req.PIN, req.DeviceLabel)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toKioskIdentity(identity))
}

func (h *Handler) handleKioskAuthQR(w http.ResponseWriter, r *http.Request) {
	var req kioskQRRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := validDeviceLabel(req.DeviceLabel); err != nil {
		h.fail(w, r, err)
		return
	}

	identity, err := h.kiosk.AuthByQR(r.Context(), requestcontext.Actor(r.Context()), req.Token, req.DeviceLabel)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toKioskIdentity(identity))
}

func (h *Handler) handleKioskPunch(w http.ResponseWriter, r *http.Request) {
	var req kioskPunchRequest
	if !h.decode(w, r, &req) {
		return
	}
	employeeID, err := id.ParseEmployeeID(req.EmployeeID)
	if err != nil {
		h.fail(w, r, dErrors.New(dErrors.CodeInvalidInput, "employeeId must be a UUID"))
		return
	}
	if err := validDeviceLabel(req.DeviceLabel); err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.kiosk.KioskPunch(r.Context(), requestcontext.Actor(r.Context()), employeeID, req.Method, req.DeviceLabel)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toKioskPunch(result))
}
