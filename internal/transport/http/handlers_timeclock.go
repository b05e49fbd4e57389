package httptransport

import (
	"net/http"
	"time"

	tcservice "punchclock/internal/timeclock/service"
	dErrors "punchclock/pkg/domain-errors"
	"punchclock/pkg/requestcontext"
)

func (h *Handler) handlePunch(w http.ResponseWriter, r *http.Request) {
	var req punchRequest
	if !h.decode(w, r, &req) {
		return
	}
	reading, ok := req.Geo.reading()
	if !ok {
		h.fail(w, r, dErrors.New(dErrors.CodeInvalidInput, "geo requires lat, lng and accuracy"))
		return
	}
	var token string
	if req.QR != nil {
		token = req.QR.Token
	}

	event, err := h.timeclock.Punch(r.Context(), requestcontext.Actor(r.Context()), tcservice.PunchRequest{
		Reading:  reading,
		QRToken:  token,
		DeviceID: req.DeviceID,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, punchResponse{
		Type:      event.Type,
		Timestamp: event.Timestamp,
		Method:    event.Method,
	})
}

func (h *Handler) handleToday(w http.ResponseWriter, r *http.Request) {
	view, err := h.timeclock.Today(r.Context(), requestcontext.Actor(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todayResponse{
		Status: dayStatusResponse{
			CurrentType: optionalType(view.Status.Current),
			NextType:    optionalType(view.Status.Next),
		},
		Events: toEventResponses(view.Events),
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	from, err := parseTimeParam(r, "from")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	to, err := parseTimeParam(r, "to")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	events, err := h.timeclock.History(r.Context(), requestcontext.Actor(r.Context()), from, to)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponses(events))
}

// parseTimeParam accepts RFC 3339 timestamps or plain dates (UTC midnight).
func parseTimeParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, dErrors.New(dErrors.CodeInvalidInput, name+" is required")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, dErrors.New(dErrors.CodeInvalidInput, name+" must be a date or RFC 3339 timestamp")
}
