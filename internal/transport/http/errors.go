package httptransport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"punchclock/internal/block"
	dErrors "punchclock/pkg/domain-errors"
)

type errorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

var statusByCode = map[dErrors.Code]int{
	dErrors.CodeInvalidInput:       http.StatusBadRequest,
	dErrors.CodeBadRequest:         http.StatusBadRequest,
	dErrors.CodeNotFound:           http.StatusNotFound,
	dErrors.CodeConflict:           http.StatusConflict,
	dErrors.CodeUnauthorized:       http.StatusUnauthorized,
	dErrors.CodeForbidden:          http.StatusForbidden,
	dErrors.CodeInvariantViolation: http.StatusConflict,
	dErrors.CodeTimeout:            http.StatusGatewayTimeout,
}

// writeError renders policy blocks as 403 with their reason code and domain
// errors with the status of their code. Internal failures never expose the
// underlying message.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if b, ok := block.As(err); ok {
		writeJSON(w, http.StatusForbidden, errorResponse{
			Code:    string(b.Code),
			Message: b.Message,
			Details: b.Details,
		})
		return
	}

	code := dErrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    string(dErrors.CodeInternal),
			Message: "internal error",
		})
		return
	}

	message := err.Error()
	var de *dErrors.Error
	if errors.As(err, &de) {
		message = de.Message
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
