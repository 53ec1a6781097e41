package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/staffdesk/workforce-console/internal"
	"github.com/staffdesk/workforce-console/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers.
//
// Mutation responses follow the fixed contract the console branches on: a
// JSON object carrying "message" on success or "error" on failure.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response.
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteMessage writes a success-shaped payload, optionally with extra fields
// (e.g. the id or server-generated code of a created record).
func (h *BaseHandler) WriteMessage(w http.ResponseWriter, status int, message string, extra map[string]interface{}) {
	body := map[string]interface{}{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	h.WriteJSON(w, status, body)
}

// WriteError writes an error-shaped payload.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Warn("http error", "status", status, "message", message)
	h.WriteJSON(w, status, map[string]interface{}{"error": message})
}

// WriteAppError maps an AppError onto the wire contract. The odd case is
// NOTHING_TO_UPDATE, which the legacy service reported as a 400 carrying a
// "message" field; the console shows it as an informational notice, so the
// shape is preserved.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err *internal.AppError) {
	if err.Code == internal.ErrCodeNothingToUpdate ||
		err.Code == internal.ErrCodeAlreadyAssigned ||
		err.Code == internal.ErrCodeNotAssigned {
		h.WriteMessage(w, err.StatusCode, err.Message, nil)
		return
	}
	h.WriteError(w, err.StatusCode, err.Message)
}

// HandleServiceError routes service-layer failures to the right response.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteAppError(w, appErr)
		return
	}
	h.Logger.Error("unhandled service error", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}

// DecodeJSON decodes a request body, reporting the legacy "Request body must
// be JSON" error on failure.
func (h *BaseHandler) DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Body == nil {
		h.WriteError(w, http.StatusBadRequest, "Request body must be JSON")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Request body must be JSON")
		return false
	}
	return true
}
