package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/cost-manager/internal"
	"github.com/frahmantamala/cost-manager/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an {id, message} error response. The id mirrors the
// HTTP status for plain errors; service errors carry their own id.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.writeErrorBody(w, status, status, message)
}

// HandleServiceError maps a service-layer error onto the wire format.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		if appErr.StatusCode >= http.StatusInternalServerError {
			h.Logger.Error("service error", "error", err, "id", appErr.ID)
		}
		h.writeErrorBody(w, appErr.StatusCode, appErr.ID, appErr.Message)
		return
	}
	h.Logger.Error("unexpected service error", "error", err)
	h.writeErrorBody(w, http.StatusInternalServerError, internal.ErrIDInternal, "internal server error")
}

func (h *BaseHandler) writeErrorBody(w http.ResponseWriter, status, id int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResp := map[string]interface{}{
		"id":      id,
		"message": message,
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		h.Logger.Error("failed to encode error response", "error", err)
	}
}
