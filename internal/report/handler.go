package report

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/cost-manager/internal/core/events"
	"github.com/frahmantamala/cost-manager/internal/transport"
	"github.com/frahmantamala/cost-manager/pkg/logger"
)

type ServiceAPI interface {
	MonthlyReport(ctx context.Context, userID int64, year, month int) (*Envelope, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Bus     *events.EventBus
}

func NewHandler(service ServiceAPI, bus *events.EventBus) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		Bus:         bus,
	}
}

// GetReport serves GET /api/report?userid=&year=&month=. "id" is accepted
// as a synonym for "userid".
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	rawID := query.Get("userid")
	if rawID == "" {
		rawID = query.Get("id")
	}

	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		h.Logger.Error("GetReport: invalid userid", "userid", rawID)
		h.WriteError(w, http.StatusBadRequest, "userid must be a number")
		h.audit(r, "report rejected: invalid userid", "warn")
		return
	}
	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		h.Logger.Error("GetReport: invalid year", "year", query.Get("year"))
		h.WriteError(w, http.StatusBadRequest, "year must be a number")
		h.audit(r, "report rejected: invalid year", "warn")
		return
	}
	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		h.Logger.Error("GetReport: invalid month", "month", query.Get("month"))
		h.WriteError(w, http.StatusBadRequest, "month must be a number")
		h.audit(r, "report rejected: invalid month", "warn")
		return
	}

	envelope, err := h.Service.MonthlyReport(r.Context(), userID, year, month)
	if err != nil {
		h.HandleServiceError(w, err)
		h.audit(r, fmt.Sprintf("report failed for user %d %d-%02d: %v", userID, year, month, err), "warn")
		return
	}

	h.WriteJSON(w, http.StatusOK, envelope)
	h.audit(r, fmt.Sprintf("report served for user %d %d-%02d", userID, year, month), "info")
}

func (h *Handler) audit(r *http.Request, message, level string) {
	if h.Bus == nil {
		return
	}
	h.Bus.Publish(context.WithoutCancel(r.Context()),
		events.NewRequestAudit("costs", r.URL.Path, r.Method, message, level))
}
