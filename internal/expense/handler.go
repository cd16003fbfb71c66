package expense

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/cost-manager/internal/core/events"
	"github.com/frahmantamala/cost-manager/internal/transport"
	"github.com/frahmantamala/cost-manager/pkg/logger"
)

type ServiceAPI interface {
	AddExpense(ctx context.Context, dto CreateExpenseDTO) (*Expense, error)
	Total(ctx context.Context, userID int64) (float64, error)
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

func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AddExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		h.audit(r, "add expense rejected: invalid body", "warn")
		return
	}

	exp, err := h.Service.AddExpense(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		h.audit(r, fmt.Sprintf("add expense failed: %v", err), "warn")
		return
	}

	h.WriteJSON(w, http.StatusCreated, exp)
	h.audit(r, fmt.Sprintf("expense %d added for user %d", exp.ID, exp.UserID), "info")
}

func (h *Handler) GetTotal(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("userid")
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		h.Logger.Error("GetTotal: invalid userid", "userid", rawID)
		h.WriteError(w, http.StatusBadRequest, "userid must be a number")
		h.audit(r, "total rejected: invalid userid", "warn")
		return
	}

	total, err := h.Service.Total(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		h.audit(r, fmt.Sprintf("total failed for user %d: %v", userID, err), "warn")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"userid": userID,
		"total":  total,
	})
	h.audit(r, fmt.Sprintf("total served for user %d", userID), "info")
}

// audit dispatches a fire-and-forget log event once the outcome is known.
func (h *Handler) audit(r *http.Request, message, level string) {
	if h.Bus == nil {
		return
	}
	h.Bus.Publish(context.WithoutCancel(r.Context()),
		events.NewRequestAudit("costs", r.URL.Path, r.Method, message, level))
}
