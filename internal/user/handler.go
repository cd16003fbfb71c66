package user

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
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto CreateUserDTO) (*User, error)
	GetByID(ctx context.Context, userID int64) (*UserWithTotal, error)
	List(ctx context.Context) ([]User, error)
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

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateUser: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		h.audit(r, "add user rejected: invalid body", "warn")
		return
	}

	u, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		h.audit(r, fmt.Sprintf("add user failed: %v", err), "warn")
		return
	}

	h.WriteJSON(w, http.StatusCreated, u)
	h.audit(r, fmt.Sprintf("user %d created", u.ID), "info")
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		h.Logger.Error("GetUser: invalid user id", "id", rawID)
		h.WriteError(w, http.StatusBadRequest, "id must be a number")
		return
	}

	u, err := h.Service.GetByID(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) audit(r *http.Request, message, level string) {
	if h.Bus == nil {
		return
	}
	h.Bus.Publish(context.WithoutCancel(r.Context()),
		events.NewRequestAudit("users", r.URL.Path, r.Method, message, level))
}
