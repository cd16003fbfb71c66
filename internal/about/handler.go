package about

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/cost-manager/internal/transport"
	"github.com/frahmantamala/cost-manager/pkg/logger"
)

// Developer is one entry on the about page.
type Developer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

var developers = []Developer{
	{FirstName: "Fadhil", LastName: "Rahmantamala"},
}

type Handler struct {
	*transport.BaseHandler
}

func NewHandler() *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{BaseHandler: transport.NewBaseHandler(lg)}
}

func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, developers)
}
