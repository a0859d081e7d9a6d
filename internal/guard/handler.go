package guard

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
	"github.com/frahmantamala/helpdesk-inventory/internal/transport"
	"github.com/frahmantamala/helpdesk-inventory/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Guard *Guard
}

func NewHandler(g *Guard) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Guard:       g,
	}
}

// Authorize handles GET /navigation/authorize?path=/stock/transactions.
// The auth middleware is optional on this route: an anonymous caller gets
// a redirect to the login page.
func (h *Handler) Authorize(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		h.WriteError(w, http.StatusBadRequest, "path query parameter is required")
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	decision := h.Guard.Authorize(path, user)

	h.WriteJSON(w, http.StatusOK, decision)
}
