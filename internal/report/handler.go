package report

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal/transport"
	"github.com/frahmantamala/helpdesk-inventory/pkg/logger"
)

type ServiceAPI interface {
	IssuesByStatus() ([]StatusCount, error)
	IssuesByType() ([]TypeCount, error)
	IssuesByMonth(year int) ([]MonthCount, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) IssuesByStatus(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.IssuesByStatus()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"issues_by_status": counts})
}

func (h *Handler) IssuesByType(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.IssuesByType()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"issues_by_type": counts})
}

func (h *Handler) IssuesByMonth(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = parsed
	}

	counts, err := h.Service.IssuesByMonth(year)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"year":            year,
		"issues_by_month": counts,
	})
}
