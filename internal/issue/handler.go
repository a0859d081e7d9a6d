package issue

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
	"github.com/frahmantamala/helpdesk-inventory/internal/transport"
	"github.com/frahmantamala/helpdesk-inventory/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateIssue(submitterID int64, dto CreateIssueDTO) (*Issue, error)
	GetIssue(id int64) (*Issue, error)
	ListIssues(filter Filter, actor *auth.User) ([]*Issue, error)
	UpdateIssue(id int64, dto UpdateIssueDTO) (*Issue, error)
	DeleteIssue(id int64) error
	AssignIssue(ctx context.Context, id, assigneeID, actorID int64) (*Issue, error)
	ChangeStatus(ctx context.Context, id int64, newStatus string, actorID int64) (*Issue, error)
	ResolveIssue(ctx context.Context, id, actorID int64) (*Issue, error)
	EscalateIssue(ctx context.Context, id, actorID int64) (*Issue, error)
	AddComment(issueID, userID int64, dto AddCommentDTO) (*Comment, error)
	ListComments(issueID int64) ([]*Comment, error)
	LinkStockItem(issueID, stockItemID int64) (*StockLink, error)
	ListStockLinks(issueID int64) ([]*StockLink, error)
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

func (h *Handler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateIssueDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateIssue: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	iss, err := h.Service.CreateIssue(user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, iss)
}

func (h *Handler) GetIssue(w http.ResponseWriter, r *http.Request) {
	id, err := h.issueID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue ID")
		return
	}

	iss, err := h.Service.GetIssue(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, iss)
}

func (h *Handler) ListIssues(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()

	filter := Filter{
		Status:   q.Get("status"),
		Severity: q.Get("severity"),
		Type:     q.Get("type"),
	}
	if v := q.Get("submitted_by"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.SubmittedBy = id
		}
	}
	if v := q.Get("assigned_to"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.AssignedTo = id
		}
	}
	if v := q.Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 100 {
			filter.Limit = l
		}
	}
	if v := q.Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil && o >= 0 {
			filter.Offset = o
		}
	}

	issues, err := h.Service.ListIssues(filter, user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"issues": issues,
		"count":  len(issues),
	})
}

func (h *Handler) UpdateIssue(w http.ResponseWriter, r *http.Request) {
	id, err := h.issueID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue ID")
		return
	}

	var dto UpdateIssueDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateIssue: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	iss, err := h.Service.UpdateIssue(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, iss)
}

func (h *Handler) DeleteIssue(w http.ResponseWriter, r *http.Request) {
	id, err := h.issueID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue ID")
		return
	}

	if err := h.Service.DeleteIssue(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AssignIssue(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.issueID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue ID")
		return
	}

	var dto AssignIssueDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.AssigneeID <= 0 {
		h.WriteError(w, http.StatusBadRequest, "assignee_id is required")
		return
	}

	iss, err := h.Service.AssignIssue(r.Context(), id, dto.AssigneeID, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, iss)
}

func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.issueID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue ID")
		return
	}

	var dto ChangeStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	iss, err := h.Service.ChangeStatus(r.Context(), id, dto.Status, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, iss)
}

func (h *Handler) ResolveIssue(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.issueID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue ID")
		return
	}

	iss, err := h.Service.ResolveIssue(r.Context(), id, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, iss)
}

func (h *Handler) EscalateIssue(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.issueID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue ID")
		return
	}

	iss, err := h.Service.EscalateIssue(r.Context(), id, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, iss)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.issueID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue ID")
		return
	}

	var dto AddCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.Service.AddComment(id, user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, comment)
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := h.issueID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue ID")
		return
	}

	comments, err := h.Service.ListComments(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"issue_id": id,
		"comments": comments,
	})
}

func (h *Handler) LinkStockItem(w http.ResponseWriter, r *http.Request) {
	id, err := h.issueID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue ID")
		return
	}

	var dto LinkStockItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.StockItemID <= 0 {
		h.WriteError(w, http.StatusBadRequest, "stock_item_id is required")
		return
	}

	link, err := h.Service.LinkStockItem(id, dto.StockItemID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, link)
}

func (h *Handler) ListStockLinks(w http.ResponseWriter, r *http.Request) {
	id, err := h.issueID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid issue ID")
		return
	}

	links, err := h.Service.ListStockLinks(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"issue_id":    id,
		"stock_items": links,
	})
}

func (h *Handler) issueID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
