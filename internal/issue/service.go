package issue

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal"
	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
	"github.com/frahmantamala/helpdesk-inventory/internal/core/events"
)

// Repository defines the data access methods for issues, their comments
// and stock links.
type Repository interface {
	Create(issue *Issue) error
	GetByID(id int64) (*Issue, error)
	List(filter Filter) ([]*Issue, error)
	Update(issue *Issue) error
	Delete(id int64) error

	AddComment(comment *Comment) error
	ListComments(issueID int64) ([]*Comment, error)

	LinkStockItem(link *StockLink) error
	ListStockLinks(issueID int64) ([]*StockLink, error)
}

type Service struct {
	repo     Repository
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *Service) CreateIssue(submitterID int64, dto CreateIssueDTO) (*Issue, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("issue validation failed", "error", err, "user_id", submitterID)
		return nil, err
	}

	iss := &Issue{
		Title:       dto.Title,
		Description: dto.Description,
		SubmittedBy: submitterID,
		Severity:    dto.Severity,
		Type:        dto.Type,
		Status:      StatusSubmitted,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Create(iss); err != nil {
		s.logger.Error("failed to create issue", "error", err, "user_id", submitterID)
		return nil, internal.NewInternalError("failed to create issue", err)
	}

	s.logger.Info("issue created", "issue_id", iss.ID, "user_id", submitterID, "severity", iss.Severity)
	return iss, nil
}

func (s *Service) GetIssue(id int64) (*Issue, error) {
	iss, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get issue", "error", err, "issue_id", id)
		return nil, err
	}
	return iss, nil
}

// ListIssues returns every issue for actors holding a triage permission,
// and only the actor's own submissions for everyone else.
func (s *Service) ListIssues(filter Filter, actor *auth.User) ([]*Issue, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, internal.NewValidationError("unknown issue status", internal.ErrCodeInvalidStatus)
	}

	if !actor.HasPermission(auth.PermEditIssue, auth.PermAssignIssue, auth.PermResolveIssue, auth.PermDeleteIssue) {
		filter.SubmittedBy = actor.ID
	}

	issues, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list issues", "error", err)
		return nil, internal.NewInternalError("failed to list issues", err)
	}
	return issues, nil
}

func (s *Service) UpdateIssue(id int64, dto UpdateIssueDTO) (*Issue, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	iss, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		iss.Title = *dto.Title
	}
	if dto.Description != nil {
		iss.Description = *dto.Description
	}
	if dto.Severity != nil {
		iss.Severity = *dto.Severity
	}
	if dto.Type != nil {
		iss.Type = *dto.Type
	}
	iss.UpdatedAt = time.Now()

	if err := s.repo.Update(iss); err != nil {
		s.logger.Error("failed to update issue", "error", err, "issue_id", id)
		return nil, internal.NewInternalError("failed to update issue", err)
	}

	return iss, nil
}

func (s *Service) DeleteIssue(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete issue", "error", err, "issue_id", id)
		return internal.NewInternalError("failed to delete issue", err)
	}

	s.logger.Info("issue deleted", "issue_id", id)
	return nil
}

// AssignIssue sets the assignee and moves a freshly submitted issue into
// progress. Assigning an issue that is already being worked on keeps its
// current status.
func (s *Service) AssignIssue(ctx context.Context, id, assigneeID, actorID int64) (*Issue, error) {
	iss, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if iss.Status == StatusResolved {
		s.logger.Warn("cannot assign resolved issue", "issue_id", id)
		return nil, ErrInvalidStatusTransition
	}

	iss.AssignedTo = &assigneeID
	if iss.Status == StatusSubmitted {
		iss.Status = StatusInProgress
	}
	iss.UpdatedAt = time.Now()

	if err := s.repo.Update(iss); err != nil {
		s.logger.Error("failed to assign issue", "error", err, "issue_id", id)
		return nil, internal.NewInternalError("failed to assign issue", err)
	}

	s.logger.Info("issue assigned", "issue_id", id, "assignee_id", assigneeID, "actor_id", actorID)

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewIssueAssignedEvent(id, assigneeID, actorID))
	}

	return iss, nil
}

// ChangeStatus walks the issue through its lifecycle. Moving to resolved
// stamps resolved_at; every other transition clears it.
func (s *Service) ChangeStatus(ctx context.Context, id int64, newStatus string, actorID int64) (*Issue, error) {
	if !IsValidStatus(newStatus) {
		return nil, internal.NewValidationError("unknown issue status", internal.ErrCodeInvalidStatus)
	}

	iss, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(iss.Status, newStatus) {
		s.logger.Warn("invalid status transition",
			"issue_id", id,
			"from", iss.Status,
			"to", newStatus)
		return nil, ErrInvalidStatusTransition
	}

	fromStatus := iss.Status
	iss.Status = newStatus
	if newStatus == StatusResolved {
		now := time.Now()
		iss.ResolvedAt = &now
	} else {
		iss.ResolvedAt = nil
	}
	iss.UpdatedAt = time.Now()

	if err := s.repo.Update(iss); err != nil {
		s.logger.Error("failed to change issue status", "error", err, "issue_id", id)
		return nil, internal.NewInternalError("failed to change issue status", err)
	}

	s.logger.Info("issue status changed",
		"issue_id", id,
		"from", fromStatus,
		"to", newStatus,
		"actor_id", actorID)

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewIssueStatusChangedEvent(id, fromStatus, newStatus, actorID))
	}

	return iss, nil
}

// ResolveIssue is shorthand for the transition to resolved.
func (s *Service) ResolveIssue(ctx context.Context, id, actorID int64) (*Issue, error) {
	return s.ChangeStatus(ctx, id, StatusResolved, actorID)
}

// EscalateIssue is shorthand for the transition to escalated.
func (s *Service) EscalateIssue(ctx context.Context, id, actorID int64) (*Issue, error) {
	return s.ChangeStatus(ctx, id, StatusEscalated, actorID)
}

func (s *Service) AddComment(issueID, userID int64, dto AddCommentDTO) (*Comment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(issueID); err != nil {
		return nil, err
	}

	comment := &Comment{
		IssueID:   issueID,
		UserID:    userID,
		Body:      dto.Body,
		CreatedAt: time.Now(),
	}

	if err := s.repo.AddComment(comment); err != nil {
		s.logger.Error("failed to add comment", "error", err, "issue_id", issueID)
		return nil, internal.NewInternalError("failed to add comment", err)
	}

	return comment, nil
}

func (s *Service) ListComments(issueID int64) ([]*Comment, error) {
	if _, err := s.repo.GetByID(issueID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(issueID)
	if err != nil {
		s.logger.Error("failed to list comments", "error", err, "issue_id", issueID)
		return nil, internal.NewInternalError("failed to list comments", err)
	}
	return comments, nil
}

func (s *Service) LinkStockItem(issueID, stockItemID int64) (*StockLink, error) {
	if _, err := s.repo.GetByID(issueID); err != nil {
		return nil, err
	}

	link := &StockLink{
		IssueID:     issueID,
		StockItemID: stockItemID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.LinkStockItem(link); err != nil {
		s.logger.Error("failed to link stock item", "error", err, "issue_id", issueID, "stock_item_id", stockItemID)
		return nil, internal.NewInternalError("failed to link stock item", err)
	}

	s.logger.Info("stock item linked to issue", "issue_id", issueID, "stock_item_id", stockItemID)
	return link, nil
}

func (s *Service) ListStockLinks(issueID int64) ([]*StockLink, error) {
	if _, err := s.repo.GetByID(issueID); err != nil {
		return nil, err
	}

	links, err := s.repo.ListStockLinks(issueID)
	if err != nil {
		s.logger.Error("failed to list stock links", "error", err, "issue_id", issueID)
		return nil, internal.NewInternalError("failed to list stock links", err)
	}
	return links, nil
}
