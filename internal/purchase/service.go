package purchase

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal"
	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
	"github.com/frahmantamala/helpdesk-inventory/internal/core/events"
)

// Repository defines the data access methods for purchase requests
type Repository interface {
	Create(req *Request) error
	GetByID(id int64) (*Request, error)
	List(filter Filter) ([]*Request, error)
	UpdateStatus(id int64, status, notes string) error
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

func (s *Service) CreateRequest(userID int64, dto CreateRequestDTO) (*Request, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("purchase request validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	req := &Request{
		UserID:          userID,
		BonNumber:       dto.BonNumber,
		BonSigner:       dto.BonSigner,
		ItemName:        dto.ItemName,
		ItemDescription: dto.ItemDescription,
		ItemQuantity:    dto.ItemQuantity,
		EstimatedPrice:  dto.EstimatedPrice,
		Notes:           dto.Notes,
		Status:          StatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to create purchase request", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create purchase request", err)
	}

	s.logger.Info("purchase request created", "request_id", req.ID, "user_id", userID, "item", req.ItemName)
	return req, nil
}

// GetRequest returns the request if the actor owns it or may decide on
// requests in general.
func (s *Service) GetRequest(id int64, actor *auth.User) (*Request, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.UserID != actor.ID && !actor.HasPermission(auth.PermApprovePurchaseRequest, auth.PermRejectPurchaseRequest) {
		s.logger.Warn("unauthorized access to purchase request", "request_id", id, "actor_id", actor.ID)
		return nil, internal.ErrPermissionDenied
	}

	return req, nil
}

// ListRequests returns all requests for reviewers, and only the actor's
// own for everyone else.
func (s *Service) ListRequests(filter Filter, actor *auth.User) ([]*Request, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if !actor.HasPermission(auth.PermApprovePurchaseRequest, auth.PermRejectPurchaseRequest) {
		filter.UserID = actor.ID
	}

	requests, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list purchase requests", "error", err)
		return nil, internal.NewInternalError("failed to list purchase requests", err)
	}
	return requests, nil
}

func (s *Service) ApproveRequest(ctx context.Context, id, actorID int64, notes string) (*Request, error) {
	return s.decide(ctx, id, actorID, StatusApproved, notes)
}

func (s *Service) RejectRequest(ctx context.Context, id, actorID int64, notes string) (*Request, error) {
	return s.decide(ctx, id, actorID, StatusRejected, notes)
}

// MarkPurchased records that an approved request was actually bought.
func (s *Service) MarkPurchased(ctx context.Context, id, actorID int64, notes string) (*Request, error) {
	return s.decide(ctx, id, actorID, StatusPurchased, notes)
}

func (s *Service) decide(ctx context.Context, id, actorID int64, newStatus, notes string) (*Request, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(req.Status, newStatus) {
		s.logger.Warn("invalid purchase request transition",
			"request_id", id,
			"from", req.Status,
			"to", newStatus)
		return nil, ErrInvalidStatusTransition
	}

	if err := s.repo.UpdateStatus(id, newStatus, notes); err != nil {
		s.logger.Error("failed to update purchase request status", "error", err, "request_id", id)
		return nil, internal.NewInternalError("failed to update purchase request", err)
	}

	req.Status = newStatus
	if notes != "" {
		req.Notes = notes
	}
	req.UpdatedAt = time.Now()

	s.logger.Info("purchase request decided",
		"request_id", id,
		"decision", newStatus,
		"actor_id", actorID)

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.NewPurchaseRequestDecidedEvent(id, newStatus, actorID))
	}

	return req, nil
}
