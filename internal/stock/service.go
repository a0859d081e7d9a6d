package stock

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal"
	"github.com/frahmantamala/helpdesk-inventory/internal/core/events"
)

// Repository defines the data access methods for stock items and the
// usage ledger.
type Repository interface {
	CreateItem(item *Item) error
	GetItemByID(id int64) (*Item, error)
	ListItems(filter ItemFilter) ([]*Item, error)
	UpdateItem(item *Item) error
	DeleteItem(id int64, cascadeUsage bool) error

	// ApplyTransaction must adjust the item quantity and append the usage
	// row inside a single database transaction.
	ApplyTransaction(usage *Usage) error

	ListUsageForItem(itemID int64) ([]*Usage, error)
	UsageTotalsByDay(from, to time.Time) (map[string]map[string]int64, error)
	UsageTotalsByCategory(from, to time.Time) ([]CategoryUsage, error)
}

// Service handles stock business logic
type Service struct {
	repo            Repository
	eventBus        *events.EventBus
	cascadeOnDelete bool
	logger          *slog.Logger
}

func NewService(repo Repository, eventBus *events.EventBus, cascadeOnDelete bool, logger *slog.Logger) *Service {
	return &Service{
		repo:            repo,
		eventBus:        eventBus,
		cascadeOnDelete: cascadeOnDelete,
		logger:          logger,
	}
}

func (s *Service) CreateItem(dto CreateItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("stock item validation failed", "error", err)
		return nil, err
	}

	item := &Item{
		Name:         dto.Name,
		Category:     dto.Category,
		Description:  dto.Description,
		Quantity:     dto.Quantity,
		Manufacturer: dto.Manufacturer,
		Model:        dto.Model,
		SerialNumber: dto.SerialNumber,
		PurchaseDate: dto.PurchaseDate,
		Price:        dto.Price,
		Location:     dto.Location,
		Image:        dto.Image,
		Status:       dto.Status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.CreateItem(item); err != nil {
		s.logger.Error("failed to create stock item", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create stock item", err)
	}

	s.logger.Info("stock item created", "item_id", item.ID, "name", item.Name, "quantity", item.Quantity)
	return item, nil
}

func (s *Service) GetItem(id int64) (*Item, error) {
	item, err := s.repo.GetItemByID(id)
	if err != nil {
		s.logger.Error("failed to get stock item", "error", err, "item_id", id)
		return nil, err
	}
	return item, nil
}

// ListItems applies the SQL-side equality filters first, then the Search
// substring match against name and description in memory.
func (s *Service) ListItems(filter ItemFilter) ([]*Item, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	items, err := s.repo.ListItems(filter)
	if err != nil {
		s.logger.Error("failed to list stock items", "error", err)
		return nil, internal.NewInternalError("failed to list stock items", err)
	}

	if filter.Search == "" {
		return items, nil
	}

	needle := strings.ToLower(filter.Search)
	matched := make([]*Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (s *Service) UpdateItem(id int64, dto UpdateItemDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItemByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		item.Name = *dto.Name
	}
	if dto.Category != nil {
		item.Category = *dto.Category
	}
	if dto.Description != nil {
		item.Description = *dto.Description
	}
	if dto.Manufacturer != nil {
		item.Manufacturer = *dto.Manufacturer
	}
	if dto.Model != nil {
		item.Model = *dto.Model
	}
	if dto.SerialNumber != nil {
		item.SerialNumber = *dto.SerialNumber
	}
	if dto.PurchaseDate != nil {
		item.PurchaseDate = dto.PurchaseDate
	}
	if dto.Price != nil {
		item.Price = dto.Price
	}
	if dto.Location != nil {
		item.Location = *dto.Location
	}
	if dto.Image != nil {
		item.Image = *dto.Image
	}
	if dto.Status != nil {
		item.Status = *dto.Status
	}
	item.UpdatedAt = time.Now()

	if err := s.repo.UpdateItem(item); err != nil {
		s.logger.Error("failed to update stock item", "error", err, "item_id", id)
		return nil, internal.NewInternalError("failed to update stock item", err)
	}

	s.logger.Info("stock item updated", "item_id", id)
	return item, nil
}

// DeleteItem removes the item. Whether its ledger rows go with it is a
// deployment decision: cascade removes history, preserve keeps it for
// audit with a dangling item reference.
func (s *Service) DeleteItem(id int64) error {
	if _, err := s.repo.GetItemByID(id); err != nil {
		return err
	}

	if err := s.repo.DeleteItem(id, s.cascadeOnDelete); err != nil {
		s.logger.Error("failed to delete stock item", "error", err, "item_id", id)
		return internal.NewInternalError("failed to delete stock item", err)
	}

	s.logger.Info("stock item deleted", "item_id", id, "cascade_usage", s.cascadeOnDelete)
	return nil
}

// RecordTransaction moves quantity in or out of an item and appends the
// matching ledger row. The quantity check and the update happen inside
// one repository transaction, so concurrent withdrawals cannot both pass
// the check and drive the count negative.
func (s *Service) RecordTransaction(ctx context.Context, actorID int64, dto RecordTransactionDTO) (*Usage, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("stock transaction validation failed", "error", err, "actor_id", actorID)
		return nil, err
	}

	usage := &Usage{
		StockItemID:     dto.StockItemID,
		IssueID:         dto.IssueID,
		Quantity:        dto.Quantity,
		TransactionType: dto.TransactionType,
		AssignedTo:      dto.AssignedTo,
		Date:            time.Now(),
		Notes:           dto.Notes,
	}

	if err := s.repo.ApplyTransaction(usage); err != nil {
		s.logger.Warn("stock transaction rejected",
			"error", err,
			"item_id", dto.StockItemID,
			"quantity", dto.Quantity,
			"type", dto.TransactionType)
		return nil, err
	}

	s.logger.Info("stock transaction recorded",
		"usage_id", usage.ID,
		"item_id", dto.StockItemID,
		"quantity", dto.Quantity,
		"type", dto.TransactionType,
		"actor_id", actorID)

	if s.eventBus != nil {
		event := events.NewStockTransactionRecordedEvent(dto.StockItemID, dto.Quantity, dto.TransactionType, actorID)
		s.eventBus.Publish(ctx, event)
	}

	return usage, nil
}

// FetchUsageHistory returns the ledger rows for an item, newest first.
func (s *Service) FetchUsageHistory(itemID int64) ([]*Usage, error) {
	if _, err := s.repo.GetItemByID(itemID); err != nil {
		return nil, err
	}

	usages, err := s.repo.ListUsageForItem(itemID)
	if err != nil {
		s.logger.Error("failed to fetch usage history", "error", err, "item_id", itemID)
		return nil, internal.NewInternalError("failed to fetch usage history", err)
	}
	return usages, nil
}

// UsageByDate reports in/out totals per day over the range, with an entry
// for every day even when nothing moved.
func (s *Service) UsageByDate(from, to time.Time) ([]DayUsage, error) {
	if to.Before(from) {
		return nil, internal.NewValidationError("to must not be before from", internal.ErrCodeValidationFailed)
	}

	totals, err := s.repo.UsageTotalsByDay(from, to)
	if err != nil {
		s.logger.Error("failed to aggregate usage by day", "error", err)
		return nil, internal.NewInternalError("failed to aggregate usage", err)
	}

	var out []DayUsage
	for day := from.Truncate(24 * time.Hour); !day.After(to); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		entry := DayUsage{Date: key}
		if byType, ok := totals[key]; ok {
			entry.QtyIn = byType[TransactionTypeIn]
			entry.QtyOut = byType[TransactionTypeOut]
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *Service) UsageByCategory(from, to time.Time) ([]CategoryUsage, error) {
	if to.Before(from) {
		return nil, internal.NewValidationError("to must not be before from", internal.ErrCodeValidationFailed)
	}

	totals, err := s.repo.UsageTotalsByCategory(from, to)
	if err != nil {
		s.logger.Error("failed to aggregate usage by category", "error", err)
		return nil, internal.NewInternalError("failed to aggregate usage", err)
	}
	return totals, nil
}
