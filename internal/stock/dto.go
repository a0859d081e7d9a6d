package stock

import (
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal"
)

type CreateItemDTO struct {
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	Quantity     int64      `json:"quantity"`
	Manufacturer string     `json:"manufacturer"`
	Model        string     `json:"model"`
	SerialNumber string     `json:"serial_number"`
	PurchaseDate *time.Time `json:"purchase_date"`
	Price        *float64   `json:"price"`
	Location     string     `json:"location"`
	Image        string     `json:"image"`
	Status       string     `json:"status"`
}

func (d *CreateItemDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if d.Quantity < 0 {
		return internal.NewValidationFieldError("quantity", "quantity cannot be negative", internal.ErrCodeInvalidQuantity)
	}
	if d.Status == "" {
		d.Status = ItemStatusAvailable
	}
	if !IsValidItemStatus(d.Status) {
		return internal.NewValidationFieldError("status", "unknown stock item status", internal.ErrCodeInvalidStatus)
	}
	return nil
}

// UpdateItemDTO carries a partial update: nil fields keep their value.
// Quantity is deliberately absent, it only moves through transactions.
type UpdateItemDTO struct {
	Name         *string    `json:"name"`
	Category     *string    `json:"category"`
	Description  *string    `json:"description"`
	Manufacturer *string    `json:"manufacturer"`
	Model        *string    `json:"model"`
	SerialNumber *string    `json:"serial_number"`
	PurchaseDate *time.Time `json:"purchase_date"`
	Price        *float64   `json:"price"`
	Location     *string    `json:"location"`
	Image        *string    `json:"image"`
	Status       *string    `json:"status"`
}

func (d *UpdateItemDTO) Validate() error {
	if d.Name != nil && *d.Name == "" {
		return internal.NewValidationFieldError("name", "name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.Status != nil && !IsValidItemStatus(*d.Status) {
		return internal.NewValidationFieldError("status", "unknown stock item status", internal.ErrCodeInvalidStatus)
	}
	return nil
}

type RecordTransactionDTO struct {
	StockItemID     int64  `json:"stock_item_id"`
	Quantity        int64  `json:"quantity"`
	TransactionType string `json:"transaction_type"`
	IssueID         *int64 `json:"issue_id"`
	AssignedTo      *int64 `json:"assigned_to"`
	Notes           string `json:"notes"`
}

func (d *RecordTransactionDTO) Validate() error {
	if d.StockItemID <= 0 {
		return internal.NewValidationFieldError("stock_item_id", "stock_item_id is required", internal.ErrCodeValidationFailed)
	}
	if d.Quantity <= 0 {
		return internal.NewValidationFieldError("quantity", "quantity must be greater than zero", internal.ErrCodeInvalidQuantity)
	}
	if !IsValidTransactionType(d.TransactionType) {
		return internal.NewValidationFieldError("transaction_type", "transaction_type must be in or out", internal.ErrCodeValidationFailed)
	}
	// every withdrawal must name who received the stock
	if d.TransactionType == TransactionTypeOut && (d.AssignedTo == nil || *d.AssignedTo <= 0) {
		return internal.NewValidationFieldError("assigned_to", "assigned_to is required for out transactions", internal.ErrCodeValidationFailed)
	}
	return nil
}

// ItemFilter narrows ListItems. Equality filters run in SQL; Search is a
// case-insensitive substring match on name and description applied after
// the rows come back.
type ItemFilter struct {
	Category     string
	Status       string
	Location     string
	Manufacturer string
	Search       string
	Limit        int
	Offset       int
}

type DayUsage struct {
	Date     string `json:"date"`
	QtyIn    int64  `json:"quantity_in"`
	QtyOut   int64  `json:"quantity_out"`
}

type CategoryUsage struct {
	Category string `json:"category"`
	QtyIn    int64  `json:"quantity_in"`
	QtyOut   int64  `json:"quantity_out"`
}
