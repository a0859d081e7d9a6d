package stock

import (
	"github.com/frahmantamala/helpdesk-inventory/internal"
	datamodel "github.com/frahmantamala/helpdesk-inventory/internal/core/datamodel/stock"
)

// Item and Usage are the persisted shapes; the feature package works with
// them directly so handlers, service and repository agree on one type.
type (
	Item  = datamodel.Item
	Usage = datamodel.Usage
)

const (
	ItemStatusAvailable = "available"
	ItemStatusInUse     = "in-use"
	ItemStatusRepair    = "repair"
	ItemStatusDisposed  = "disposed"
)

const (
	TransactionTypeIn  = "in"
	TransactionTypeOut = "out"
)

func IsValidItemStatus(s string) bool {
	switch s {
	case ItemStatusAvailable, ItemStatusInUse, ItemStatusRepair, ItemStatusDisposed:
		return true
	}
	return false
}

func IsValidTransactionType(t string) bool {
	return t == TransactionTypeIn || t == TransactionTypeOut
}

var (
	ErrItemNotFound      = internal.NewNotFoundError("Stock item not found", internal.ErrCodeStockNotFound)
	ErrInsufficientStock = internal.NewConflictError("Not enough stock for this transaction", internal.ErrCodeInsufficientStock)
)
