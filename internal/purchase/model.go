package purchase

import (
	"github.com/frahmantamala/helpdesk-inventory/internal"
	datamodel "github.com/frahmantamala/helpdesk-inventory/internal/core/datamodel/purchase"
)

type Request = datamodel.Request

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusPurchased = "purchased"
)

// Only pending requests can be decided; only approved requests can be
// marked purchased. Rejected and purchased are terminal.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusPurchased},
	StatusRejected:  {},
	StatusPurchased: {},
}

func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

var (
	ErrRequestNotFound         = internal.NewNotFoundError("Purchase request not found", internal.ErrCodePurchaseNotFound)
	ErrInvalidStatusTransition = internal.NewConflictError(
		"Purchase request cannot move to the requested status", internal.ErrCodeInvalidTransition)
)
