package purchase

import "github.com/frahmantamala/helpdesk-inventory/internal"

type CreateRequestDTO struct {
	BonNumber       string   `json:"bon_number"`
	BonSigner       string   `json:"bon_signer"`
	ItemName        string   `json:"item_name"`
	ItemDescription string   `json:"item_description"`
	ItemQuantity    int64    `json:"item_quantity"`
	EstimatedPrice  *float64 `json:"estimated_price"`
	Notes           string   `json:"notes"`
}

func (d *CreateRequestDTO) Validate() error {
	if d.ItemName == "" {
		return internal.NewValidationFieldError("item_name", "item_name is required", internal.ErrCodeValidationFailed)
	}
	if d.ItemQuantity <= 0 {
		return internal.NewValidationFieldError("item_quantity", "item_quantity must be greater than zero", internal.ErrCodeInvalidQuantity)
	}
	if d.EstimatedPrice != nil && *d.EstimatedPrice < 0 {
		return internal.NewValidationFieldError("estimated_price", "estimated_price cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

type DecisionDTO struct {
	Notes string `json:"notes"`
}

// Filter narrows ListRequests; zero values mean no constraint.
type Filter struct {
	Status string
	UserID int64
	Limit  int
	Offset int
}
