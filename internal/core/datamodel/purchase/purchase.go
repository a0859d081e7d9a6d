package purchase

import "time"

type Request struct {
	ID              int64     `gorm:"primaryKey"`
	UserID          int64     `gorm:"column:user_id;not null;index"`
	BonNumber       string    `gorm:"column:bon_number"`
	BonSigner       string    `gorm:"column:bon_signer"`
	ItemName        string    `gorm:"column:item_name;not null"`
	ItemDescription string    `gorm:"column:item_description"`
	ItemQuantity    int64     `gorm:"column:item_quantity;not null"`
	EstimatedPrice  *float64  `gorm:"column:estimated_price"`
	Notes           string    `gorm:"column:notes"`
	Status          string    `gorm:"column:status;not null;default:'pending'"`
	CreatedAt       time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time `gorm:"column:updated_at;default:now()"`
}

func (Request) TableName() string {
	return "purchase_requests"
}
