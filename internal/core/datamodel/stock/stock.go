package stock

import "time"

type Item struct {
	ID           int64      `gorm:"primaryKey"`
	Name         string     `gorm:"column:name;not null"`
	Category     string     `gorm:"column:category"`
	Description  string     `gorm:"column:description"`
	Quantity     int64      `gorm:"column:quantity;not null;default:0"`
	Manufacturer string     `gorm:"column:manufacturer"`
	Model        string     `gorm:"column:model"`
	SerialNumber string     `gorm:"column:serial_number"`
	PurchaseDate *time.Time `gorm:"column:purchase_date"`
	Price        *float64   `gorm:"column:price"`
	Location     string     `gorm:"column:location"`
	Image        string     `gorm:"column:image"`
	Status       string     `gorm:"column:status;not null;default:'available'"`
	CreatedAt    time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Item) TableName() string {
	return "stock_items"
}

// Usage rows are the append-only ledger: written once per transaction,
// never updated or deleted afterwards.
type Usage struct {
	ID              int64     `gorm:"primaryKey"`
	StockItemID     int64     `gorm:"column:stock_item_id;not null;index"`
	IssueID         *int64    `gorm:"column:issue_id"`
	Quantity        int64     `gorm:"column:quantity;not null"`
	TransactionType string    `gorm:"column:transaction_type;not null"`
	AssignedTo      *int64    `gorm:"column:assigned_to"`
	Date            time.Time `gorm:"column:date;default:now()"`
	Notes           string    `gorm:"column:notes"`
}

func (Usage) TableName() string {
	return "stock_usage"
}
