package issue

import "time"

type Issue struct {
	ID          int64      `gorm:"primaryKey"`
	Title       string     `gorm:"column:title;not null"`
	Description string     `gorm:"column:description"`
	SubmittedBy int64      `gorm:"column:submitted_by;not null"`
	AssignedTo  *int64     `gorm:"column:assigned_to"`
	Severity    string     `gorm:"column:severity;not null"`
	Type        string     `gorm:"column:type;not null"`
	Status      string     `gorm:"column:status;not null;default:'submitted'"`
	ResolvedAt  *time.Time `gorm:"column:resolved_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Issue) TableName() string {
	return "issues"
}

type Comment struct {
	ID        int64     `gorm:"primaryKey"`
	IssueID   int64     `gorm:"column:issue_id;not null;index"`
	UserID    int64     `gorm:"column:user_id;not null"`
	Body      string    `gorm:"column:body;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (Comment) TableName() string {
	return "issue_comments"
}

// StockLink ties an issue to a stock item involved in its resolution.
type StockLink struct {
	ID          int64     `gorm:"primaryKey"`
	IssueID     int64     `gorm:"column:issue_id;not null;index"`
	StockItemID int64     `gorm:"column:stock_item_id;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

func (StockLink) TableName() string {
	return "issue_stock_items"
}
