package issue

import "github.com/frahmantamala/helpdesk-inventory/internal"

type CreateIssueDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Type        string `json:"type"`
}

func (d *CreateIssueDTO) Validate() error {
	if d.Title == "" {
		return internal.NewValidationFieldError("title", "title is required", internal.ErrCodeValidationFailed)
	}
	if !IsValidSeverity(d.Severity) {
		return internal.NewValidationFieldError("severity", "severity must be low, medium or high", internal.ErrCodeValidationFailed)
	}
	if !IsValidType(d.Type) {
		return internal.NewValidationFieldError("type", "unknown issue type", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateIssueDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Severity    *string `json:"severity"`
	Type        *string `json:"type"`
}

func (d *UpdateIssueDTO) Validate() error {
	if d.Title != nil && *d.Title == "" {
		return internal.NewValidationFieldError("title", "title cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.Severity != nil && !IsValidSeverity(*d.Severity) {
		return internal.NewValidationFieldError("severity", "severity must be low, medium or high", internal.ErrCodeValidationFailed)
	}
	if d.Type != nil && !IsValidType(*d.Type) {
		return internal.NewValidationFieldError("type", "unknown issue type", internal.ErrCodeValidationFailed)
	}
	return nil
}

type AssignIssueDTO struct {
	AssigneeID int64 `json:"assignee_id"`
}

type ChangeStatusDTO struct {
	Status string `json:"status"`
}

type AddCommentDTO struct {
	Body string `json:"body"`
}

func (d *AddCommentDTO) Validate() error {
	if d.Body == "" {
		return internal.NewValidationFieldError("body", "comment body is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type LinkStockItemDTO struct {
	StockItemID int64 `json:"stock_item_id"`
}

// Filter narrows ListIssues; zero values mean no constraint.
type Filter struct {
	Status      string
	Severity    string
	Type        string
	SubmittedBy int64
	AssignedTo  int64
	Limit       int
	Offset      int
}
