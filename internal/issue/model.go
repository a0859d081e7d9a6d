package issue

import (
	"github.com/frahmantamala/helpdesk-inventory/internal"
	datamodel "github.com/frahmantamala/helpdesk-inventory/internal/core/datamodel/issue"
)

type (
	Issue     = datamodel.Issue
	Comment   = datamodel.Comment
	StockLink = datamodel.StockLink
)

const (
	StatusSubmitted  = "submitted"
	StatusInProgress = "in-progress"
	StatusEscalated  = "escalated"
	StatusResolved   = "resolved"
)

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

const (
	TypeHardware = "hardware"
	TypeSoftware = "software"
	TypeNetwork  = "network"
)

// statusTransitions is the full lifecycle. Resolved is terminal; an
// escalated issue can come back in progress or be resolved directly.
var statusTransitions = map[string][]string{
	StatusSubmitted:  {StatusInProgress, StatusEscalated},
	StatusInProgress: {StatusResolved, StatusEscalated},
	StatusEscalated:  {StatusInProgress, StatusResolved},
	StatusResolved:   {},
}

func IsValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func IsValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

func IsValidType(t string) bool {
	switch t {
	case TypeHardware, TypeSoftware, TypeNetwork:
		return true
	}
	return false
}

var (
	ErrIssueNotFound           = internal.NewNotFoundError("Issue not found", internal.ErrCodeIssueNotFound)
	ErrInvalidStatusTransition = internal.NewConflictError(
		"Issue cannot move to the requested status", internal.ErrCodeInvalidTransition)
)
