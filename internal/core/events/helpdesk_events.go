package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeStockTransactionRecorded = "stock.transaction_recorded"
	EventTypeIssueStatusChanged       = "issue.status_changed"
	EventTypeIssueAssigned            = "issue.assigned"
	EventTypePurchaseRequestDecided   = "purchase_request.decided"
)

type StockTransactionRecordedEvent struct {
	BaseEvent
	StockItemID     int64  `json:"stock_item_id"`
	Quantity        int64  `json:"quantity"`
	TransactionType string `json:"transaction_type"`
	ActorID         int64  `json:"actor_id"`
}

func NewStockTransactionRecordedEvent(stockItemID, quantity int64, transactionType string, actorID int64) *StockTransactionRecordedEvent {
	return &StockTransactionRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeStockTransactionRecorded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"stock_item_id":    stockItemID,
				"quantity":         quantity,
				"transaction_type": transactionType,
				"actor_id":         actorID,
			},
		},
		StockItemID:     stockItemID,
		Quantity:        quantity,
		TransactionType: transactionType,
		ActorID:         actorID,
	}
}

type IssueStatusChangedEvent struct {
	BaseEvent
	IssueID    int64  `json:"issue_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	ActorID    int64  `json:"actor_id"`
}

func NewIssueStatusChangedEvent(issueID int64, fromStatus, toStatus string, actorID int64) *IssueStatusChangedEvent {
	return &IssueStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeIssueStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"issue_id":    issueID,
				"from_status": fromStatus,
				"to_status":   toStatus,
				"actor_id":    actorID,
			},
		},
		IssueID:    issueID,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		ActorID:    actorID,
	}
}

type IssueAssignedEvent struct {
	BaseEvent
	IssueID    int64 `json:"issue_id"`
	AssigneeID int64 `json:"assignee_id"`
	ActorID    int64 `json:"actor_id"`
}

func NewIssueAssignedEvent(issueID, assigneeID, actorID int64) *IssueAssignedEvent {
	return &IssueAssignedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeIssueAssigned,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"issue_id":    issueID,
				"assignee_id": assigneeID,
				"actor_id":    actorID,
			},
		},
		IssueID:    issueID,
		AssigneeID: assigneeID,
		ActorID:    actorID,
	}
}

type PurchaseRequestDecidedEvent struct {
	BaseEvent
	RequestID int64  `json:"request_id"`
	Decision  string `json:"decision"`
	ActorID   int64  `json:"actor_id"`
}

func NewPurchaseRequestDecidedEvent(requestID int64, decision string, actorID int64) *PurchaseRequestDecidedEvent {
	return &PurchaseRequestDecidedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePurchaseRequestDecided,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id": requestID,
				"decision":   decision,
				"actor_id":   actorID,
			},
		},
		RequestID: requestID,
		Decision:  decision,
		ActorID:   actorID,
	}
}
