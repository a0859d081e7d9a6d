package events

import (
	"context"
	"log/slog"
)

// RegisterLoggingHandlers attaches an audit-log subscriber to every domain
// event type, so published events always reach at least one consumer.
func RegisterLoggingHandlers(bus *EventBus, logger *slog.Logger) {
	eventTypes := []string{
		EventTypeStockTransactionRecorded,
		EventTypeIssueStatusChanged,
		EventTypeIssueAssigned,
		EventTypePurchaseRequestDecided,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
			logger.Info("domain event",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"occurred_at", event.OccurredAt(),
				"payload", event.Payload())
			return nil
		})
	}
}
