package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/helpdesk-inventory/internal/core/events"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var (
		bus    *events.EventBus
		logger *slog.Logger
		ctx    context.Context
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
		ctx = context.Background()
	})

	Describe("PublishSync", func() {
		It("delivers the event to every subscriber", func() {
			var (
				mu       sync.Mutex
				received []string
			)
			handler := func(ctx context.Context, event events.Event) error {
				mu.Lock()
				defer mu.Unlock()
				received = append(received, event.EventID())
				return nil
			}
			bus.Subscribe(events.EventTypeStockTransactionRecorded, handler)
			bus.Subscribe(events.EventTypeStockTransactionRecorded, handler)

			event := events.NewStockTransactionRecordedEvent(1, 3, "in", 7)
			Expect(bus.PublishSync(ctx, event)).To(Succeed())
			Expect(received).To(HaveLen(2))
			Expect(received[0]).To(Equal(event.EventID()))
		})

		It("propagates a handler failure", func() {
			bus.Subscribe(events.EventTypeIssueAssigned, func(ctx context.Context, event events.Event) error {
				return errors.New("downstream unavailable")
			})

			err := bus.PublishSync(ctx, events.NewIssueAssignedEvent(1, 2, 3))
			Expect(err).To(HaveOccurred())
		})

		It("is a no-op without subscribers", func() {
			Expect(bus.PublishSync(ctx, events.NewIssueAssignedEvent(1, 2, 3))).To(Succeed())
		})
	})

	Describe("RegisterLoggingHandlers", func() {
		It("logs every domain event type it subscribes to", func() {
			var buf bytes.Buffer
			auditLogger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			events.RegisterLoggingHandlers(bus, auditLogger)

			domainEvents := []events.Event{
				events.NewStockTransactionRecordedEvent(1, 3, "out", 7),
				events.NewIssueStatusChangedEvent(1, "submitted", "in-progress", 7),
				events.NewIssueAssignedEvent(1, 2, 7),
				events.NewPurchaseRequestDecidedEvent(1, "approved", 7),
			}
			for _, event := range domainEvents {
				Expect(bus.PublishSync(ctx, event)).To(Succeed())
				Expect(buf.String()).To(ContainSubstring(event.EventType()))
				Expect(buf.String()).To(ContainSubstring(event.EventID()))
			}
		})
	})
})
