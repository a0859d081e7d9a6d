package stock_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/helpdesk-inventory/internal"
	"github.com/frahmantamala/helpdesk-inventory/internal/stock"
)

func TestStock(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Stock Suite")
}

// Mock repository for testing. ApplyTransaction mirrors the transactional
// semantics of the real repository: check, adjust, append, atomically.
type mockStockRepository struct {
	items       map[int64]*stock.Item
	usage       []*stock.Usage
	dayTotals   map[string]map[string]int64
	applyError  error
	listError   error
	createError error
	nextItemID  int64
	nextUsageID int64
}

func newMockStockRepository() *mockStockRepository {
	return &mockStockRepository{
		items:       make(map[int64]*stock.Item),
		dayTotals:   make(map[string]map[string]int64),
		nextItemID:  1,
		nextUsageID: 1,
	}
}

func (m *mockStockRepository) CreateItem(item *stock.Item) error {
	if m.createError != nil {
		return m.createError
	}
	item.ID = m.nextItemID
	m.nextItemID++
	m.items[item.ID] = item
	return nil
}

func (m *mockStockRepository) GetItemByID(id int64) (*stock.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, stock.ErrItemNotFound
	}
	return item, nil
}

func (m *mockStockRepository) ListItems(filter stock.ItemFilter) ([]*stock.Item, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var out []*stock.Item
	for _, item := range m.items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Location != "" && item.Location != filter.Location {
			continue
		}
		if filter.Manufacturer != "" && item.Manufacturer != filter.Manufacturer {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (m *mockStockRepository) UpdateItem(item *stock.Item) error {
	if _, ok := m.items[item.ID]; !ok {
		return stock.ErrItemNotFound
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockStockRepository) DeleteItem(id int64, cascadeUsage bool) error {
	delete(m.items, id)
	if cascadeUsage {
		kept := m.usage[:0]
		for _, u := range m.usage {
			if u.StockItemID != id {
				kept = append(kept, u)
			}
		}
		m.usage = kept
	}
	return nil
}

func (m *mockStockRepository) ApplyTransaction(usage *stock.Usage) error {
	if m.applyError != nil {
		return m.applyError
	}
	item, ok := m.items[usage.StockItemID]
	if !ok {
		return stock.ErrItemNotFound
	}

	switch usage.TransactionType {
	case stock.TransactionTypeIn:
		item.Quantity += usage.Quantity
	case stock.TransactionTypeOut:
		if item.Quantity < usage.Quantity {
			return stock.ErrInsufficientStock
		}
		item.Quantity -= usage.Quantity
	}

	usage.ID = m.nextUsageID
	m.nextUsageID++
	m.usage = append(m.usage, usage)
	return nil
}

func (m *mockStockRepository) ListUsageForItem(itemID int64) ([]*stock.Usage, error) {
	var out []*stock.Usage
	// newest first
	for i := len(m.usage) - 1; i >= 0; i-- {
		if m.usage[i].StockItemID == itemID {
			out = append(out, m.usage[i])
		}
	}
	return out, nil
}

func (m *mockStockRepository) UsageTotalsByDay(from, to time.Time) (map[string]map[string]int64, error) {
	return m.dayTotals, nil
}

func (m *mockStockRepository) UsageTotalsByCategory(from, to time.Time) ([]stock.CategoryUsage, error) {
	return nil, nil
}

var _ = Describe("Stock Service", func() {
	var (
		repo    *mockStockRepository
		service *stock.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockStockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = stock.NewService(repo, nil, false, logger)
		ctx = context.Background()
	})

	seedItem := func(name string, quantity int64) *stock.Item {
		item, err := service.CreateItem(stock.CreateItemDTO{Name: name, Quantity: quantity, Category: "cables"})
		Expect(err).NotTo(HaveOccurred())
		return item
	}

	recipient := func(id int64) *int64 { return &id }

	Describe("stored literals", func() {
		It("writes the backend's exact item status strings", func() {
			Expect([]string{
				stock.ItemStatusAvailable, stock.ItemStatusInUse,
				stock.ItemStatusRepair, stock.ItemStatusDisposed,
			}).To(Equal([]string{"available", "in-use", "repair", "disposed"}))
		})

		It("accepts only the four item statuses", func() {
			for _, status := range []string{"maintenance", "retired", "in_use", "lost"} {
				Expect(stock.IsValidItemStatus(status)).To(BeFalse(), status)
			}
		})
	})

	Describe("CreateItem", func() {
		It("defaults the status to available", func() {
			item := seedItem("HDMI Cable", 10)
			Expect(item.Status).To(Equal(stock.ItemStatusAvailable))
		})

		It("rejects a missing name", func() {
			_, err := service.CreateItem(stock.CreateItemDTO{Quantity: 1})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("rejects a negative starting quantity", func() {
			_, err := service.CreateItem(stock.CreateItemDTO{Name: "Cable", Quantity: -1})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("RecordTransaction", func() {
		It("keeps the item count and the ledger in agreement", func() {
			item := seedItem("Laptop Charger", 5)

			_, err := service.RecordTransaction(ctx, 1, stock.RecordTransactionDTO{
				StockItemID: item.ID, Quantity: 3, TransactionType: stock.TransactionTypeIn,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.items[item.ID].Quantity).To(Equal(int64(8)))

			// more than on hand: rejected, nothing changes
			_, err = service.RecordTransaction(ctx, 1, stock.RecordTransactionDTO{
				StockItemID: item.ID, Quantity: 10, TransactionType: stock.TransactionTypeOut, AssignedTo: recipient(4),
			})
			Expect(err).To(MatchError(stock.ErrInsufficientStock))
			Expect(repo.items[item.ID].Quantity).To(Equal(int64(8)))
			Expect(repo.usage).To(HaveLen(1))

			// taking exactly what is on hand drains it to zero
			_, err = service.RecordTransaction(ctx, 1, stock.RecordTransactionDTO{
				StockItemID: item.ID, Quantity: 8, TransactionType: stock.TransactionTypeOut, AssignedTo: recipient(4),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.items[item.ID].Quantity).To(Equal(int64(0)))
			Expect(repo.usage).To(HaveLen(2))
		})

		It("rejects an out transaction without a recipient", func() {
			item := seedItem("Mouse", 5)

			_, err := service.RecordTransaction(ctx, 1, stock.RecordTransactionDTO{
				StockItemID: item.ID, Quantity: 2, TransactionType: stock.TransactionTypeOut,
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(repo.items[item.ID].Quantity).To(Equal(int64(5)))
			Expect(repo.usage).To(BeEmpty())
		})

		It("does not demand a recipient for incoming stock", func() {
			item := seedItem("Mouse", 5)

			_, err := service.RecordTransaction(ctx, 1, stock.RecordTransactionDTO{
				StockItemID: item.ID, Quantity: 2, TransactionType: stock.TransactionTypeIn,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects a zero or negative quantity", func() {
			item := seedItem("Mouse", 5)

			for _, qty := range []int64{0, -3} {
				_, err := service.RecordTransaction(ctx, 1, stock.RecordTransactionDTO{
					StockItemID: item.ID, Quantity: qty, TransactionType: stock.TransactionTypeIn,
				})
				Expect(err).To(HaveOccurred())
			}
			Expect(repo.usage).To(BeEmpty())
		})

		It("rejects an unknown transaction type", func() {
			item := seedItem("Mouse", 5)

			_, err := service.RecordTransaction(ctx, 1, stock.RecordTransactionDTO{
				StockItemID: item.ID, Quantity: 1, TransactionType: "sideways",
			})
			Expect(err).To(HaveOccurred())
		})

		It("fails for a missing item", func() {
			_, err := service.RecordTransaction(ctx, 1, stock.RecordTransactionDTO{
				StockItemID: 999, Quantity: 1, TransactionType: stock.TransactionTypeIn,
			})
			Expect(err).To(MatchError(stock.ErrItemNotFound))
		})
	})

	Describe("ListItems", func() {
		BeforeEach(func() {
			seedItem("HDMI Cable 2m", 10)
			seedItem("USB-C Cable", 5)
			item, err := service.CreateItem(stock.CreateItemDTO{
				Name: "Monitor", Quantity: 3, Category: "displays",
				Description: "24-inch office monitor",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(item).NotTo(BeNil())
		})

		It("applies equality filters", func() {
			items, err := service.ListItems(stock.ItemFilter{Category: "displays"})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].Name).To(Equal("Monitor"))
		})

		It("matches the search term case-insensitively against name and description", func() {
			items, err := service.ListItems(stock.ItemFilter{Search: "cable"})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(2))

			items, err = service.ListItems(stock.ItemFilter{Search: "OFFICE"})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].Name).To(Equal("Monitor"))
		})

		It("returns nothing when the search matches nothing", func() {
			items, err := service.ListItems(stock.ItemFilter{Search: "printer"})
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(BeEmpty())
		})
	})

	Describe("FetchUsageHistory", func() {
		It("returns ledger rows newest first", func() {
			item := seedItem("Charger", 10)

			for _, qty := range []int64{1, 2, 3} {
				_, err := service.RecordTransaction(ctx, 1, stock.RecordTransactionDTO{
					StockItemID: item.ID, Quantity: qty, TransactionType: stock.TransactionTypeOut, AssignedTo: recipient(4),
				})
				Expect(err).NotTo(HaveOccurred())
			}

			history, err := service.FetchUsageHistory(item.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(3))
			Expect(history[0].Quantity).To(Equal(int64(3)))
			Expect(history[2].Quantity).To(Equal(int64(1)))
		})

		It("fails for a missing item", func() {
			_, err := service.FetchUsageHistory(42)
			Expect(err).To(MatchError(stock.ErrItemNotFound))
		})
	})

	Describe("DeleteItem", func() {
		It("preserves ledger rows by default", func() {
			item := seedItem("Charger", 10)
			_, err := service.RecordTransaction(ctx, 1, stock.RecordTransactionDTO{
				StockItemID: item.ID, Quantity: 2, TransactionType: stock.TransactionTypeOut, AssignedTo: recipient(4),
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteItem(item.ID)).To(Succeed())
			Expect(repo.usage).To(HaveLen(1))
		})

		It("cascades ledger rows when configured to", func() {
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
			cascading := stock.NewService(repo, nil, true, logger)

			item := seedItem("Charger", 10)
			_, err := service.RecordTransaction(ctx, 1, stock.RecordTransactionDTO{
				StockItemID: item.ID, Quantity: 2, TransactionType: stock.TransactionTypeOut, AssignedTo: recipient(4),
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(cascading.DeleteItem(item.ID)).To(Succeed())
			Expect(repo.usage).To(BeEmpty())
		})
	})

	Describe("UsageByDate", func() {
		It("zero-fills days without movement", func() {
			from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
			to := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
			repo.dayTotals = map[string]map[string]int64{
				"2026-03-02": {stock.TransactionTypeIn: 5, stock.TransactionTypeOut: 2},
			}

			report, err := service.UsageByDate(from, to)
			Expect(err).NotTo(HaveOccurred())
			Expect(report).To(HaveLen(4))
			Expect(report[0]).To(Equal(stock.DayUsage{Date: "2026-03-01"}))
			Expect(report[1]).To(Equal(stock.DayUsage{Date: "2026-03-02", QtyIn: 5, QtyOut: 2}))
			Expect(report[3]).To(Equal(stock.DayUsage{Date: "2026-03-04"}))
		})

		It("rejects an inverted range", func() {
			from := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
			to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
			_, err := service.UsageByDate(from, to)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateItem", func() {
		It("only touches the fields present in the request", func() {
			item := seedItem("Charger", 10)

			location := "Storage B"
			updated, err := service.UpdateItem(item.ID, stock.UpdateItemDTO{Location: &location})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Location).To(Equal("Storage B"))
			Expect(updated.Name).To(Equal("Charger"))
			Expect(updated.Quantity).To(Equal(int64(10)))
		})

		It("rejects an unknown status", func() {
			item := seedItem("Charger", 10)

			bogus := "lost"
			_, err := service.UpdateItem(item.ID, stock.UpdateItemDTO{Status: &bogus})
			Expect(err).To(HaveOccurred())
		})
	})

	It("wraps repository failures as internal errors", func() {
		repo.listError = errors.New("connection refused")
		_, err := service.ListItems(stock.ItemFilter{})
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
	})
})
