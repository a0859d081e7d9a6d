package postgres

import (
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal/stock"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRepository implements the stock.Repository interface using GORM
type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) stock.Repository {
	return &StockRepository{db: db}
}

func (r *StockRepository) CreateItem(item *stock.Item) error {
	return r.db.Create(item).Error
}

func (r *StockRepository) GetItemByID(id int64) (*stock.Item, error) {
	var item stock.Item
	err := r.db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, stock.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *StockRepository) ListItems(filter stock.ItemFilter) ([]*stock.Item, error) {
	var items []*stock.Item

	query := r.db.Model(&stock.Item{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}
	if filter.Manufacturer != "" {
		query = query.Where("manufacturer = ?", filter.Manufacturer)
	}

	err := query.Order("name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&items).Error
	return items, err
}

func (r *StockRepository) UpdateItem(item *stock.Item) error {
	item.UpdatedAt = time.Now()
	return r.db.Save(item).Error
}

func (r *StockRepository) DeleteItem(id int64, cascadeUsage bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if cascadeUsage {
			if err := tx.Where("stock_item_id = ?", id).Delete(&stock.Usage{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&stock.Item{}).Error
	})
}

// ApplyTransaction locks the item row, checks the balance for outgoing
// movements, adjusts the quantity and appends the ledger row. Everything
// happens in one database transaction so a failed check leaves no trace.
func (r *StockRepository) ApplyTransaction(usage *stock.Usage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item stock.Item
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", usage.StockItemID).
			First(&item).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return stock.ErrItemNotFound
			}
			return err
		}

		newQuantity := item.Quantity
		switch usage.TransactionType {
		case stock.TransactionTypeIn:
			newQuantity += usage.Quantity
		case stock.TransactionTypeOut:
			if item.Quantity < usage.Quantity {
				return stock.ErrInsufficientStock
			}
			newQuantity -= usage.Quantity
		}

		err = tx.Model(&stock.Item{}).
			Where("id = ?", item.ID).
			Updates(map[string]interface{}{
				"quantity":   newQuantity,
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}

		return tx.Create(usage).Error
	})
}

func (r *StockRepository) ListUsageForItem(itemID int64) ([]*stock.Usage, error) {
	var usages []*stock.Usage
	err := r.db.Where("stock_item_id = ?", itemID).
		Order("date DESC, id DESC").
		Find(&usages).Error
	return usages, err
}

type dayTotalRow struct {
	Day             time.Time `gorm:"column:day"`
	TransactionType string    `gorm:"column:transaction_type"`
	Total           int64     `gorm:"column:total"`
}

func (r *StockRepository) UsageTotalsByDay(from, to time.Time) (map[string]map[string]int64, error) {
	var rows []dayTotalRow
	err := r.db.Raw(`
		SELECT date_trunc('day', date) AS day, transaction_type, SUM(quantity) AS total
		FROM stock_usage
		WHERE date >= ? AND date < ?
		GROUP BY day, transaction_type
		ORDER BY day`, from, to.AddDate(0, 0, 1)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]map[string]int64, len(rows))
	for _, row := range rows {
		key := row.Day.Format("2006-01-02")
		if totals[key] == nil {
			totals[key] = make(map[string]int64, 2)
		}
		totals[key][row.TransactionType] = row.Total
	}
	return totals, nil
}

type categoryTotalRow struct {
	Category        string `gorm:"column:category"`
	TransactionType string `gorm:"column:transaction_type"`
	Total           int64  `gorm:"column:total"`
}

// UsageTotalsByCategory emits one bucket per known item category, so a
// category with no movement in the range still shows up with zero totals.
func (r *StockRepository) UsageTotalsByCategory(from, to time.Time) ([]stock.CategoryUsage, error) {
	var categories []string
	err := r.db.Model(&stock.Item{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}

	var rows []categoryTotalRow
	err = r.db.Raw(`
		SELECT si.category, su.transaction_type, SUM(su.quantity) AS total
		FROM stock_usage su
		JOIN stock_items si ON si.id = su.stock_item_id
		WHERE su.date >= ? AND su.date < ?
		GROUP BY si.category, su.transaction_type`, from, to.AddDate(0, 0, 1)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]stock.CategoryUsage, len(categories))
	byCategory := make(map[string]*stock.CategoryUsage, len(categories))
	for i, category := range categories {
		out[i] = stock.CategoryUsage{Category: category}
		byCategory[category] = &out[i]
	}

	for _, row := range rows {
		entry, ok := byCategory[row.Category]
		if !ok {
			continue
		}
		switch row.TransactionType {
		case stock.TransactionTypeIn:
			entry.QtyIn = row.Total
		case stock.TransactionTypeOut:
			entry.QtyOut = row.Total
		}
	}
	return out, nil
}
