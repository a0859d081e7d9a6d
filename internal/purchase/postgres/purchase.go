package postgres

import (
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal/purchase"
	"gorm.io/gorm"
)

// PurchaseRepository implements the purchase.Repository interface using GORM
type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) purchase.Repository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(req *purchase.Request) error {
	return r.db.Create(req).Error
}

func (r *PurchaseRepository) GetByID(id int64) (*purchase.Request, error) {
	var req purchase.Request
	err := r.db.Where("id = ?", id).First(&req).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, purchase.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *PurchaseRepository) List(filter purchase.Filter) ([]*purchase.Request, error) {
	var requests []*purchase.Request

	query := r.db.Model(&purchase.Request{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	err := query.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&requests).Error
	return requests, err
}

func (r *PurchaseRepository) UpdateStatus(id int64, status, notes string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if notes != "" {
		updates["notes"] = notes
	}

	return r.db.Model(&purchase.Request{}).
		Where("id = ?", id).
		Updates(updates).Error
}
