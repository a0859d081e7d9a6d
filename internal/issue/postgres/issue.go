package postgres

import (
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal/issue"
	"gorm.io/gorm"
)

// IssueRepository implements the issue.Repository interface using GORM
type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) issue.Repository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Create(iss *issue.Issue) error {
	return r.db.Create(iss).Error
}

func (r *IssueRepository) GetByID(id int64) (*issue.Issue, error) {
	var iss issue.Issue
	err := r.db.Where("id = ?", id).First(&iss).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, issue.ErrIssueNotFound
		}
		return nil, err
	}
	return &iss, nil
}

func (r *IssueRepository) List(filter issue.Filter) ([]*issue.Issue, error) {
	var issues []*issue.Issue

	query := r.db.Model(&issue.Issue{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.SubmittedBy != 0 {
		query = query.Where("submitted_by = ?", filter.SubmittedBy)
	}
	if filter.AssignedTo != 0 {
		query = query.Where("assigned_to = ?", filter.AssignedTo)
	}

	err := query.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&issues).Error
	return issues, err
}

func (r *IssueRepository) Update(iss *issue.Issue) error {
	iss.UpdatedAt = time.Now()
	return r.db.Save(iss).Error
}

// Delete removes the issue together with its comments and stock links.
func (r *IssueRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", id).Delete(&issue.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("issue_id = ?", id).Delete(&issue.StockLink{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&issue.Issue{}).Error
	})
}

func (r *IssueRepository) AddComment(comment *issue.Comment) error {
	return r.db.Create(comment).Error
}

func (r *IssueRepository) ListComments(issueID int64) ([]*issue.Comment, error) {
	var comments []*issue.Comment
	err := r.db.Where("issue_id = ?", issueID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *IssueRepository) LinkStockItem(link *issue.StockLink) error {
	return r.db.Create(link).Error
}

func (r *IssueRepository) ListStockLinks(issueID int64) ([]*issue.StockLink, error) {
	var links []*issue.StockLink
	err := r.db.Where("issue_id = ?", issueID).
		Order("created_at ASC").
		Find(&links).Error
	return links, err
}
