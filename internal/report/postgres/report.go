package postgres

import (
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal/report"
	"github.com/jmoiron/sqlx"
)

// ReportRepository runs the aggregation queries with sqlx; reports never
// write, so there is no need for the ORM layer here.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) report.Repository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) CountIssuesByStatus() ([]report.StatusCount, error) {
	var rows []report.StatusCount
	err := r.db.Select(&rows, `
		SELECT status, COUNT(*) AS count
		FROM issues
		GROUP BY status`)
	return rows, err
}

func (r *ReportRepository) CountIssuesByType() ([]report.TypeCount, error) {
	var rows []report.TypeCount
	err := r.db.Select(&rows, `
		SELECT type, COUNT(*) AS count
		FROM issues
		GROUP BY type
		ORDER BY count DESC`)
	return rows, err
}

func (r *ReportRepository) CountIssuesByMonth(year int) (map[time.Month]int64, error) {
	var rows []struct {
		Month int   `db:"month"`
		Count int64 `db:"count"`
	}
	err := r.db.Select(&rows, `
		SELECT EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*) AS count
		FROM issues
		WHERE EXTRACT(YEAR FROM created_at)::int = $1
		GROUP BY month`, year)
	if err != nil {
		return nil, err
	}

	counts := make(map[time.Month]int64, len(rows))
	for _, row := range rows {
		counts[time.Month(row.Month)] = row.Count
	}
	return counts, nil
}
