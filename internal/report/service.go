package report

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/helpdesk-inventory/internal"
	"github.com/frahmantamala/helpdesk-inventory/internal/issue"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// Repository defines the read-only aggregation queries behind reports
type Repository interface {
	CountIssuesByStatus() ([]StatusCount, error)
	CountIssuesByType() ([]TypeCount, error)
	CountIssuesByMonth(year int) (map[time.Month]int64, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// IssuesByStatus returns a count per lifecycle status, including zeroes
// for statuses with no issues.
func (s *Service) IssuesByStatus() ([]StatusCount, error) {
	rows, err := s.repo.CountIssuesByStatus()
	if err != nil {
		s.logger.Error("failed to count issues by status", "error", err)
		return nil, internal.NewInternalError("failed to build status report", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	statuses := []string{issue.StatusSubmitted, issue.StatusInProgress, issue.StatusEscalated, issue.StatusResolved}
	out := make([]StatusCount, 0, len(statuses))
	for _, status := range statuses {
		out = append(out, StatusCount{Status: status, Count: counts[status]})
	}
	return out, nil
}

func (s *Service) IssuesByType() ([]TypeCount, error) {
	rows, err := s.repo.CountIssuesByType()
	if err != nil {
		s.logger.Error("failed to count issues by type", "error", err)
		return nil, internal.NewInternalError("failed to build type report", err)
	}
	return rows, nil
}

// IssuesByMonth returns twelve buckets for the given year, zero-filled
// for months without issues.
func (s *Service) IssuesByMonth(year int) ([]MonthCount, error) {
	if year < 2000 || year > 2100 {
		return nil, internal.NewValidationError("year out of range", internal.ErrCodeValidationFailed)
	}

	counts, err := s.repo.CountIssuesByMonth(year)
	if err != nil {
		s.logger.Error("failed to count issues by month", "error", err, "year", year)
		return nil, internal.NewInternalError("failed to build monthly report", err)
	}

	out := make([]MonthCount, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, MonthCount{
			Month: time.Date(year, m, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
			Count: counts[m],
		})
	}
	return out, nil
}
