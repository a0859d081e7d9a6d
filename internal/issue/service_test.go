package issue_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/helpdesk-inventory/internal"
	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
	"github.com/frahmantamala/helpdesk-inventory/internal/issue"
)

func TestIssue(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Issue Suite")
}

// Mock repository for testing
type mockIssueRepository struct {
	issues      map[int64]*issue.Issue
	comments    []*issue.Comment
	links       []*issue.StockLink
	updateError error
	nextID      int64
}

func newMockIssueRepository() *mockIssueRepository {
	return &mockIssueRepository{
		issues: make(map[int64]*issue.Issue),
		nextID: 1,
	}
}

func (m *mockIssueRepository) Create(iss *issue.Issue) error {
	iss.ID = m.nextID
	m.nextID++
	m.issues[iss.ID] = iss
	return nil
}

func (m *mockIssueRepository) GetByID(id int64) (*issue.Issue, error) {
	iss, ok := m.issues[id]
	if !ok {
		return nil, issue.ErrIssueNotFound
	}
	return iss, nil
}

func (m *mockIssueRepository) List(filter issue.Filter) ([]*issue.Issue, error) {
	var out []*issue.Issue
	for _, iss := range m.issues {
		if filter.Status != "" && iss.Status != filter.Status {
			continue
		}
		if filter.Severity != "" && iss.Severity != filter.Severity {
			continue
		}
		if filter.SubmittedBy != 0 && iss.SubmittedBy != filter.SubmittedBy {
			continue
		}
		out = append(out, iss)
	}
	return out, nil
}

func (m *mockIssueRepository) Update(iss *issue.Issue) error {
	if m.updateError != nil {
		return m.updateError
	}
	if _, ok := m.issues[iss.ID]; !ok {
		return issue.ErrIssueNotFound
	}
	m.issues[iss.ID] = iss
	return nil
}

func (m *mockIssueRepository) Delete(id int64) error {
	delete(m.issues, id)
	return nil
}

func (m *mockIssueRepository) AddComment(comment *issue.Comment) error {
	comment.ID = int64(len(m.comments) + 1)
	m.comments = append(m.comments, comment)
	return nil
}

func (m *mockIssueRepository) ListComments(issueID int64) ([]*issue.Comment, error) {
	var out []*issue.Comment
	for _, c := range m.comments {
		if c.IssueID == issueID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockIssueRepository) LinkStockItem(link *issue.StockLink) error {
	link.ID = int64(len(m.links) + 1)
	m.links = append(m.links, link)
	return nil
}

func (m *mockIssueRepository) ListStockLinks(issueID int64) ([]*issue.StockLink, error) {
	var out []*issue.StockLink
	for _, l := range m.links {
		if l.IssueID == issueID {
			out = append(out, l)
		}
	}
	return out, nil
}

var _ = Describe("Issue Service", func() {
	var (
		repo    *mockIssueRepository
		service *issue.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockIssueRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = issue.NewService(repo, nil, logger)
		ctx = context.Background()
	})

	submit := func() *issue.Issue {
		iss, err := service.CreateIssue(3, issue.CreateIssueDTO{
			Title:    "Laptop will not boot",
			Severity: issue.SeverityHigh,
			Type:     issue.TypeHardware,
		})
		Expect(err).NotTo(HaveOccurred())
		return iss
	}

	Describe("CreateIssue", func() {
		It("starts in the submitted status", func() {
			iss := submit()
			Expect(iss.Status).To(Equal(issue.StatusSubmitted))
			Expect(iss.SubmittedBy).To(Equal(int64(3)))
			Expect(iss.AssignedTo).To(BeNil())
		})

		It("rejects a missing title", func() {
			_, err := service.CreateIssue(3, issue.CreateIssueDTO{Severity: issue.SeverityLow, Type: issue.TypeSoftware})
			Expect(err).To(HaveOccurred())
		})

		It("rejects an unknown severity", func() {
			_, err := service.CreateIssue(3, issue.CreateIssueDTO{Title: "t", Severity: "urgent", Type: issue.TypeSoftware})
			Expect(err).To(HaveOccurred())
		})

		It("rejects severities and types outside the closed sets", func() {
			for _, severity := range []string{"critical", "urgent", ""} {
				_, err := service.CreateIssue(3, issue.CreateIssueDTO{Title: "t", Severity: severity, Type: issue.TypeHardware})
				Expect(err).To(HaveOccurred(), severity)
			}
			for _, issueType := range []string{"access", "other", ""} {
				_, err := service.CreateIssue(3, issue.CreateIssueDTO{Title: "t", Severity: issue.SeverityLow, Type: issueType})
				Expect(err).To(HaveOccurred(), issueType)
			}
		})
	})

	Describe("stored literals", func() {
		It("writes the backend's exact status, severity and type strings", func() {
			Expect(issue.StatusSubmitted).To(Equal("submitted"))
			Expect(issue.StatusInProgress).To(Equal("in-progress"))
			Expect(issue.StatusEscalated).To(Equal("escalated"))
			Expect(issue.StatusResolved).To(Equal("resolved"))

			Expect([]string{issue.SeverityLow, issue.SeverityMedium, issue.SeverityHigh}).
				To(Equal([]string{"low", "medium", "high"}))
			Expect([]string{issue.TypeHardware, issue.TypeSoftware, issue.TypeNetwork}).
				To(Equal([]string{"hardware", "software", "network"}))
		})
	})

	Describe("ChangeStatus", func() {
		It("walks the full lifecycle", func() {
			iss := submit()

			iss, err := service.ChangeStatus(ctx, iss.ID, issue.StatusInProgress, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(iss.Status).To(Equal(issue.StatusInProgress))

			iss, err = service.ChangeStatus(ctx, iss.ID, issue.StatusEscalated, 1)
			Expect(err).NotTo(HaveOccurred())

			iss, err = service.ChangeStatus(ctx, iss.ID, issue.StatusResolved, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(iss.Status).To(Equal(issue.StatusResolved))
		})

		It("refuses to skip straight from submitted to resolved", func() {
			iss := submit()
			_, err := service.ChangeStatus(ctx, iss.ID, issue.StatusResolved, 1)
			Expect(err).To(MatchError(issue.ErrInvalidStatusTransition))
			Expect(repo.issues[iss.ID].Status).To(Equal(issue.StatusSubmitted))
		})

		It("treats resolved as terminal", func() {
			iss := submit()
			_, err := service.ChangeStatus(ctx, iss.ID, issue.StatusInProgress, 1)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.ChangeStatus(ctx, iss.ID, issue.StatusResolved, 1)
			Expect(err).NotTo(HaveOccurred())

			for _, to := range []string{issue.StatusSubmitted, issue.StatusInProgress, issue.StatusEscalated} {
				_, err = service.ChangeStatus(ctx, iss.ID, to, 1)
				Expect(err).To(MatchError(issue.ErrInvalidStatusTransition), to)
			}
		})

		It("stamps resolved_at on resolution and clears it when reopened from escalated", func() {
			iss := submit()
			_, err := service.ChangeStatus(ctx, iss.ID, issue.StatusEscalated, 1)
			Expect(err).NotTo(HaveOccurred())

			iss, err = service.ChangeStatus(ctx, iss.ID, issue.StatusResolved, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(iss.ResolvedAt).NotTo(BeNil())
		})

		It("rejects an unknown status outright", func() {
			iss := submit()
			_, err := service.ChangeStatus(ctx, iss.ID, "closed", 1)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("AssignIssue", func() {
		It("moves a submitted issue into progress", func() {
			iss := submit()
			iss, err := service.AssignIssue(ctx, iss.ID, 9, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(iss.Status).To(Equal(issue.StatusInProgress))
			Expect(iss.AssignedTo).To(HaveValue(Equal(int64(9))))
		})

		It("keeps the status of an escalated issue", func() {
			iss := submit()
			_, err := service.ChangeStatus(ctx, iss.ID, issue.StatusEscalated, 1)
			Expect(err).NotTo(HaveOccurred())

			iss, err = service.AssignIssue(ctx, iss.ID, 9, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(iss.Status).To(Equal(issue.StatusEscalated))
		})

		It("refuses to assign a resolved issue", func() {
			iss := submit()
			_, err := service.ResolveIssue(ctx, iss.ID, 1)
			Expect(err).To(HaveOccurred()) // submitted cannot resolve directly

			_, err = service.ChangeStatus(ctx, iss.ID, issue.StatusInProgress, 1)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.ResolveIssue(ctx, iss.ID, 1)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.AssignIssue(ctx, iss.ID, 9, 1)
			Expect(err).To(MatchError(issue.ErrInvalidStatusTransition))
		})
	})

	Describe("EscalateIssue", func() {
		It("escalates from submitted or in progress", func() {
			iss := submit()
			iss, err := service.EscalateIssue(ctx, iss.ID, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(iss.Status).To(Equal(issue.StatusEscalated))
		})
	})

	Describe("comments", func() {
		It("attaches comments to an existing issue", func() {
			iss := submit()

			comment, err := service.AddComment(iss.ID, 5, issue.AddCommentDTO{Body: "Tried a reboot, no luck"})
			Expect(err).NotTo(HaveOccurred())
			Expect(comment.UserID).To(Equal(int64(5)))

			comments, err := service.ListComments(iss.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(comments).To(HaveLen(1))
		})

		It("rejects a comment on a missing issue", func() {
			_, err := service.AddComment(404, 5, issue.AddCommentDTO{Body: "hello?"})
			Expect(err).To(MatchError(issue.ErrIssueNotFound))
		})

		It("rejects an empty body", func() {
			iss := submit()
			_, err := service.AddComment(iss.ID, 5, issue.AddCommentDTO{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("stock links", func() {
		It("records which items were consumed for an issue", func() {
			iss := submit()

			_, err := service.LinkStockItem(iss.ID, 42)
			Expect(err).NotTo(HaveOccurred())

			links, err := service.ListStockLinks(iss.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(links).To(HaveLen(1))
			Expect(links[0].StockItemID).To(Equal(int64(42)))
		})

		It("rejects a link to a missing issue", func() {
			_, err := service.LinkStockItem(404, 42)
			Expect(err).To(MatchError(issue.ErrIssueNotFound))
		})
	})

	Describe("ListIssues", func() {
		var (
			submitter *auth.User
			triager   *auth.User
		)

		BeforeEach(func() {
			submitter = &auth.User{ID: 3, Role: auth.RoleUser, Permissions: []auth.Permission{auth.PermCreateIssue}}
			triager = &auth.User{ID: 8, Role: auth.RoleEmployee, Permissions: []auth.Permission{auth.PermAssignIssue}}
		})

		It("filters by status and submitter", func() {
			first := submit()
			second := submit()
			_, err := service.ChangeStatus(ctx, second.ID, issue.StatusInProgress, 1)
			Expect(err).NotTo(HaveOccurred())

			issues, err := service.ListIssues(issue.Filter{Status: issue.StatusSubmitted}, triager)
			Expect(err).NotTo(HaveOccurred())
			Expect(issues).To(HaveLen(1))
			Expect(issues[0].ID).To(Equal(first.ID))

			issues, err = service.ListIssues(issue.Filter{SubmittedBy: 3}, triager)
			Expect(err).NotTo(HaveOccurred())
			Expect(issues).To(HaveLen(2))
		})

		It("scopes plain submitters to their own issues", func() {
			submit()
			other, err := service.CreateIssue(77, issue.CreateIssueDTO{
				Title:    "Printer jam",
				Severity: issue.SeverityLow,
				Type:     issue.TypeHardware,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(other.SubmittedBy).To(Equal(int64(77)))

			issues, err := service.ListIssues(issue.Filter{}, submitter)
			Expect(err).NotTo(HaveOccurred())
			Expect(issues).To(HaveLen(1))
			Expect(issues[0].SubmittedBy).To(Equal(submitter.ID))
		})

		It("shows triage staff and admins everything", func() {
			submit()
			_, err := service.CreateIssue(77, issue.CreateIssueDTO{
				Title:    "Printer jam",
				Severity: issue.SeverityLow,
				Type:     issue.TypeHardware,
			})
			Expect(err).NotTo(HaveOccurred())

			issues, err := service.ListIssues(issue.Filter{}, triager)
			Expect(err).NotTo(HaveOccurred())
			Expect(issues).To(HaveLen(2))

			admin := &auth.User{ID: 1, Role: auth.RoleAdmin}
			issues, err = service.ListIssues(issue.Filter{}, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(issues).To(HaveLen(2))
		})

		It("rejects an unknown status filter", func() {
			_, err := service.ListIssues(issue.Filter{Status: "open"}, triager)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateIssue", func() {
		It("applies only the provided fields", func() {
			iss := submit()

			severity := issue.SeverityLow
			updated, err := service.UpdateIssue(iss.ID, issue.UpdateIssueDTO{Severity: &severity})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Severity).To(Equal(issue.SeverityLow))
			Expect(updated.Title).To(Equal("Laptop will not boot"))
		})
	})
})
