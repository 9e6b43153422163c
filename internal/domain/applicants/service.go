package applicants

import (
	"context"
	"log/slog"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/jobs"
)

type JobCatalog interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*jobs.Job, error)
	PushApplicant(ctx context.Context, jobID, applicantID primitive.ObjectID) error
}

type Service struct {
	store   *Store
	catalog JobCatalog
}

func NewService(store *Store, catalog JobCatalog) *Service {
	return &Service{store: store, catalog: catalog}
}

type Submission struct {
	Name        string
	Email       string
	Phone       string
	ResumeURL   string
	CoverLetter string
	Consent     bool
}

// Submit records a public application. The target job must exist and be open.
func (s *Service) Submit(ctx context.Context, jobID primitive.ObjectID, in Submission) (*Applicant, error) {
	job, err := s.catalog.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != jobs.StatusOpen {
		return nil, ErrJobClosed
	}

	applicant := &Applicant{
		JobID:       job.ID,
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:       strings.TrimSpace(in.Phone),
		ResumeURL:   strings.TrimSpace(in.ResumeURL),
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		Consent:     in.Consent,
	}
	if err := s.store.Insert(ctx, applicant); err != nil {
		return nil, err
	}

	// The per-job applicant list is a denormalized convenience; the
	// applicant document is the source of truth.
	if err := s.catalog.PushApplicant(ctx, job.ID, applicant.ID); err != nil {
		slog.Warn("failed to record applicant on job", "jobId", job.ID.Hex(), "error", err)
	}
	return applicant, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*Applicant, error) {
	return s.store.FindByID(ctx, id)
}

// List joins the job title onto each applicant. Applicants whose job has
// been removed are listed with an empty title.
func (s *Service) List(ctx context.Context, jobID *primitive.ObjectID, status string) ([]ListItem, error) {
	all, err := s.store.List(ctx, jobID, status)
	if err != nil {
		return nil, err
	}

	titles := map[primitive.ObjectID]string{}
	items := make([]ListItem, 0, len(all))
	for _, applicant := range all {
		title, ok := titles[applicant.JobID]
		if !ok {
			if job, err := s.catalog.FindByID(ctx, applicant.JobID); err == nil {
				title = job.Title
			}
			titles[applicant.JobID] = title
		}
		items = append(items, ListItem{Applicant: applicant, JobTitle: title})
	}
	return items, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Applicant, error) {
	return s.store.UpdateStatus(ctx, id, status)
}
