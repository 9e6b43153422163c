package interviews

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/applicants"
	"hrboard/internal/domain/jobs"
)

type ApplicantDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*applicants.Applicant, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*applicants.Applicant, error)
}

type JobCatalog interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*jobs.Job, error)
}

type Service struct {
	store      *Store
	applicants ApplicantDirectory
	catalog    JobCatalog
	mailer     Mailer
	mailFrom   string
}

func NewService(store *Store, directory ApplicantDirectory, catalog JobCatalog, mailer Mailer, mailFrom string) *Service {
	return &Service{
		store:      store,
		applicants: directory,
		catalog:    catalog,
		mailer:     mailer,
		mailFrom:   mailFrom,
	}
}

type ScheduleInput struct {
	ApplicantID primitive.ObjectID
	JobID       primitive.ObjectID
	ScheduledAt time.Time
	Duration    int
	Type        string
	Location    string
	MeetingLink string
	Interviewer string
	Notes       string
}

// Schedule books an interview, marks the applicant interviewed and sends
// the invitation email. Only one scheduled interview per applicant and job
// is allowed at a time.
func (s *Service) Schedule(ctx context.Context, in ScheduleInput) (*Interview, error) {
	applicant, err := s.applicants.FindByID(ctx, in.ApplicantID)
	if err != nil {
		return nil, err
	}
	job, err := s.catalog.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.HasScheduled(ctx, applicant.ID, job.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyScheduled
	}

	duration := in.Duration
	if duration <= 0 {
		duration = defaultDurationMinutes
	}
	kind := in.Type
	if kind == "" {
		kind = TypeVideo
	}

	interview := &Interview{
		ApplicantID: applicant.ID,
		JobID:       job.ID,
		JobTitle:    job.Title,
		ScheduledAt: in.ScheduledAt.UTC(),
		Duration:    duration,
		Type:        kind,
		Location:    strings.TrimSpace(in.Location),
		MeetingLink: strings.TrimSpace(in.MeetingLink),
		Interviewer: strings.TrimSpace(in.Interviewer),
		Notes:       strings.TrimSpace(in.Notes),
	}
	if err := s.store.Insert(ctx, interview); err != nil {
		return nil, err
	}

	if applicant.Status == applicants.StatusApplied {
		if _, err := s.applicants.UpdateStatus(ctx, applicant.ID, applicants.StatusInterviewed); err != nil {
			slog.Warn("failed to update applicant status", "applicantId", applicant.ID.Hex(), "error", err)
		}
	}

	subject, body := BuildInvite(applicant.Name, interview)
	if err := s.mailer.Send(ctx, s.mailFrom, applicant.Email, subject, body); err != nil {
		slog.Warn("failed to send interview invitation", "applicantId", applicant.ID.Hex(), "error", err)
	}
	return interview, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*Interview, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status string) ([]ListItem, error) {
	all, err := s.store.List(ctx, status)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(all))
	for _, interview := range all {
		item := ListItem{Interview: interview}
		if applicant, err := s.applicants.FindByID(ctx, interview.ApplicantID); err == nil {
			item.ApplicantName = applicant.Name
			item.ApplicantEmail = applicant.Email
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id primitive.ObjectID, status, notes string) (*Interview, error) {
	return s.store.UpdateStatus(ctx, id, status, notes)
}
