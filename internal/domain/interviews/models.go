package interviews

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound         = errors.New("interview not found")
	ErrAlreadyScheduled = errors.New("applicant already has a scheduled interview for this job")
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

func ValidStatuses() []string {
	return []string{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow}
}

const (
	TypePhone    = "phone"
	TypeVideo    = "video"
	TypeInPerson = "in-person"
)

func ValidTypes() []string {
	return []string{TypePhone, TypeVideo, TypeInPerson}
}

const defaultDurationMinutes = 60

// Mailer delivers interview invitations. Sending is best effort and never
// blocks scheduling.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Interview struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ApplicantID primitive.ObjectID `bson:"applicantId" json:"applicantId"`
	JobID       primitive.ObjectID `bson:"jobId" json:"jobId"`
	JobTitle    string             `bson:"jobTitle" json:"jobTitle"`
	ScheduledAt time.Time          `bson:"scheduledAt" json:"scheduledAt"`
	Duration    int                `bson:"durationMinutes" json:"durationMinutes"`
	Type        string             `bson:"type" json:"type"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	MeetingLink string             `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"`
	Interviewer string             `bson:"interviewer,omitempty" json:"interviewer,omitempty"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ListItem struct {
	Interview
	ApplicantName  string `json:"applicantName"`
	ApplicantEmail string `json:"applicantEmail"`
}
