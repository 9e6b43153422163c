package applicants

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("applicant not found")
	ErrJobClosed = errors.New("job is not accepting applications")
)

const (
	StatusApplied     = "applied"
	StatusInterviewed = "interviewed"
	StatusOfferSent   = "offer_sent"
	StatusHired       = "hired"
	StatusRejected    = "rejected"
)

func ValidStatuses() []string {
	return []string{StatusApplied, StatusInterviewed, StatusOfferSent, StatusHired, StatusRejected}
}

type Applicant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	JobID       primitive.ObjectID `bson:"jobId" json:"jobId"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	ResumeURL   string             `bson:"resumeUrl,omitempty" json:"resumeUrl,omitempty"`
	CoverLetter string             `bson:"coverLetter,omitempty" json:"coverLetter,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Consent     bool               `bson:"consent" json:"consent"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ListItem carries the job title alongside the applicant for listings.
type ListItem struct {
	Applicant
	JobTitle string `json:"jobTitle"`
}
