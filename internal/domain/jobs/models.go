package jobs

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound      = errors.New("job not found")
	ErrHasApplicants = errors.New("job has applicants")
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

func ValidStatuses() []string {
	return []string{StatusOpen, StatusClosed}
}

type Job struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"title" json:"title"`
	Description  string               `bson:"description,omitempty" json:"description,omitempty"`
	Requirements []string             `bson:"requirements,omitempty" json:"requirements,omitempty"`
	Location     string               `bson:"location,omitempty" json:"location,omitempty"`
	SalaryRange  string               `bson:"salaryRange,omitempty" json:"salaryRange,omitempty"`
	DepartmentID *primitive.ObjectID  `bson:"departmentId,omitempty" json:"departmentId,omitempty"`
	Status       string               `bson:"status" json:"status"`
	Applicants   []primitive.ObjectID `bson:"applicants,omitempty" json:"-"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// ListItem is the listing shape; the raw applicant id array stays private
// to the admin detail view.
type ListItem struct {
	Job
	DepartmentName string `json:"departmentName,omitempty"`
	ApplicantCount int    `json:"applicantCount"`
}

type DepartmentCount struct {
	DepartmentID string `json:"departmentId,omitempty"`
	Name         string `json:"name"`
	Count        int    `json:"count"`
}

type Stats struct {
	TotalJobs       int               `json:"totalJobs"`
	OpenJobs        int64             `json:"openJobs"`
	ClosedJobs      int64             `json:"closedJobs"`
	TotalApplicants int               `json:"totalApplicants"`
	ByDepartment    []DepartmentCount `json:"byDepartment"`
}
