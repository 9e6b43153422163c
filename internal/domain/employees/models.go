package employees

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound   = errors.New("employee not found")
	ErrEmailTaken = errors.New("employee email already in use")
)

const (
	StatusActive     = "active"
	StatusTerminated = "terminated"
	StatusOnLeave    = "on_leave"
)

func ValidStatuses() []string {
	return []string{StatusActive, StatusTerminated, StatusOnLeave}
}

type EmergencyContact struct {
	Name     string `bson:"name" json:"name"`
	Phone    string `bson:"phone" json:"phone"`
	Relation string `bson:"relation" json:"relation"`
}

type PersonalInfo struct {
	Address           string             `bson:"address,omitempty" json:"address,omitempty"`
	DateOfBirth       *time.Time         `bson:"dob,omitempty" json:"dob,omitempty"`
	EmergencyContacts []EmergencyContact `bson:"emergencyContacts,omitempty" json:"emergencyContacts,omitempty"`
}

type Employee struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FirstName        string              `bson:"firstName" json:"firstName"`
	LastName         string              `bson:"lastName" json:"lastName"`
	Email            string              `bson:"email" json:"email"`
	Phone            string              `bson:"phone,omitempty" json:"phone,omitempty"`
	DepartmentID     *primitive.ObjectID `bson:"departmentId,omitempty" json:"departmentId,omitempty"`
	Position         string              `bson:"position,omitempty" json:"position,omitempty"`
	HireDate         *time.Time          `bson:"hireDate,omitempty" json:"hireDate,omitempty"`
	Salary           float64             `bson:"salary,omitempty" json:"salary,omitempty"`
	EmploymentStatus string              `bson:"employmentStatus" json:"employmentStatus"`
	PersonalInfo     *PersonalInfo       `bson:"personalInfo,omitempty" json:"personalInfo,omitempty"`
	// TaskRevision counts task-set mutations for this employee. Score
	// recalculation uses it to reject writes computed from a stale task set.
	TaskRevision int64     `bson:"taskRevision" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

func (e Employee) DisplayName() string {
	return e.FirstName + " " + e.LastName
}
