package tasks

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound        = errors.New("task not found")
	ErrUnknownEmployee = errors.New("employee not found")
)

type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID  primitive.ObjectID `bson:"employeeId" json:"employeeId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Completed   bool               `bson:"completed" json:"completed"`
	DueDate     *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Update carries the mutable fields; nil pointers leave the stored value
// untouched.
type Update struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
}
