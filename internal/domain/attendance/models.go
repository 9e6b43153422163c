package attendance

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("attendance record not found")

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLeave   = "leave"
)

func ValidStatuses() []string {
	return []string{StatusPresent, StatusAbsent, StatusLeave}
}

type Record struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID primitive.ObjectID `bson:"employeeId" json:"employeeId"`
	Date       time.Time          `bson:"date" json:"date"`
	Status     string             `bson:"status" json:"status"`
	CheckIn    *time.Time         `bson:"checkIn,omitempty" json:"checkIn,omitempty"`
	CheckOut   *time.Time         `bson:"checkOut,omitempty" json:"checkOut,omitempty"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
