package payroll

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("payroll entry not found")

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

func ValidStatuses() []string {
	return []string{StatusPending, StatusPaid}
}

type Entry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID primitive.ObjectID `bson:"employeeId" json:"employeeId"`
	Period     string             `bson:"period" json:"period"`
	GrossPay   float64            `bson:"grossPay" json:"grossPay"`
	Deductions float64            `bson:"deductions" json:"deductions"`
	NetPay     float64            `bson:"netPay" json:"netPay"`
	Status     string             `bson:"status" json:"status"`
	PaidAt     *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

type ListItem struct {
	Entry
	EmployeeName string `json:"employeeName"`
}
