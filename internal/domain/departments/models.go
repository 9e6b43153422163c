package departments

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound     = errors.New("department not found")
	ErrNameTaken    = errors.New("department name already exists")
	ErrHasEmployees = errors.New("department has assigned employees")
)

type Department struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type EmployeeSummary struct {
	ID       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Position string             `json:"position,omitempty"`
	Salary   float64            `json:"salary,omitempty"`
}

type DepartmentStats struct {
	Department
	EmployeeCount int               `json:"employeeCount"`
	Employees     []EmployeeSummary `json:"employees"`
}

type StatsSummary struct {
	TotalDepartments              int     `json:"totalDepartments"`
	TotalEmployees                int     `json:"totalEmployees"`
	DepartmentsWithEmployees      int     `json:"departmentsWithEmployees"`
	EmptyDepartments              int     `json:"emptyDepartments"`
	AverageEmployeesPerDepartment float64 `json:"averageEmployeesPerDepartment"`
}

type StatsReport struct {
	Summary     StatsSummary      `json:"summary"`
	Departments []DepartmentStats `json:"departments"`
}

// BulkResult reports per-item outcomes; bulk operations never abort on a
// single failing department.
type BulkResult struct {
	Updated []string   `json:"updated,omitempty"`
	Deleted []string   `json:"deleted,omitempty"`
	Failed  []BulkItem `json:"failed"`
	Skipped []BulkItem `json:"skipped"`
}

type BulkItem struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type BulkUpdate struct {
	Name        string
	Description *string
}
