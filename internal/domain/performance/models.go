package performance

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound        = errors.New("performance review not found")
	ErrUnknownEmployee = errors.New("employee not found")
)

// Review is a dated, scored snapshot of one employee's task completion.
// The derived fields mirror the task ledger as of the last recalculation,
// not the live state. TaskRevision records which task-set revision the
// snapshot was computed from; a recalculation writes only if its revision
// is not older than the stored one.
type Review struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID       primitive.ObjectID `bson:"employeeId" json:"employeeId"`
	ReviewerID       primitive.ObjectID `bson:"reviewerId" json:"reviewerId"`
	Date             time.Time          `bson:"date" json:"date"`
	Score            int                `bson:"score" json:"score"`
	Comments         string             `bson:"comments,omitempty" json:"comments,omitempty"`
	Goals            string             `bson:"goals,omitempty" json:"goals,omitempty"`
	CompletionRate   float64            `bson:"taskCompletionRate" json:"taskCompletionRate"`
	TotalTasks       int                `bson:"totalTasks" json:"totalTasks"`
	CompletedTasks   int                `bson:"completedTasks" json:"completedTasks"`
	UncompletedTasks int                `bson:"uncompletedTasks" json:"uncompletedTasks"`
	TaskRevision     int64              `bson:"taskRevision" json:"-"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ListItem struct {
	Review
	EmployeeName  string `json:"employeeName,omitempty"`
	ReviewerEmail string `json:"reviewerEmail,omitempty"`
}

const (
	RecalcRecalculated = "recalculated"
	RecalcSkipped      = "skipped"
	RecalcFailed       = "failed"
)

// RecalcItem is one review's outcome within a bulk recalculation.
type RecalcItem struct {
	ReviewID   string `json:"reviewId"`
	EmployeeID string `json:"employeeId"`
	Status     string `json:"status"`
	NewScore   int    `json:"newScore,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

type RecalcResult struct {
	Recalculated int          `json:"recalculated"`
	Skipped      int          `json:"skipped"`
	Failed       int          `json:"failed"`
	Items        []RecalcItem `json:"items"`
}

// CreateMissingResult reports the outcome of seeding reviews for employees
// that have none yet.
type CreateMissingResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
	Errors  []string `json:"errors"`
}

// EmployeeStats is the live task tally for one employee next to their
// latest stored review.
type EmployeeStats struct {
	EmployeeID string      `json:"employeeId"`
	TaskStats  ScoreResult `json:"taskStatistics"`
	Latest     *Review     `json:"latestReview,omitempty"`
}

// EmployeeMetrics is one row of the company-wide metrics listing.
type EmployeeMetrics struct {
	EmployeeID     string  `json:"employeeId"`
	EmployeeName   string  `json:"employeeName"`
	Score          int     `json:"score"`
	CompletionRate float64 `json:"taskCompletionRate"`
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	ReviewDate     string  `json:"reviewDate"`
}

type DashboardStats struct {
	TotalReviews  int               `json:"totalReviews"`
	AverageScore  float64           `json:"averageScore"`
	MedianScore   float64           `json:"medianScore"`
	TopPerformers []EmployeeMetrics `json:"topPerformers"`
}
