package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the query paths depend on. Safe to run
// at every startup; Mongo treats existing identical indexes as a no-op.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	specs := map[string][]mongo.IndexModel{
		"admins": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("idx_admins_email"),
			},
		},
		"employees": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("idx_employees_email"),
			},
			{
				Keys:    bson.D{{Key: "departmentId", Value: 1}, {Key: "employmentStatus", Value: 1}},
				Options: options.Index().SetName("idx_employees_department_status"),
			},
		},
		"tasks": {
			{
				Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "completed", Value: 1}},
				Options: options.Index().SetName("idx_tasks_employee_completed"),
			},
		},
		"performance_reviews": {
			{
				Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "date", Value: -1}},
				Options: options.Index().SetName("idx_reviews_employee_date"),
			},
			{
				Keys:    bson.D{{Key: "score", Value: -1}},
				Options: options.Index().SetName("idx_reviews_score"),
			},
		},
		"jobs": {
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_jobs_status_created"),
			},
		},
		"applicants": {
			{
				Keys:    bson.D{{Key: "jobId", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_applicants_job_created"),
			},
		},
		"interviews": {
			{
				Keys:    bson.D{{Key: "applicantId", Value: 1}, {Key: "jobId", Value: 1}, {Key: "status", Value: 1}},
				Options: options.Index().SetName("idx_interviews_applicant_job_status"),
			},
		},
		"attendance": {
			{
				Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "date", Value: -1}},
				Options: options.Index().SetName("idx_attendance_employee_date"),
			},
		},
		"payroll": {
			{
				Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "periodStart", Value: -1}},
				Options: options.Index().SetName("idx_payroll_employee_period"),
			},
		},
		"audit_events": {
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("idx_audit_created"),
			},
		},
	}

	for collection, models := range specs {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
