package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"hrboard/internal/domain/auth"
	"hrboard/internal/domain/departments"
	"hrboard/internal/domain/employees"
	"hrboard/internal/domain/jobs"
	"hrboard/internal/domain/tasks"
	"hrboard/internal/platform/config"
)

// Seed provisions the bootstrap admin account and, when demo data is
// enabled, a small dataset for local development. Seeding is idempotent:
// existing records are left alone.
func Seed(ctx context.Context, database *mongo.Database, cfg config.Config) error {
	if cfg.SeedAdminEmail != "" && cfg.SeedAdminPassword != "" {
		hash, err := auth.HashPassword(cfg.SeedAdminPassword)
		if err != nil {
			return fmt.Errorf("hash seed admin password: %w", err)
		}
		if err := auth.NewStore(database).EnsureAdmin(ctx, cfg.SeedAdminEmail, hash, "admin"); err != nil {
			return fmt.Errorf("ensure seed admin: %w", err)
		}
		slog.Info("seed admin ensured", "email", cfg.SeedAdminEmail)
	}

	if !cfg.SeedDemoData {
		return nil
	}
	return seedDemo(ctx, database)
}

func seedDemo(ctx context.Context, database *mongo.Database) error {
	departmentStore := departments.NewStore(database)
	existing, err := departmentStore.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	engineering := &departments.Department{Name: "Engineering", Description: "Product development"}
	people := &departments.Department{Name: "People Operations", Description: "HR and recruiting"}
	for _, department := range []*departments.Department{engineering, people} {
		if err := departmentStore.Insert(ctx, department); err != nil {
			return err
		}
	}

	employeeStore := employees.NewStore(database)
	ada := &employees.Employee{
		FirstName:        "Ada",
		LastName:         "Nwosu",
		Email:            "ada.nwosu@example.com",
		Position:         "Backend Engineer",
		DepartmentID:     &engineering.ID,
		Salary:           82000,
		EmploymentStatus: employees.StatusActive,
	}
	marta := &employees.Employee{
		FirstName:        "Marta",
		LastName:         "Lindqvist",
		Email:            "marta.lindqvist@example.com",
		Position:         "People Partner",
		DepartmentID:     &people.ID,
		Salary:           61000,
		EmploymentStatus: employees.StatusActive,
	}
	for _, employee := range []*employees.Employee{ada, marta} {
		if err := employeeStore.Insert(ctx, employee); err != nil {
			return err
		}
	}

	jobStore := jobs.NewStore(database)
	if err := jobStore.Insert(ctx, &jobs.Job{
		Title:        "Site Reliability Engineer",
		Description:  "Keep the platform healthy.",
		Requirements: []string{"3+ years operating production systems", "Strong Linux fundamentals"},
		Location:     "Remote",
		SalaryRange:  "70k-95k",
		DepartmentID: &engineering.ID,
		Status:       jobs.StatusOpen,
	}); err != nil {
		return err
	}

	taskStore := tasks.NewStore(database)
	due := time.Now().UTC().Add(7 * 24 * time.Hour)
	demoTasks := []*tasks.Task{
		{EmployeeID: ada.ID, Title: "Ship quarterly report endpoint", Completed: true},
		{EmployeeID: ada.ID, Title: "Review deployment pipeline", Completed: true},
		{EmployeeID: ada.ID, Title: "Write onboarding runbook", DueDate: &due},
		{EmployeeID: marta.ID, Title: "Schedule performance check-ins", Completed: true},
	}
	for _, task := range demoTasks {
		if err := taskStore.Insert(ctx, task); err != nil {
			return err
		}
	}

	slog.Info("seeded demo data",
		"departments", 2,
		"employees", 2,
		"jobs", 1,
		"tasks", len(demoTasks))
	return nil
}
