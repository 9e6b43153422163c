package departments

import (
	"context"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/employees"
)

type StoreAPI interface {
	Insert(ctx context.Context, department *Department) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Department, error)
	List(ctx context.Context) ([]Department, error)
	NameExists(ctx context.Context, name string, excludeID *primitive.ObjectID) (bool, error)
	Update(ctx context.Context, id primitive.ObjectID, name, description string) (*Department, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type EmployeeDirectory interface {
	CountActive(ctx context.Context) (int64, error)
	CountActiveByDepartment(ctx context.Context, departmentID primitive.ObjectID) (int64, error)
	ListActiveByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]employees.Employee, error)
}

type Service struct {
	store     StoreAPI
	directory EmployeeDirectory
}

func NewService(store StoreAPI, directory EmployeeDirectory) *Service {
	return &Service{store: store, directory: directory}
}

func (s *Service) List(ctx context.Context) ([]Department, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*Department, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, name, description string) (*Department, error) {
	name = strings.TrimSpace(name)
	taken, err := s.store.NameExists(ctx, name, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	department := &Department{Name: name, Description: strings.TrimSpace(description)}
	if err := s.store.Insert(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *Service) Update(ctx context.Context, id primitive.ObjectID, name, description string) (*Department, error) {
	name = strings.TrimSpace(name)
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return nil, err
	}
	taken, err := s.store.NameExists(ctx, name, &id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}
	return s.store.Update(ctx, id, name, strings.TrimSpace(description))
}

// Delete refuses to remove a department that still has active employees.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return 0, err
	}
	assigned, err := s.directory.CountActiveByDepartment(ctx, id)
	if err != nil {
		return 0, err
	}
	if assigned > 0 {
		return assigned, ErrHasEmployees
	}
	return 0, s.store.Delete(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (*StatsReport, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &StatsReport{Departments: make([]DepartmentStats, 0, len(all))}
	withEmployees := 0
	for _, department := range all {
		members, err := s.directory.ListActiveByDepartment(ctx, department.ID)
		if err != nil {
			return nil, err
		}
		stats := DepartmentStats{
			Department:    department,
			EmployeeCount: len(members),
			Employees:     make([]EmployeeSummary, 0, len(members)),
		}
		for _, member := range members {
			stats.Employees = append(stats.Employees, EmployeeSummary{
				ID:       member.ID,
				Name:     member.DisplayName(),
				Email:    member.Email,
				Position: member.Position,
				Salary:   member.Salary,
			})
		}
		if len(members) > 0 {
			withEmployees++
		}
		report.Departments = append(report.Departments, stats)
	}

	totalEmployees, err := s.directory.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	report.Summary = StatsSummary{
		TotalDepartments:         len(all),
		TotalEmployees:           int(totalEmployees),
		DepartmentsWithEmployees: withEmployees,
		EmptyDepartments:         len(all) - withEmployees,
	}
	if len(all) > 0 {
		avg := float64(totalEmployees) / float64(len(all))
		report.Summary.AverageEmployeesPerDepartment = math.Round(avg*100) / 100
	}
	return report, nil
}

func (s *Service) BulkDelete(ctx context.Context, ids []primitive.ObjectID) *BulkResult {
	result := &BulkResult{Failed: []BulkItem{}, Skipped: []BulkItem{}}
	for _, id := range ids {
		if _, err := s.store.FindByID(ctx, id); err != nil {
			result.Skipped = append(result.Skipped, BulkItem{ID: id.Hex(), Reason: "department not found"})
			continue
		}
		assigned, err := s.directory.CountActiveByDepartment(ctx, id)
		if err != nil {
			result.Failed = append(result.Failed, BulkItem{ID: id.Hex(), Reason: "database error"})
			continue
		}
		if assigned > 0 {
			result.Skipped = append(result.Skipped, BulkItem{ID: id.Hex(), Reason: "has assigned employees"})
			continue
		}
		if err := s.store.Delete(ctx, id); err != nil {
			result.Failed = append(result.Failed, BulkItem{ID: id.Hex(), Reason: "database error"})
			continue
		}
		result.Deleted = append(result.Deleted, id.Hex())
	}
	return result
}

func (s *Service) BulkUpdate(ctx context.Context, ids []primitive.ObjectID, update BulkUpdate) *BulkResult {
	result := &BulkResult{Failed: []BulkItem{}, Skipped: []BulkItem{}}
	name := strings.TrimSpace(update.Name)
	for _, id := range ids {
		current, err := s.store.FindByID(ctx, id)
		if err != nil {
			result.Skipped = append(result.Skipped, BulkItem{ID: id.Hex(), Reason: "department not found"})
			continue
		}

		nextName := current.Name
		if name != "" {
			taken, err := s.store.NameExists(ctx, name, &id)
			if err != nil {
				result.Failed = append(result.Failed, BulkItem{ID: id.Hex(), Reason: "database error"})
				continue
			}
			if taken {
				result.Failed = append(result.Failed, BulkItem{ID: id.Hex(), Reason: "department name already exists"})
				continue
			}
			nextName = name
		}

		nextDescription := current.Description
		if update.Description != nil {
			nextDescription = strings.TrimSpace(*update.Description)
		}

		if _, err := s.store.Update(ctx, id, nextName, nextDescription); err != nil {
			result.Failed = append(result.Failed, BulkItem{ID: id.Hex(), Reason: "database error"})
			continue
		}
		result.Updated = append(result.Updated, id.Hex())
	}
	return result
}
