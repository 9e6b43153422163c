package departments

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/employees"
)

type fakeStore struct {
	departments map[primitive.ObjectID]*Department
}

func newFakeStore() *fakeStore {
	return &fakeStore{departments: map[primitive.ObjectID]*Department{}}
}

func (f *fakeStore) Insert(_ context.Context, department *Department) error {
	department.ID = primitive.NewObjectID()
	copied := *department
	f.departments[department.ID] = &copied
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id primitive.ObjectID) (*Department, error) {
	department, ok := f.departments[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *department
	return &copied, nil
}

func (f *fakeStore) List(_ context.Context) ([]Department, error) {
	out := []Department{}
	for _, department := range f.departments {
		out = append(out, *department)
	}
	return out, nil
}

func (f *fakeStore) NameExists(_ context.Context, name string, excludeID *primitive.ObjectID) (bool, error) {
	for id, department := range f.departments {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if strings.EqualFold(department.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Update(_ context.Context, id primitive.ObjectID, name, description string) (*Department, error) {
	department, ok := f.departments[id]
	if !ok {
		return nil, ErrNotFound
	}
	department.Name = name
	department.Description = description
	copied := *department
	return &copied, nil
}

func (f *fakeStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.departments[id]; !ok {
		return ErrNotFound
	}
	delete(f.departments, id)
	return nil
}

type fakeDirectory struct {
	byDepartment map[primitive.ObjectID][]employees.Employee
}

func (f *fakeDirectory) CountActive(_ context.Context) (int64, error) {
	total := 0
	for _, members := range f.byDepartment {
		total += len(members)
	}
	return int64(total), nil
}

func (f *fakeDirectory) CountActiveByDepartment(_ context.Context, id primitive.ObjectID) (int64, error) {
	return int64(len(f.byDepartment[id])), nil
}

func (f *fakeDirectory) ListActiveByDepartment(_ context.Context, id primitive.ObjectID) ([]employees.Employee, error) {
	return f.byDepartment[id], nil
}

func newFixture() (*Service, *fakeStore, *fakeDirectory) {
	store := newFakeStore()
	directory := &fakeDirectory{byDepartment: map[primitive.ObjectID][]employees.Employee{}}
	return NewService(store, directory), store, directory
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	service, _, _ := newFixture()

	if _, err := service.Create(context.Background(), "Engineering", ""); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := service.Create(context.Background(), "  engineering ", ""); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken for case-insensitive duplicate, got %v", err)
	}
}

func TestUpdateAllowsKeepingOwnName(t *testing.T) {
	service, _, _ := newFixture()

	department, err := service.Create(context.Background(), "Engineering", "old")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := service.Update(context.Background(), department.ID, "Engineering", "new")
	if err != nil {
		t.Fatalf("update with unchanged name: %v", err)
	}
	if updated.Description != "new" {
		t.Fatalf("description not updated: %+v", updated)
	}
}

func TestDeleteGuardedByAssignedEmployees(t *testing.T) {
	service, store, directory := newFixture()

	department, err := service.Create(context.Background(), "Engineering", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	directory.byDepartment[department.ID] = []employees.Employee{
		{FirstName: "Ada", LastName: "Park"},
		{FirstName: "Sam", LastName: "Okafor"},
	}

	count, err := service.Delete(context.Background(), department.ID)
	if !errors.Is(err, ErrHasEmployees) {
		t.Fatalf("expected ErrHasEmployees, got %v", err)
	}
	if count != 2 {
		t.Fatalf("assigned count = %d, want 2", count)
	}
	if _, ok := store.departments[department.ID]; !ok {
		t.Fatalf("guarded department must not be deleted")
	}

	directory.byDepartment[department.ID] = nil
	if _, err := service.Delete(context.Background(), department.ID); err != nil {
		t.Fatalf("delete after unassigning: %v", err)
	}
}

func TestStatsSummary(t *testing.T) {
	service, _, directory := newFixture()

	engineering, _ := service.Create(context.Background(), "Engineering", "")
	if _, err := service.Create(context.Background(), "Empty Desk", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	directory.byDepartment[engineering.ID] = []employees.Employee{
		{FirstName: "Ada", LastName: "Park", Email: "ada@example.com"},
	}

	report, err := service.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if report.Summary.TotalDepartments != 2 || report.Summary.TotalEmployees != 1 {
		t.Fatalf("unexpected summary: %+v", report.Summary)
	}
	if report.Summary.DepartmentsWithEmployees != 1 || report.Summary.EmptyDepartments != 1 {
		t.Fatalf("occupancy counts wrong: %+v", report.Summary)
	}
	if report.Summary.AverageEmployeesPerDepartment != 0.5 {
		t.Fatalf("average = %v, want 0.5", report.Summary.AverageEmployeesPerDepartment)
	}
}

func TestBulkDeleteReportsPerItem(t *testing.T) {
	service, _, directory := newFixture()

	deletable, _ := service.Create(context.Background(), "Deletable", "")
	guarded, _ := service.Create(context.Background(), "Guarded", "")
	directory.byDepartment[guarded.ID] = []employees.Employee{{FirstName: "Ada"}}
	missing := primitive.NewObjectID()

	result := service.BulkDelete(context.Background(), []primitive.ObjectID{deletable.ID, guarded.ID, missing})

	if len(result.Deleted) != 1 || result.Deleted[0] != deletable.ID.Hex() {
		t.Fatalf("deleted = %v", result.Deleted)
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("skipped = %+v, want guarded and missing", result.Skipped)
	}
	if len(result.Failed) != 0 {
		t.Fatalf("failed = %+v, want none", result.Failed)
	}
}

func TestBulkUpdateRejectsNameCollision(t *testing.T) {
	service, _, _ := newFixture()

	first, _ := service.Create(context.Background(), "First", "")
	if _, err := service.Create(context.Background(), "Second", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	result := service.BulkUpdate(context.Background(), []primitive.ObjectID{first.ID}, BulkUpdate{Name: "Second"})

	if len(result.Failed) != 1 {
		t.Fatalf("expected name collision failure, got %+v", result)
	}
	if len(result.Updated) != 0 {
		t.Fatalf("nothing should be updated: %+v", result)
	}
}
