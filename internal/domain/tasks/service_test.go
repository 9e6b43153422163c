package tasks

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	tasks map[primitive.ObjectID]*Task
}

func newFakeStore() *fakeStore {
	return &fakeStore{tasks: map[primitive.ObjectID]*Task{}}
}

func (f *fakeStore) Insert(_ context.Context, task *Task) error {
	task.ID = primitive.NewObjectID()
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id primitive.ObjectID) (*Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeStore) List(_ context.Context, employeeID *primitive.ObjectID) ([]Task, error) {
	out := []Task{}
	for _, task := range f.tasks {
		if employeeID == nil || task.EmployeeID == *employeeID {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id primitive.ObjectID, update Update) (*Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	copied := *task
	return &copied, nil
}

type fakeEmployees struct {
	known     map[primitive.ObjectID]bool
	revisions map[primitive.ObjectID]int64
	bumps     int
}

func (f *fakeEmployees) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	return f.known[id], nil
}

func (f *fakeEmployees) BumpTaskRevision(_ context.Context, id primitive.ObjectID) (int64, error) {
	if f.revisions == nil {
		f.revisions = map[primitive.ObjectID]int64{}
	}
	f.revisions[id]++
	f.bumps++
	return f.revisions[id], nil
}

type fakeNotifier struct {
	notified []primitive.ObjectID
}

func (f *fakeNotifier) TaskChanged(_ context.Context, employeeID primitive.ObjectID) {
	f.notified = append(f.notified, employeeID)
}

func TestCreateRejectsUnknownEmployee(t *testing.T) {
	store := newFakeStore()
	employees := &fakeEmployees{known: map[primitive.ObjectID]bool{}}
	notifier := &fakeNotifier{}
	service := NewService(store, employees, notifier)

	_, err := service.Create(context.Background(), CreateInput{
		EmployeeID: primitive.NewObjectID(),
		Title:      "write report",
	})
	if !errors.Is(err, ErrUnknownEmployee) {
		t.Fatalf("expected ErrUnknownEmployee, got %v", err)
	}
	if len(notifier.notified) != 0 {
		t.Fatalf("no notification expected on rejected create")
	}
}

func TestCreateBumpsRevisionAndNotifies(t *testing.T) {
	employeeID := primitive.NewObjectID()
	store := newFakeStore()
	employees := &fakeEmployees{known: map[primitive.ObjectID]bool{employeeID: true}}
	notifier := &fakeNotifier{}
	service := NewService(store, employees, notifier)

	task, err := service.Create(context.Background(), CreateInput{
		EmployeeID: employeeID,
		Title:      "  write report  ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Title != "write report" {
		t.Fatalf("title not trimmed: %q", task.Title)
	}
	if employees.bumps != 1 {
		t.Fatalf("expected 1 revision bump, got %d", employees.bumps)
	}
	if len(notifier.notified) != 1 || notifier.notified[0] != employeeID {
		t.Fatalf("expected one notification for %s, got %v", employeeID.Hex(), notifier.notified)
	}
}

func TestUpdateNotifies(t *testing.T) {
	employeeID := primitive.NewObjectID()
	store := newFakeStore()
	employees := &fakeEmployees{known: map[primitive.ObjectID]bool{employeeID: true}}
	notifier := &fakeNotifier{}
	service := NewService(store, employees, notifier)

	task, err := service.Create(context.Background(), CreateInput{EmployeeID: employeeID, Title: "task"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	completed := true
	updated, err := service.Update(context.Background(), task.ID, Update{Completed: &completed})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed {
		t.Fatalf("completion flag not applied")
	}

	if len(notifier.notified) != 2 {
		t.Fatalf("expected 2 notifications (create, update), got %d", len(notifier.notified))
	}
	if employees.revisions[employeeID] != 2 {
		t.Fatalf("expected revision 2, got %d", employees.revisions[employeeID])
	}
}

func TestUpdateMissingTask(t *testing.T) {
	store := newFakeStore()
	employees := &fakeEmployees{known: map[primitive.ObjectID]bool{}}
	notifier := &fakeNotifier{}
	service := NewService(store, employees, notifier)

	_, err := service.Update(context.Background(), primitive.NewObjectID(), Update{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(notifier.notified) != 0 {
		t.Fatalf("no notification expected for missing task")
	}
}
