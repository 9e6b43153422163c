package tasks

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StoreAPI interface {
	Insert(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Task, error)
	List(ctx context.Context, employeeID *primitive.ObjectID) ([]Task, error)
	Update(ctx context.Context, id primitive.ObjectID, update Update) (*Task, error)
}

type EmployeeAPI interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	BumpTaskRevision(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// Notifier is told after every task mutation so dependent scores can be
// refreshed out of band.
type Notifier interface {
	TaskChanged(ctx context.Context, employeeID primitive.ObjectID)
}

type Service struct {
	store     StoreAPI
	employees EmployeeAPI
	notifier  Notifier
}

func NewService(store StoreAPI, employees EmployeeAPI, notifier Notifier) *Service {
	return &Service{store: store, employees: employees, notifier: notifier}
}

type CreateInput struct {
	EmployeeID  primitive.ObjectID
	Title       string
	Description string
	Completed   bool
	DueDate     *time.Time
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Task, error) {
	ok, err := s.employees.Exists(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownEmployee
	}

	task := &Task{
		EmployeeID:  in.EmployeeID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Completed:   in.Completed,
		DueDate:     in.DueDate,
	}
	if err := s.store.Insert(ctx, task); err != nil {
		return nil, err
	}
	s.changed(ctx, task.EmployeeID)
	return task, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*Task, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, employeeID *primitive.ObjectID) ([]Task, error) {
	return s.store.List(ctx, employeeID)
}

func (s *Service) Update(ctx context.Context, id primitive.ObjectID, update Update) (*Task, error) {
	task, err := s.store.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, task.EmployeeID)
	return task, nil
}

// changed advances the employee's task revision before notifying, so any
// concurrent recalculation that read the older revision cannot overwrite
// the state produced by this mutation.
func (s *Service) changed(ctx context.Context, employeeID primitive.ObjectID) {
	_, _ = s.employees.BumpTaskRevision(ctx, employeeID)
	s.notifier.TaskChanged(ctx, employeeID)
}
