package performance

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/platform/events"
)

func TestTaskChangeRefreshesLatestReview(t *testing.T) {
	employee := Person{ID: primitive.NewObjectID(), Name: "Ada Park"}
	service, reviews, ledger, directory := newFixture(employee)
	ledger.total[employee.ID] = 10
	ledger.completed[employee.ID] = 4

	review, _, err := service.CreateForEmployee(context.Background(), employee.ID, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if review.Score != 30 {
		t.Fatalf("initial score = %d, want 30", review.Score)
	}

	ledger.completed[employee.ID] = 9
	directory.revisions[employee.ID] = 2

	NewRecalculator(service).HandleTaskChanged(context.Background(), events.TaskChanged{EmployeeID: employee.ID})

	updated, err := reviews.FindByID(context.Background(), review.ID)
	if err != nil {
		t.Fatalf("reload review: %v", err)
	}
	if updated.Score != 100 {
		t.Fatalf("score after task change = %d, want 100", updated.Score)
	}
	if updated.CompletedTasks != 9 {
		t.Fatalf("completedTasks = %d, want 9", updated.CompletedTasks)
	}
	if updated.TaskRevision != 2 {
		t.Fatalf("taskRevision = %d, want 2", updated.TaskRevision)
	}
}

func TestTaskChangeWithoutReviewIsNoOp(t *testing.T) {
	employee := Person{ID: primitive.NewObjectID(), Name: "Ada Park"}
	service, reviews, _, _ := newFixture(employee)

	NewRecalculator(service).HandleTaskChanged(context.Background(), events.TaskChanged{EmployeeID: employee.ID})

	if reviews.updates != 0 {
		t.Fatalf("expected no derived writes, got %d", reviews.updates)
	}
	if len(reviews.reviews) != 0 {
		t.Fatalf("task changes must not create reviews, found %d", len(reviews.reviews))
	}
}

func TestTaskChangeSwallowsLookupFailure(t *testing.T) {
	employee := Person{ID: primitive.NewObjectID(), Name: "Ada Park"}
	service, reviews, _, _ := newFixture(employee)
	reviews.lookupErr = errors.New("connection reset")

	NewRecalculator(service).HandleTaskChanged(context.Background(), events.TaskChanged{EmployeeID: employee.ID})

	if reviews.updates != 0 {
		t.Fatalf("expected no derived writes after lookup failure, got %d", reviews.updates)
	}
}

func TestTaskChangeSwallowsRecalculationFailure(t *testing.T) {
	employee := Person{ID: primitive.NewObjectID(), Name: "Ada Park"}
	service, reviews, ledger, _ := newFixture(employee)
	ledger.total[employee.ID] = 10
	ledger.completed[employee.ID] = 4

	review, _, err := service.CreateForEmployee(context.Background(), employee.ID, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("create review: %v", err)
	}

	ledger.completed[employee.ID] = 9
	reviews.updateRejections = recalcRetries

	NewRecalculator(service).HandleTaskChanged(context.Background(), events.TaskChanged{EmployeeID: employee.ID})

	stale, err := reviews.FindByID(context.Background(), review.ID)
	if err != nil {
		t.Fatalf("reload review: %v", err)
	}
	if stale.Score != 30 {
		t.Fatalf("score must stay stale on conflict, got %d", stale.Score)
	}
}
