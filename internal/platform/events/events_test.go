package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDispatcherDeliversToSubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := NewDispatcher(8)

	var mu sync.Mutex
	received := []primitive.ObjectID{}
	done := make(chan struct{})
	dispatcher.Subscribe(func(_ context.Context, event TaskChanged) {
		mu.Lock()
		received = append(received, event.EmployeeID)
		if len(received) == 2 {
			close(done)
		}
		mu.Unlock()
	})
	dispatcher.Start(ctx)

	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	dispatcher.TaskChanged(ctx, first)
	dispatcher.TaskChanged(ctx, second)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not delivered in time")
	}

	mu.Lock()
	defer mu.Unlock()
	if received[0] != first || received[1] != second {
		t.Fatalf("events out of order: %v", received)
	}
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	// Never started, so nothing drains the queue.
	dispatcher := NewDispatcher(1)

	dispatcher.TaskChanged(context.Background(), primitive.NewObjectID())
	// Must not block even though the buffer is full.
	finished := make(chan struct{})
	go func() {
		dispatcher.TaskChanged(context.Background(), primitive.NewObjectID())
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatalf("publish blocked on a full queue")
	}
}

func TestDispatcherStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	dispatcher := NewDispatcher(1)

	delivered := make(chan struct{}, 4)
	dispatcher.Subscribe(func(_ context.Context, _ TaskChanged) {
		delivered <- struct{}{}
	})
	dispatcher.Start(ctx)

	dispatcher.TaskChanged(ctx, primitive.NewObjectID())
	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatalf("event not delivered before cancel")
	}

	cancel()
	// Give the worker a moment to observe cancellation, then verify no
	// further deliveries happen.
	time.Sleep(50 * time.Millisecond)
	dispatcher.TaskChanged(context.Background(), primitive.NewObjectID())
	select {
	case <-delivered:
		t.Fatalf("event delivered after context cancellation")
	case <-time.After(100 * time.Millisecond):
	}
}
