package events

import (
	"context"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskChanged signals that an employee's task set was mutated and any cached
// score derived from it may be stale.
type TaskChanged struct {
	EmployeeID primitive.ObjectID
}

type Handler func(ctx context.Context, event TaskChanged)

// Dispatcher is a bounded in-process queue for task-change events. Publishing
// never blocks the caller: when the queue is full the event is dropped with a
// warning. Subscribers run on a single worker goroutine, so a slow handler
// delays later events but never the originating write.
type Dispatcher struct {
	mu       sync.RWMutex
	queue    chan TaskChanged
	handlers []Handler
}

func NewDispatcher(buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 128
	}
	return &Dispatcher{queue: make(chan TaskChanged, buffer)}
}

func (d *Dispatcher) Subscribe(handler Handler) {
	if handler == nil {
		return
	}
	d.mu.Lock()
	d.handlers = append(d.handlers, handler)
	d.mu.Unlock()
}

func (d *Dispatcher) Start(ctx context.Context) {
	go d.worker(ctx)
}

func (d *Dispatcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.queue:
			d.mu.RLock()
			handlers := make([]Handler, len(d.handlers))
			copy(handlers, d.handlers)
			d.mu.RUnlock()
			for _, handler := range handlers {
				handler(ctx, event)
			}
		}
	}
}

// TaskChanged enqueues a task-change event for the employee. Implements the
// notifier contract consumed by the task service.
func (d *Dispatcher) TaskChanged(_ context.Context, employeeID primitive.ObjectID) {
	select {
	case d.queue <- TaskChanged{EmployeeID: employeeID}:
	default:
		slog.Warn("event queue full, dropping task change", "employeeId", employeeID.Hex())
	}
}
