package performance

import (
	"context"
	"errors"
	"log/slog"

	"hrboard/internal/platform/events"
)

// Recalculator refreshes the latest review of an employee whenever their
// task set changes. Failures are logged and never surface to the task
// write that triggered them.
type Recalculator struct {
	service *Service
}

func NewRecalculator(service *Service) *Recalculator {
	return &Recalculator{service: service}
}

// HandleTaskChanged satisfies the event handler contract. An employee with
// no review yet is a no-op; the eventual first review captures the current
// task state anyway.
func (r *Recalculator) HandleTaskChanged(ctx context.Context, event events.TaskChanged) {
	latest, err := r.service.reviews.LatestByEmployee(ctx, event.EmployeeID)
	if errors.Is(err, ErrNotFound) {
		return
	}
	if err != nil {
		slog.Warn("recalculation lookup failed", "employeeId", event.EmployeeID.Hex(), "error", err)
		return
	}

	score, err := r.service.Recalculate(ctx, latest.ID)
	if err != nil {
		slog.Warn("score recalculation failed",
			"employeeId", event.EmployeeID.Hex(),
			"reviewId", latest.ID.Hex(),
			"error", err)
		return
	}
	slog.Debug("score recalculated",
		"employeeId", event.EmployeeID.Hex(),
		"reviewId", latest.ID.Hex(),
		"score", score)
}
