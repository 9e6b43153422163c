package performance

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrRevisionConflict is returned when a recalculation keeps losing to
// concurrent task writes for the same employee.
var ErrRevisionConflict = errors.New("review was updated concurrently, retry")

const (
	recalcRetries      = 3
	placeholderScore   = 50
	placeholderComment = "No tasks assigned yet"
	topPerformerFloor  = 80
	topPerformerLimit  = 5
)

// ReviewerDirectory resolves the reviewing admin's address for listings.
// A nil directory leaves the field blank.
type ReviewerDirectory interface {
	Email(ctx context.Context, id primitive.ObjectID) (string, error)
}

type Service struct {
	reviews   ReviewStore
	tasks     TaskReader
	employees EmployeeDirectory
	reviewers ReviewerDirectory
}

func NewService(reviews ReviewStore, tasks TaskReader, employees EmployeeDirectory, reviewers ReviewerDirectory) *Service {
	return &Service{reviews: reviews, tasks: tasks, employees: employees, reviewers: reviewers}
}

type CreateInput struct {
	EmployeeID primitive.ObjectID
	ReviewerID primitive.ObjectID
	Date       time.Time
	Score      *int
	Comments   string
	Goals      string
}

// Create stores a review. Without an explicit score the current task set is
// scored and the derived fields captured alongside it; an explicit score is
// stored as given with no task snapshot.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Review, error) {
	ok, err := s.employees.Exists(ctx, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownEmployee
	}

	review := &Review{
		EmployeeID: in.EmployeeID,
		ReviewerID: in.ReviewerID,
		Date:       in.Date,
		Comments:   in.Comments,
		Goals:      in.Goals,
	}
	if in.Score != nil {
		review.Score = *in.Score
	} else {
		revision, result, err := s.snapshot(ctx, in.EmployeeID)
		if err != nil {
			return nil, err
		}
		applySnapshot(review, result, revision)
	}

	if err := s.reviews.Insert(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// CreateForEmployee is the idempotent variant: an employee that already has
// a review gets it back unchanged. An employee with no tasks yet receives a
// fixed placeholder score of 50 rather than the calculator's zero; existing
// records depend on that value, so it stays.
func (s *Service) CreateForEmployee(ctx context.Context, employeeID, reviewerID primitive.ObjectID) (*Review, bool, error) {
	ok, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, ErrUnknownEmployee
	}

	if existing, err := s.reviews.LatestByEmployee(ctx, employeeID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	revision, result, err := s.snapshot(ctx, employeeID)
	if err != nil {
		return nil, false, err
	}

	review := &Review{EmployeeID: employeeID, ReviewerID: reviewerID}
	if result.TotalTasks == 0 {
		review.Score = placeholderScore
		review.Comments = placeholderComment
		review.TaskRevision = revision
	} else {
		applySnapshot(review, result, revision)
	}

	if err := s.reviews.Insert(ctx, review); err != nil {
		return nil, false, err
	}
	return review, true, nil
}

// Recalculate re-derives one review's score from the employee's current
// tasks. The task revision is read before the tally; the conditional write
// refuses to clobber a snapshot from a newer revision, and a bounded retry
// re-reads and tries again.
func (s *Service) Recalculate(ctx context.Context, reviewID primitive.ObjectID) (int, error) {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return 0, err
	}

	for attempt := 0; attempt < recalcRetries; attempt++ {
		revision, result, err := s.snapshot(ctx, review.EmployeeID)
		if err != nil {
			return 0, err
		}

		matched, err := s.reviews.UpdateDerived(ctx, reviewID, result, revision)
		if err != nil {
			return 0, err
		}
		if matched {
			return result.Score, nil
		}

		// The guard rejected the write: either the review vanished or a
		// concurrent recalculation stored a newer revision.
		if _, err := s.reviews.FindByID(ctx, reviewID); err != nil {
			return 0, err
		}
	}
	return 0, ErrRevisionConflict
}

func (s *Service) RecalculateByEmployee(ctx context.Context, employeeID primitive.ObjectID) (*RecalcResult, error) {
	ok, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownEmployee
	}
	reviews, err := s.reviews.List(ctx, &employeeID)
	if err != nil {
		return nil, err
	}
	return s.recalculateBatch(ctx, reviews), nil
}

func (s *Service) RecalculateAll(ctx context.Context) (*RecalcResult, error) {
	reviews, err := s.reviews.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	return s.recalculateBatch(ctx, reviews), nil
}

func (s *Service) recalculateBatch(ctx context.Context, reviews []Review) *RecalcResult {
	result := &RecalcResult{Items: make([]RecalcItem, 0, len(reviews))}
	for _, review := range reviews {
		item := RecalcItem{ReviewID: review.ID.Hex(), EmployeeID: review.EmployeeID.Hex()}
		score, err := s.Recalculate(ctx, review.ID)
		switch {
		case err == nil:
			item.Status = RecalcRecalculated
			item.NewScore = score
			result.Recalculated++
		case errors.Is(err, ErrNotFound):
			item.Status = RecalcSkipped
			item.Reason = "review no longer exists"
			result.Skipped++
		default:
			item.Status = RecalcFailed
			item.Reason = err.Error()
			result.Failed++
		}
		result.Items = append(result.Items, item)
	}
	return result
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*Review, error) {
	return s.reviews.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, employeeID *primitive.ObjectID) ([]ListItem, error) {
	reviews, err := s.reviews.List(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	names := map[primitive.ObjectID]string{}
	reviewers := map[primitive.ObjectID]string{}
	items := make([]ListItem, 0, len(reviews))
	for _, review := range reviews {
		name, ok := names[review.EmployeeID]
		if !ok {
			name, _ = s.employees.Name(ctx, review.EmployeeID)
			names[review.EmployeeID] = name
		}
		item := ListItem{Review: review, EmployeeName: name}
		if s.reviewers != nil && !review.ReviewerID.IsZero() {
			email, ok := reviewers[review.ReviewerID]
			if !ok {
				email, _ = s.reviewers.Email(ctx, review.ReviewerID)
				reviewers[review.ReviewerID] = email
			}
			item.ReviewerEmail = email
		}
		items = append(items, item)
	}
	return items, nil
}

// EmployeeStats pairs the live task tally with the latest stored review so
// callers can see how stale the snapshot is.
func (s *Service) EmployeeStats(ctx context.Context, employeeID primitive.ObjectID) (*EmployeeStats, error) {
	ok, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownEmployee
	}

	total, completed, err := s.tasks.TallyByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	out := &EmployeeStats{
		EmployeeID: employeeID.Hex(),
		TaskStats:  ComputeScore(total, completed),
	}
	latest, err := s.reviews.LatestByEmployee(ctx, employeeID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	out.Latest = latest
	return out, nil
}

// Metrics lists each active employee's latest review, highest score first.
// Employees without a review are omitted.
func (s *Service) Metrics(ctx context.Context) ([]EmployeeMetrics, error) {
	people, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	metrics := make([]EmployeeMetrics, 0, len(people))
	for _, person := range people {
		latest, err := s.reviews.LatestByEmployee(ctx, person.ID)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, EmployeeMetrics{
			EmployeeID:     person.ID.Hex(),
			EmployeeName:   person.Name,
			Score:          latest.Score,
			CompletionRate: latest.CompletionRate,
			TotalTasks:     latest.TotalTasks,
			CompletedTasks: latest.CompletedTasks,
			ReviewDate:     latest.Date.UTC().Format(time.RFC3339),
		})
	}
	sort.SliceStable(metrics, func(i, j int) bool { return metrics[i].Score > metrics[j].Score })
	return metrics, nil
}

// CreateMissing seeds a review for every active employee that has none.
func (s *Service) CreateMissing(ctx context.Context, reviewerID primitive.ObjectID) (*CreateMissingResult, error) {
	people, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &CreateMissingResult{Created: []string{}, Skipped: []string{}, Errors: []string{}}
	for _, person := range people {
		has, err := s.reviews.HasAnyForEmployee(ctx, person.ID)
		if err != nil {
			result.Errors = append(result.Errors, person.ID.Hex())
			continue
		}
		if has {
			result.Skipped = append(result.Skipped, person.ID.Hex())
			continue
		}
		if _, _, err := s.CreateForEmployee(ctx, person.ID, reviewerID); err != nil {
			result.Errors = append(result.Errors, person.ID.Hex())
			continue
		}
		result.Created = append(result.Created, person.ID.Hex())
	}
	return result, nil
}

// Dashboard summarizes latest-review scores across the company.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	metrics, err := s.Metrics(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.reviews.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	out := &DashboardStats{TotalReviews: len(all), TopPerformers: []EmployeeMetrics{}}
	if len(metrics) > 0 {
		scores := make([]float64, 0, len(metrics))
		for _, metric := range metrics {
			scores = append(scores, float64(metric.Score))
		}
		if mean, err := stats.Mean(scores); err == nil {
			if rounded, err := stats.Round(mean, 2); err == nil {
				out.AverageScore = rounded
			}
		}
		if median, err := stats.Median(scores); err == nil {
			if rounded, err := stats.Round(median, 2); err == nil {
				out.MedianScore = rounded
			}
		}
	}
	for _, metric := range metrics {
		if metric.Score >= topPerformerFloor {
			out.TopPerformers = append(out.TopPerformers, metric)
			if len(out.TopPerformers) == topPerformerLimit {
				break
			}
		}
	}
	return out, nil
}

func (s *Service) snapshot(ctx context.Context, employeeID primitive.ObjectID) (int64, ScoreResult, error) {
	revision, err := s.employees.TaskRevision(ctx, employeeID)
	if err != nil {
		return 0, ScoreResult{}, err
	}
	total, completed, err := s.tasks.TallyByEmployee(ctx, employeeID)
	if err != nil {
		return 0, ScoreResult{}, err
	}
	return revision, ComputeScore(total, completed), nil
}

func applySnapshot(review *Review, result ScoreResult, revision int64) {
	review.Score = result.Score
	review.CompletionRate = result.CompletionRate
	review.TotalTasks = result.TotalTasks
	review.CompletedTasks = result.CompletedTasks
	review.UncompletedTasks = result.UncompletedTasks
	review.TaskRevision = revision
}
