package performance

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hrboard/internal/domain/employees"
)

// ReviewStore is the persistence surface the service needs. The conditional
// UpdateDerived carries the task revision guard.
type ReviewStore interface {
	Insert(ctx context.Context, review *Review) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Review, error)
	List(ctx context.Context, employeeID *primitive.ObjectID) ([]Review, error)
	LatestByEmployee(ctx context.Context, employeeID primitive.ObjectID) (*Review, error)
	HasAnyForEmployee(ctx context.Context, employeeID primitive.ObjectID) (bool, error)
	UpdateDerived(ctx context.Context, id primitive.ObjectID, result ScoreResult, revision int64) (bool, error)
}

// TaskReader tallies an employee's task ledger.
type TaskReader interface {
	TallyByEmployee(ctx context.Context, employeeID primitive.ObjectID) (total, completed int, err error)
}

// Person is the slice of the employee record the scoring paths need.
type Person struct {
	ID   primitive.ObjectID
	Name string
}

// EmployeeDirectory exposes employee lookups plus the task revision counter
// used to order recalculations against task writes.
type EmployeeDirectory interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	Name(ctx context.Context, id primitive.ObjectID) (string, error)
	ListActive(ctx context.Context) ([]Person, error)
	TaskRevision(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type Store struct {
	collection *mongo.Collection
}

func NewStore(database *mongo.Database) *Store {
	return &Store{collection: database.Collection("performance_reviews")}
}

func (s *Store) Insert(ctx context.Context, review *Review) error {
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now
	if review.Date.IsZero() {
		review.Date = now
	}

	res, err := s.collection.InsertOne(ctx, review)
	if err != nil {
		return err
	}
	review.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID) (*Review, error) {
	var review Review
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *Store) List(ctx context.Context, employeeID *primitive.ObjectID) ([]Review, error) {
	filter := bson.M{}
	if employeeID != nil {
		filter["employeeId"] = *employeeID
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *Store) LatestByEmployee(ctx context.Context, employeeID primitive.ObjectID) (*Review, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	var review Review
	err := s.collection.FindOne(ctx, bson.M{"employeeId": employeeID}, opts).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *Store) HasAnyForEmployee(ctx context.Context, employeeID primitive.ObjectID) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"employeeId": employeeID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateDerived overwrites the cached score and task statistics, but only
// if the stored snapshot does not come from a newer task revision. Returns
// false when the guard rejected the write or the review is gone.
func (s *Store) UpdateDerived(ctx context.Context, id primitive.ObjectID, result ScoreResult, revision int64) (bool, error) {
	filter := bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"taskRevision": bson.M{"$exists": false}},
			bson.M{"taskRevision": bson.M{"$lte": revision}},
		},
	}
	update := bson.M{"$set": bson.M{
		"score":              result.Score,
		"taskCompletionRate": result.CompletionRate,
		"totalTasks":         result.TotalTasks,
		"completedTasks":     result.CompletedTasks,
		"uncompletedTasks":   result.UncompletedTasks,
		"taskRevision":       revision,
		"updatedAt":          time.Now().UTC(),
	}}

	res, err := s.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

type taskTallier struct {
	collection *mongo.Collection
}

// NewTaskReader tallies directly against the task collection; recalculation
// needs counts only, never the documents.
func NewTaskReader(database *mongo.Database) TaskReader {
	return &taskTallier{collection: database.Collection("tasks")}
}

func (t *taskTallier) TallyByEmployee(ctx context.Context, employeeID primitive.ObjectID) (int, int, error) {
	total, err := t.collection.CountDocuments(ctx, bson.M{"employeeId": employeeID})
	if err != nil {
		return 0, 0, err
	}
	completed, err := t.collection.CountDocuments(ctx, bson.M{"employeeId": employeeID, "completed": true})
	if err != nil {
		return 0, 0, err
	}
	return int(total), int(completed), nil
}

type directory struct {
	store *employees.Store
}

// NewEmployeeDirectory adapts the employee store to the scoring paths.
func NewEmployeeDirectory(store *employees.Store) EmployeeDirectory {
	return &directory{store: store}
}

func (d *directory) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return d.store.Exists(ctx, id)
}

func (d *directory) Name(ctx context.Context, id primitive.ObjectID) (string, error) {
	employee, err := d.store.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return employee.DisplayName(), nil
}

func (d *directory) ListActive(ctx context.Context) ([]Person, error) {
	active, err := d.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	people := make([]Person, 0, len(active))
	for _, employee := range active {
		people = append(people, Person{ID: employee.ID, Name: employee.DisplayName()})
	}
	return people, nil
}

func (d *directory) TaskRevision(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return d.store.TaskRevision(ctx, id)
}
