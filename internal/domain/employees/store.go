package employees

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	collection *mongo.Collection
}

func NewStore(database *mongo.Database) *Store {
	return &Store{collection: database.Collection("employees")}
}

func (s *Store) Insert(ctx context.Context, employee *Employee) error {
	if employee.ID.IsZero() {
		employee.ID = primitive.NewObjectID()
	}
	if employee.EmploymentStatus == "" {
		employee.EmploymentStatus = StatusActive
	}
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = time.Now().UTC()
	}

	count, err := s.collection.CountDocuments(ctx, bson.M{"email": employee.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	_, err = s.collection.InsertOne(ctx, employee)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	return err
}

func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID) (*Employee, error) {
	var employee Employee
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	cursor, err := s.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []Employee
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ListActive(ctx context.Context) ([]Employee, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"employmentStatus": StatusActive})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []Employee
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ListActiveByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]Employee, error) {
	cursor, err := s.collection.Find(ctx, bson.M{
		"departmentId":     departmentID,
		"employmentStatus": StatusActive,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []Employee
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{"employmentStatus": StatusActive})
}

func (s *Store) CountActiveByDepartment(ctx context.Context, departmentID primitive.ObjectID) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{
		"departmentId":     departmentID,
		"employmentStatus": StatusActive,
	})
}

func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// BumpTaskRevision atomically increments the employee's task revision and
// returns the new value.
func (s *Store) BumpTaskRevision(ctx context.Context, id primitive.ObjectID) (int64, error) {
	var employee Employee
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"taskRevision": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&employee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return employee.TaskRevision, nil
}

func (s *Store) TaskRevision(ctx context.Context, id primitive.ObjectID) (int64, error) {
	employee, err := s.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return employee.TaskRevision, nil
}
