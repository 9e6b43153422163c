package departments

import (
	"context"
	"errors"
	"regexp"
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
	return &Store{collection: database.Collection("departments")}
}

// nameFilter matches the exact name case-insensitively.
func nameFilter(name string) bson.M {
	return bson.M{"name": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(name) + "$", Options: "i"}}
}

func (s *Store) Insert(ctx context.Context, department *Department) error {
	if department.ID.IsZero() {
		department.ID = primitive.NewObjectID()
	}
	if department.CreatedAt.IsZero() {
		department.CreatedAt = time.Now().UTC()
	}
	_, err := s.collection.InsertOne(ctx, department)
	return err
}

func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID) (*Department, error) {
	var department Department
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&department)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (s *Store) List(ctx context.Context) ([]Department, error) {
	cursor, err := s.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []Department
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) NameExists(ctx context.Context, name string, excludeID *primitive.ObjectID) (bool, error) {
	filter := nameFilter(name)
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name, description string) (*Department, error) {
	var department Department
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "description": description}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&department)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
