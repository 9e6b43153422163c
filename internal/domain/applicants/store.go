package applicants

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
	return &Store{collection: database.Collection("applicants")}
}

func (s *Store) Insert(ctx context.Context, applicant *Applicant) error {
	now := time.Now().UTC()
	applicant.CreatedAt = now
	applicant.UpdatedAt = now
	if applicant.Status == "" {
		applicant.Status = StatusApplied
	}

	res, err := s.collection.InsertOne(ctx, applicant)
	if err != nil {
		return err
	}
	applicant.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID) (*Applicant, error) {
	var applicant Applicant
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&applicant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &applicant, nil
}

func (s *Store) List(ctx context.Context, jobID *primitive.ObjectID, status string) ([]Applicant, error) {
	filter := bson.M{}
	if jobID != nil {
		filter["jobId"] = *jobID
	}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	applicants := []Applicant{}
	if err := cursor.All(ctx, &applicants); err != nil {
		return nil, err
	}
	return applicants, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*Applicant, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var applicant Applicant
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&applicant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &applicant, nil
}

func (s *Store) CountByStatus(ctx context.Context, status string) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{"status": status})
}
