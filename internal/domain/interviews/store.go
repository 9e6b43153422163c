package interviews

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
	return &Store{collection: database.Collection("interviews")}
}

func (s *Store) Insert(ctx context.Context, interview *Interview) error {
	now := time.Now().UTC()
	interview.CreatedAt = now
	interview.UpdatedAt = now
	if interview.Status == "" {
		interview.Status = StatusScheduled
	}

	res, err := s.collection.InsertOne(ctx, interview)
	if err != nil {
		return err
	}
	interview.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID) (*Interview, error) {
	var interview Interview
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&interview)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// HasScheduled reports whether the applicant already has a scheduled
// interview for the given job.
func (s *Store) HasScheduled(ctx context.Context, applicantID, jobID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"applicantId": applicantID,
		"jobId":       jobID,
		"status":      StatusScheduled,
	}
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) List(ctx context.Context, status string) ([]Interview, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	interviews := []Interview{}
	if err := cursor.All(ctx, &interviews); err != nil {
		return nil, err
	}
	return interviews, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status, notes string) (*Interview, error) {
	set := bson.M{"status": status, "updatedAt": time.Now().UTC()}
	if notes != "" {
		set["notes"] = notes
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var interview Interview
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&interview)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}
