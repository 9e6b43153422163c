package jobs

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
	return &Store{collection: database.Collection("jobs")}
}

func (s *Store) Insert(ctx context.Context, job *Job) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = StatusOpen
	}

	res, err := s.collection.InsertOne(ctx, job)
	if err != nil {
		return err
	}
	job.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID) (*Job, error) {
	var job Job
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// List returns jobs newest first. A non-empty status narrows the result,
// a non-empty search term matches title, description or location.
func (s *Store) List(ctx context.Context, status, search string) ([]Job, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"location": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	jobs := []Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Job, error) {
	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var job Job
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PushApplicant records an applicant id on the job document.
func (s *Store) PushApplicant(ctx context.Context, jobID, applicantID primitive.ObjectID) error {
	update := bson.M{
		"$push": bson.M{"applicants": applicantID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": jobID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CountByStatus(ctx context.Context, status string) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{"status": status})
}
