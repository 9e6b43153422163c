package attendance

import (
	"context"
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
	return &Store{collection: database.Collection("attendance")}
}

func (s *Store) Insert(ctx context.Context, record *Record) error {
	record.CreatedAt = time.Now().UTC()
	if record.Status == "" {
		record.Status = StatusPresent
	}
	record.Date = record.Date.UTC().Truncate(24 * time.Hour)

	res, err := s.collection.InsertOne(ctx, record)
	if err != nil {
		return err
	}
	record.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// List filters by employee and by inclusive date range; zero values mean
// no bound on that side.
func (s *Store) List(ctx context.Context, employeeID *primitive.ObjectID, from, to time.Time) ([]Record, error) {
	filter := bson.M{}
	if employeeID != nil {
		filter["employeeId"] = *employeeID
	}
	dateFilter := bson.M{}
	if !from.IsZero() {
		dateFilter["$gte"] = from.UTC()
	}
	if !to.IsZero() {
		dateFilter["$lte"] = to.UTC()
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []Record{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
