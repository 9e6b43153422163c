package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event is one admin action. Recording is best effort; a failed write never
// fails the action it describes.
type Event struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActorID    string             `bson:"actorId" json:"actorId"`
	Action     string             `bson:"action" json:"action"`
	EntityType string             `bson:"entityType" json:"entityType"`
	EntityID   string             `bson:"entityId,omitempty" json:"entityId,omitempty"`
	RequestID  string             `bson:"requestId,omitempty" json:"requestId,omitempty"`
	IP         string             `bson:"ip,omitempty" json:"ip,omitempty"`
	Details    map[string]any     `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

type Store struct {
	collection *mongo.Collection
}

func NewStore(database *mongo.Database) *Store {
	return &Store{collection: database.Collection("audit_events")}
}

func (s *Store) Record(ctx context.Context, event Event) error {
	event.CreatedAt = time.Now().UTC()
	_, err := s.collection.InsertOne(ctx, event)
	return err
}

// List returns the newest events first, optionally narrowed to one actor
// or entity type.
func (s *Store) List(ctx context.Context, actorID, entityType string, limit, offset int64) ([]Event, error) {
	filter := bson.M{}
	if actorID != "" {
		filter["actorId"] = actorID
	}
	if entityType != "" {
		filter["entityType"] = entityType
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit).SetSkip(offset)
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
