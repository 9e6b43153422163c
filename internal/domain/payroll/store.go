package payroll

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
	return &Store{collection: database.Collection("payroll")}
}

func (s *Store) Insert(ctx context.Context, entry *Entry) error {
	entry.CreatedAt = time.Now().UTC()
	if entry.Status == "" {
		entry.Status = StatusPending
	}
	if entry.NetPay == 0 {
		entry.NetPay = ComputeNet(entry.GrossPay, entry.Deductions)
	}

	res, err := s.collection.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	entry.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID) (*Entry, error) {
	var entry Entry
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Store) List(ctx context.Context, employeeID *primitive.ObjectID, period string) ([]Entry, error) {
	filter := bson.M{}
	if employeeID != nil {
		filter["employeeId"] = *employeeID
	}
	if period != "" {
		filter["period"] = period
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []Entry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) MarkPaid(ctx context.Context, id primitive.ObjectID) (*Entry, error) {
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{"status": StatusPaid, "paidAt": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var entry Entry
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
