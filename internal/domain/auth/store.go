package auth

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	LastLogin    *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
}

type Store struct {
	collection *mongo.Collection
}

func NewStore(database *mongo.Database) *Store {
	return &Store{collection: database.Collection("admins")}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	var admin Admin
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *Store) RecordLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"lastLogin": at}})
	return err
}

// EnsureAdmin creates the admin account when no account with the email
// exists. Used by startup seeding.
func (s *Store) EnsureAdmin(ctx context.Context, email, passwordHash, role string) error {
	count, err := s.collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = s.collection.InsertOne(ctx, Admin{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	return err
}

func (s *Store) Email(ctx context.Context, id primitive.ObjectID) (string, error) {
	var admin Admin
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return admin.Email, nil
}
