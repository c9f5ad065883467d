// internal/app/store/logins/loginstore.go
package loginstore

import (
	"context"
	"time"

	"github.com/branchout-app/branchout/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("login_records")}
}

// Record appends a login event for the user.
func (s *Store) Record(ctx context.Context, userID primitive.ObjectID, ip string) (models.LoginRecord, error) {
	rec := models.LoginRecord{
		ID:        primitive.NewObjectID(),
		EventID:   uuid.NewString(),
		UserID:    userID,
		IP:        ip,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return models.LoginRecord{}, err
	}
	return rec, nil
}

// CountByUser returns how many times the user has signed in.
func (s *Store) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID})
}

// ListByUser returns the user's login events, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.LoginRecord, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []models.LoginRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}
