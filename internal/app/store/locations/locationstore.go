// internal/app/store/locations/locationstore.go
package locationstore

import (
	"context"
	"errors"
	"time"

	"github.com/branchout-app/branchout/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrAlreadySet is returned when a user who already has a location tries
// to set one instead of updating it.
var ErrAlreadySet = errors.New("location already set for user")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("locations")}
}

// Set records a user's location. Each user has at most one, enforced by
// the unique index on user_id.
func (s *Store) Set(ctx context.Context, userID primitive.ObjectID, city, state string) (models.Location, error) {
	now := time.Now().UTC()
	loc := models.Location{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		City:      city,
		CityCI:    text.Fold(city),
		State:     state,
		StateCI:   text.Fold(state),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, loc); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Location{}, ErrAlreadySet
		}
		return models.Location{}, err
	}
	return loc, nil
}

// Update replaces the user's location. Returns mongo.ErrNoDocuments when
// the user has none to update.
func (s *Store) Update(ctx context.Context, userID primitive.ObjectID, city, state string) (models.Location, error) {
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"city":       city,
			"city_ci":    text.Fold(city),
			"state":      state,
			"state_ci":   text.Fold(state),
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var loc models.Location
	if err := res.Decode(&loc); err != nil {
		return models.Location{}, err
	}
	return loc, nil
}

// GetByUser returns the user's location, or mongo.ErrNoDocuments.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) (models.Location, error) {
	var loc models.Location
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&loc); err != nil {
		return models.Location{}, err
	}
	return loc, nil
}

// Nearby lists locations in the same city and state as the given one,
// excluding the user it belongs to.
func (s *Store) Nearby(ctx context.Context, loc models.Location) ([]models.Location, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"city_ci":  loc.CityCI,
		"state_ci": loc.StateCI,
		"user_id":  bson.M{"$ne": loc.UserID},
	}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var locs []models.Location
	if err := cur.All(ctx, &locs); err != nil {
		return nil, err
	}
	return locs, nil
}

// Delete removes the user's location. Returns mongo.ErrNoDocuments when
// there was none.
func (s *Store) Delete(ctx context.Context, userID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
