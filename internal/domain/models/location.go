// internal/domain/models/location.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location is a user's self-reported city/state, used for the nearby-user
// lookup. At most one location per user.
type Location struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	City    string             `bson:"city" json:"city"`
	CityCI  string             `bson:"city_ci" json:"-"`
	State   string             `bson:"state" json:"state"`
	StateCI string             `bson:"state_ci" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
