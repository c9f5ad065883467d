// internal/domain/models/loginrecord.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRecord is one successful sign-in, kept for dashboards and abuse
// review. EventID is a uuid assigned at insert time.
type LoginRecord struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	EventID string             `bson:"event_id" json:"event_id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	IP      string             `bson:"ip" json:"ip"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
