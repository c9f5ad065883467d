// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is content published into a group by one of its members (or the
// group's owner).
type Post struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Author  primitive.ObjectID `bson:"author" json:"author"`
	GroupID primitive.ObjectID `bson:"group_id" json:"group_id"`
	Content string             `bson:"content" json:"content"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
