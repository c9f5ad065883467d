// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a reply attached to a post.
type Comment struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Author  primitive.ObjectID `bson:"author" json:"author"`
	PostID  primitive.ObjectID `bson:"post_id" json:"post_id"`
	Content string             `bson:"content" json:"content"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
