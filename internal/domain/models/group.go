// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is either a community group (Members hold user ids) or a resource
// group (Members hold post/comment ids). Resource is immutable after
// creation, and the two member kinds are never mixed.
//
// Invariants held by the groups store:
//   - Name is unique across ALL groups (folded via NameCI).
//   - Owner never appears in Members.
//   - Members holds no duplicates.
type Group struct {
	ID          primitive.ObjectID   `bson:"_id" json:"id"`
	Name        string               `bson:"name" json:"name"`
	NameCI      string               `bson:"name_ci" json:"-"`
	Description string               `bson:"description" json:"description"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	Resource    bool                 `bson:"resource" json:"resource"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether id is in the member list. Comparison is by id
// equality; the owner is not a member.
func (g Group) HasMember(id primitive.ObjectID) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}
