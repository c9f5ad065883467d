// internal/domain/models/milestone.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Badge is a named accomplishment flag. The catalogue is fixed; anything
// outside it is rejected by the milestones store rather than silently
// ignored.
type Badge string

const (
	BadgeCreatedAccount    Badge = "Getting Started: Created Account"
	BadgeBuildingCommunity Badge = "Building Community"
	BadgeBranchingOut      Badge = "Branching Out"
	BadgePostSuperstar     Badge = "Post Superstar"
	BadgeCommentGuru       Badge = "Comment Guru"
)

// BadgeCatalogue returns every badge a user can earn, in display order.
func BadgeCatalogue() []Badge {
	return []Badge{
		BadgeCreatedAccount,
		BadgeBuildingCommunity,
		BadgeBranchingOut,
		BadgePostSuperstar,
		BadgeCommentGuru,
	}
}

// Valid reports whether b is part of the catalogue.
func (b Badge) Valid() bool {
	switch b {
	case BadgeCreatedAccount, BadgeBuildingCommunity, BadgeBranchingOut,
		BadgePostSuperstar, BadgeCommentGuru:
		return true
	}
	return false
}

// MilestoneEntry is one user's badge ledger. Badges always contains exactly
// the catalogue keys, and a true flag never reverts to false.
type MilestoneEntry struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Badges map[Badge]bool     `bson:"badges" json:"badges"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Earned reports whether b has been earned. A nil entry pointer is treated
// by callers as "no ledger yet", which is a distinct state from all-false.
func (e MilestoneEntry) Earned(b Badge) bool {
	return e.Badges[b]
}
