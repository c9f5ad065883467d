// internal/app/store/milestones/milestonestore.go
package milestonestore

import (
	"context"
	"errors"
	"time"

	"github.com/branchout-app/branchout/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("milestones")}
}

var (
	// ErrAlreadyInitialized is returned when a second ledger is created for
	// the same user. Backed by the unique index on user_id.
	ErrAlreadyInitialized = errors.New("milestones already initialized for this user")

	// ErrUnknownBadge is returned for a badge outside the catalogue. Awards
	// fail closed rather than writing a stray key.
	ErrUnknownBadge = errors.New("badge is not in the catalogue")
)

// Initialize creates the user's ledger with every catalogue badge unearned.
func (s *Store) Initialize(ctx context.Context, userID primitive.ObjectID) (models.MilestoneEntry, error) {
	now := time.Now().UTC()
	badges := make(map[models.Badge]bool, len(models.BadgeCatalogue()))
	for _, b := range models.BadgeCatalogue() {
		badges[b] = false
	}
	entry := models.MilestoneEntry{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Badges:    badges,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, entry); err != nil {
		if wafflemongo.IsDup(err) {
			return models.MilestoneEntry{}, ErrAlreadyInitialized
		}
		return models.MilestoneEntry{}, err
	}
	return entry, nil
}

// AwardResult distinguishes a fresh grant from a badge already held.
type AwardResult struct {
	Entry   models.MilestoneEntry
	Already bool
}

// Award sets the badge flag for the user. The flip is a single conditional
// update on {user_id, badges.<name>: false}, so a flag can only ever go
// false→true and concurrent awards of the same badge resolve to one grant.
// Returns mongo.ErrNoDocuments if the user has no ledger.
func (s *Store) Award(ctx context.Context, userID primitive.ObjectID, badge models.Badge) (AwardResult, error) {
	if !badge.Valid() {
		return AwardResult{}, ErrUnknownBadge
	}

	field := "badges." + string(badge)
	res, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID, field: false},
		bson.M{"$set": bson.M{field: true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return AwardResult{}, err
	}

	entry, err := s.Get(ctx, userID)
	if err != nil {
		// No ledger at all: the conditional update matched nothing for the
		// same reason.
		return AwardResult{}, err
	}
	return AwardResult{Entry: entry, Already: res.ModifiedCount == 0}, nil
}

// Get loads the user's ledger. mongo.ErrNoDocuments means the ledger was
// never initialized, which callers treat as a valid state distinct from
// all-unearned.
func (s *Store) Get(ctx context.Context, userID primitive.ObjectID) (models.MilestoneEntry, error) {
	var entry models.MilestoneEntry
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&entry); err != nil {
		return models.MilestoneEntry{}, err
	}
	return entry, nil
}
