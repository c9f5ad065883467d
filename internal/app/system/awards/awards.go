// internal/app/system/awards/awards.go

// Package awards composes best-effort badge grants onto successful actions.
// A failed grant never rolls back the action that triggered it; the caller
// just loses the congratulation line.
package awards

import (
	"context"
	"fmt"

	milestonestore "github.com/branchout-app/branchout/internal/app/store/milestones"
	"github.com/branchout-app/branchout/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Grant awards the badge if the user holds a ledger and has not earned it
// yet. Returns a message to append to the action's response, or "" when
// there is nothing to say (already earned, no ledger, or the award failed).
func Grant(ctx context.Context, store *milestonestore.Store, userID primitive.ObjectID, badge models.Badge, log *zap.Logger) string {
	res, err := store.Award(ctx, userID, badge)
	if err != nil {
		// Missing ledger is a normal state for accounts that predate
		// milestones; anything else is worth a log line.
		log.Warn("badge award failed",
			zap.String("user_id", userID.Hex()),
			zap.String("badge", string(badge)),
			zap.Error(err))
		return ""
	}
	if res.Already {
		return ""
	}
	return fmt.Sprintf("Milestone %q received!", string(badge))
}
