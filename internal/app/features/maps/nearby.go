// internal/app/features/maps/nearby.go
package maps

import (
	"context"
	"net/http"

	locationstore "github.com/branchout-app/branchout/internal/app/store/locations"
	milestonestore "github.com/branchout-app/branchout/internal/app/store/milestones"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/awards"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/branchout-app/branchout/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleNearby lists other users in the caller's city/state and awards
// "Branching Out" the first time the caller looks around.
func (h *Handler) HandleNearby(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := locationstore.New(h.DB)

	mine, err := store.GetByUser(ctx, uid)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Set your location before searching nearby.")
		return
	default:
		h.Log.Error("location GetByUser", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	near, err := store.Nearby(ctx, mine)
	if err != nil {
		h.Log.Error("location Nearby", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}
	if near == nil {
		near = []models.Location{}
	}

	msg := "Nearby users found."
	if award := awards.Grant(ctx, milestonestore.New(h.DB), uid, models.BadgeBranchingOut, h.Log); award != "" {
		msg = msg + " " + award
	}
	apiutil.JSON(w, http.StatusOK, map[string]any{
		"message": msg,
		"nearby":  near,
	})
}
