// internal/app/features/groups/membership.go
package groups

import (
	"context"
	"net/http"

	groupstore "github.com/branchout-app/branchout/internal/app/store/groups"
	milestonestore "github.com/branchout-app/branchout/internal/app/store/milestones"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/awards"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/branchout-app/branchout/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleJoin adds the signed-in user to a community group's roster and
// awards "Building Community" on a first successful join.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.Message(w, http.StatusNotFound, "Group not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	group, err := groupstore.New(h.DB).Join(ctx, uid, groupID)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Group not found.")
		return
	case groupstore.ErrResourceGroup:
		apiutil.Message(w, http.StatusUnprocessableEntity, "Users cannot join resource groups.")
		return
	case groupstore.ErrAlreadyMember:
		apiutil.Message(w, http.StatusConflict, "You are already in this group.")
		return
	default:
		h.Log.Error("group Join", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	msg := "Joined group."
	if award := awards.Grant(ctx, milestonestore.New(h.DB), uid, models.BadgeBuildingCommunity, h.Log); award != "" {
		msg = msg + " " + award
	}
	apiutil.JSON(w, http.StatusOK, map[string]any{
		"message": msg,
		"group":   group,
	})
}

// HandleLeave removes the signed-in user from a group's roster.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.Message(w, http.StatusNotFound, "Group not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	group, err := groupstore.New(h.DB).Leave(ctx, uid, groupID)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Group not found.")
		return
	case groupstore.ErrNotMember:
		// Same condition as an absent group: no membership record to remove.
		apiutil.Message(w, http.StatusNotFound, "You are not in this group.")
		return
	default:
		h.Log.Error("group Leave", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{
		"message": "Left group.",
		"group":   group,
	})
}
