// internal/app/features/groups/resources.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"

	commentstore "github.com/branchout-app/branchout/internal/app/store/comments"
	groupstore "github.com/branchout-app/branchout/internal/app/store/groups"
	poststore "github.com/branchout-app/branchout/internal/app/store/posts"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type addResourceRequest struct {
	ResourceID string `json:"resource_id"`
}

// HandleAddResource attaches a post or comment to a resource group owned
// by the signed-in user. The id must refer to an existing post or comment;
// the group store itself never validates resources.
func (h *Handler) HandleAddResource(w http.ResponseWriter, r *http.Request) {
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

	var req addResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Message(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	resourceID, err := primitive.ObjectIDFromHex(req.ResourceID)
	if err != nil {
		apiutil.Message(w, http.StatusUnprocessableEntity, "Invalid resource id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	exists, err := h.resourceExists(ctx, resourceID)
	if err != nil {
		h.Log.Error("resource existence check", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}
	if !exists {
		apiutil.Message(w, http.StatusNotFound, "Resource not found.")
		return
	}

	group, err := groupstore.New(h.DB).AddResource(ctx, uid, resourceID, groupID)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Group not found.")
		return
	case groupstore.ErrNotResourceGroup:
		apiutil.Message(w, http.StatusUnprocessableEntity, "This group does not hold resources.")
		return
	case groupstore.ErrNotOwner:
		apiutil.Message(w, http.StatusForbidden, "Only the group owner can add resources.")
		return
	case groupstore.ErrResourceInGroup:
		apiutil.Message(w, http.StatusConflict, "Resource is already in this group.")
		return
	default:
		h.Log.Error("group AddResource", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{
		"message": "Resource added to group.",
		"group":   group,
	})
}

// HandleRemoveResource detaches a resource from a resource group.
func (h *Handler) HandleRemoveResource(w http.ResponseWriter, r *http.Request) {
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
	resourceID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "resourceID"))
	if err != nil {
		apiutil.Message(w, http.StatusNotFound, "Resource not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	group, err := groupstore.New(h.DB).RemoveResource(ctx, uid, groupID, resourceID)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Group not found.")
		return
	case groupstore.ErrNotOwner:
		apiutil.Message(w, http.StatusForbidden, "Only the group owner can remove resources.")
		return
	case groupstore.ErrResourceNotInGroup:
		// Same condition as an absent group: nothing attached to remove.
		apiutil.Message(w, http.StatusNotFound, "Resource is not in this group.")
		return
	default:
		h.Log.Error("group RemoveResource", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{
		"message": "Resource removed from group.",
		"group":   group,
	})
}

// resourceExists reports whether id names a stored post or comment.
func (h *Handler) resourceExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if ok, err := poststore.New(h.DB).Exists(ctx, id); err != nil || ok {
		return ok, err
	}
	return commentstore.New(h.DB).Exists(ctx, id)
}
