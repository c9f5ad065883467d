// internal/app/features/groups/edit.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"

	groupstore "github.com/branchout-app/branchout/internal/app/store/groups"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/htmlsanitize"
	"github.com/branchout-app/branchout/internal/app/system/normalize"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type updateNameRequest struct {
	Name string `json:"name"`
}

type updateDescriptionRequest struct {
	Description string `json:"description"`
}

// HandleUpdateName renames a group. Ownership is asserted first; the
// rename itself trusts the caller.
func (h *Handler) HandleUpdateName(w http.ResponseWriter, r *http.Request) {
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

	var req updateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Message(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	req.Name = normalize.Name(req.Name)
	if req.Name == "" {
		apiutil.Message(w, http.StatusUnprocessableEntity, "Group name is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := groupstore.New(h.DB)
	if err := store.AssertOwner(ctx, groupID, uid); err != nil {
		h.respondOwnershipError(w, err)
		return
	}

	group, err := store.UpdateName(ctx, groupID, req.Name)
	switch err {
	case nil:
	case groupstore.ErrDuplicateGroupName:
		apiutil.Message(w, http.StatusConflict, "A group with this name already exists.")
		return
	default:
		h.Log.Error("group UpdateName", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{
		"message": "Group name updated.",
		"group":   group,
	})
}

// HandleUpdateDescription replaces a group's description; empty clears it.
func (h *Handler) HandleUpdateDescription(w http.ResponseWriter, r *http.Request) {
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

	var req updateDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Message(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	store := groupstore.New(h.DB)
	if err := store.AssertOwner(ctx, groupID, uid); err != nil {
		h.respondOwnershipError(w, err)
		return
	}

	group, err := store.UpdateDescription(ctx, groupID, htmlsanitize.Sanitize(req.Description))
	if err != nil {
		h.Log.Error("group UpdateDescription", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{
		"message": "Group description updated.",
		"group":   group,
	})
}

// HandleDelete removes a group by name. Owner only; no cascade.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}
	name := normalize.Param(chi.URLParam(r, "name"))
	if name == "" {
		apiutil.Message(w, http.StatusNotFound, "Group not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := groupstore.New(h.DB).Delete(ctx, uid, name)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Group not found.")
		return
	case groupstore.ErrNotOwner:
		apiutil.Message(w, http.StatusForbidden, "Only the group owner can delete it.")
		return
	default:
		h.Log.Error("group Delete", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.Message(w, http.StatusOK, "Group deleted.")
}

func (h *Handler) respondOwnershipError(w http.ResponseWriter, err error) {
	switch err {
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Group not found.")
	case groupstore.ErrNotOwner:
		apiutil.Message(w, http.StatusForbidden, "Only the group owner can edit it.")
	default:
		h.Log.Error("group AssertOwner", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
	}
}
