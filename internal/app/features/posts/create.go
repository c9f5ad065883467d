// internal/app/features/posts/create.go
package posts

import (
	"context"
	"encoding/json"
	"net/http"

	groupstore "github.com/branchout-app/branchout/internal/app/store/groups"
	milestonestore "github.com/branchout-app/branchout/internal/app/store/milestones"
	poststore "github.com/branchout-app/branchout/internal/app/store/posts"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/awards"
	"github.com/branchout-app/branchout/internal/app/system/htmlsanitize"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/branchout-app/branchout/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createPostRequest struct {
	GroupID string `json:"group_id"`
	Content string `json:"content"`
}

// HandleCreate publishes a post into a community group the caller belongs
// to (or owns) and awards "Post Superstar" on the first one.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Message(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	groupID, err := primitive.ObjectIDFromHex(req.GroupID)
	if err != nil {
		apiutil.Message(w, http.StatusUnprocessableEntity, "Invalid group id.")
		return
	}
	req.Content = htmlsanitize.Sanitize(req.Content)
	if req.Content == "" {
		apiutil.Message(w, http.StatusUnprocessableEntity, "Post content is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	group, err := groupstore.New(h.DB).GetByID(ctx, groupID)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Group not found.")
		return
	default:
		h.Log.Error("group GetByID", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}
	if group.Resource {
		apiutil.Message(w, http.StatusUnprocessableEntity, "Posts cannot be published into resource groups.")
		return
	}
	if group.Owner != uid && !group.HasMember(uid) {
		apiutil.Message(w, http.StatusForbidden, "You must be in the group to post to it.")
		return
	}

	post, err := poststore.New(h.DB).Create(ctx, uid, groupID, req.Content)
	if err != nil {
		h.Log.Error("post Create", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	msg := "Post created."
	if award := awards.Grant(ctx, milestonestore.New(h.DB), uid, models.BadgePostSuperstar, h.Log); award != "" {
		msg = msg + " " + award
	}
	apiutil.JSON(w, http.StatusCreated, map[string]any{
		"message": msg,
		"post":    post,
	})
}
