// internal/app/features/comments/create.go
package comments

import (
	"context"
	"encoding/json"
	"net/http"

	commentstore "github.com/branchout-app/branchout/internal/app/store/comments"
	milestonestore "github.com/branchout-app/branchout/internal/app/store/milestones"
	poststore "github.com/branchout-app/branchout/internal/app/store/posts"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/awards"
	"github.com/branchout-app/branchout/internal/app/system/htmlsanitize"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/branchout-app/branchout/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createCommentRequest struct {
	PostID  string `json:"post_id"`
	Content string `json:"content"`
}

// HandleCreate replies to an existing post and awards "Comment Guru" on
// the first one.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Message(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		apiutil.Message(w, http.StatusUnprocessableEntity, "Invalid post id.")
		return
	}
	req.Content = htmlsanitize.Sanitize(req.Content)
	if req.Content == "" {
		apiutil.Message(w, http.StatusUnprocessableEntity, "Comment content is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	exists, err := poststore.New(h.DB).Exists(ctx, postID)
	if err != nil {
		h.Log.Error("post Exists", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}
	if !exists {
		apiutil.Message(w, http.StatusNotFound, "Post not found.")
		return
	}

	comment, err := commentstore.New(h.DB).Create(ctx, uid, postID, req.Content)
	if err != nil {
		h.Log.Error("comment Create", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	msg := "Comment created."
	if award := awards.Grant(ctx, milestonestore.New(h.DB), uid, models.BadgeCommentGuru, h.Log); award != "" {
		msg = msg + " " + award
	}
	apiutil.JSON(w, http.StatusCreated, map[string]any{
		"message": msg,
		"comment": comment,
	})
}
