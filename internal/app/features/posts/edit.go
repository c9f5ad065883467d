// internal/app/features/posts/edit.go
package posts

import (
	"context"
	"encoding/json"
	"net/http"

	poststore "github.com/branchout-app/branchout/internal/app/store/posts"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/htmlsanitize"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type updatePostRequest struct {
	Content string `json:"content"`
}

// HandleUpdate rewrites the content of the caller's own post.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.Message(w, http.StatusNotFound, "Post not found.")
		return
	}

	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Message(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	req.Content = htmlsanitize.Sanitize(req.Content)
	if req.Content == "" {
		apiutil.Message(w, http.StatusUnprocessableEntity, "Post content is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	post, err := poststore.New(h.DB).UpdateContent(ctx, id, uid, req.Content)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Post not found.")
		return
	case poststore.ErrNotAuthor:
		apiutil.Message(w, http.StatusForbidden, "You are not the author of this post.")
		return
	default:
		h.Log.Error("post UpdateContent", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{
		"message": "Post updated.",
		"post":    post,
	})
}

// HandleDelete removes the caller's own post.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.Message(w, http.StatusNotFound, "Post not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	switch err := poststore.New(h.DB).Delete(ctx, id, uid); err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Post not found.")
		return
	case poststore.ErrNotAuthor:
		apiutil.Message(w, http.StatusForbidden, "You are not the author of this post.")
		return
	default:
		h.Log.Error("post Delete", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.Message(w, http.StatusOK, "Post deleted.")
}
