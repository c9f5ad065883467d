// internal/app/features/comments/edit.go
package comments

import (
	"context"
	"encoding/json"
	"net/http"

	commentstore "github.com/branchout-app/branchout/internal/app/store/comments"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/htmlsanitize"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type updateCommentRequest struct {
	Content string `json:"content"`
}

// HandleUpdate rewrites the content of the caller's own comment.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.Message(w, http.StatusNotFound, "Comment not found.")
		return
	}

	var req updateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Message(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	req.Content = htmlsanitize.Sanitize(req.Content)
	if req.Content == "" {
		apiutil.Message(w, http.StatusUnprocessableEntity, "Comment content is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	comment, err := commentstore.New(h.DB).UpdateContent(ctx, id, uid, req.Content)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Comment not found.")
		return
	case commentstore.ErrNotAuthor:
		apiutil.Message(w, http.StatusForbidden, "You are not the author of this comment.")
		return
	default:
		h.Log.Error("comment UpdateContent", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{
		"message": "Comment updated.",
		"comment": comment,
	})
}

// HandleDelete removes the caller's own comment.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.Message(w, http.StatusNotFound, "Comment not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	switch err := commentstore.New(h.DB).Delete(ctx, id, uid); err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Comment not found.")
		return
	case commentstore.ErrNotAuthor:
		apiutil.Message(w, http.StatusForbidden, "You are not the author of this comment.")
		return
	default:
		h.Log.Error("comment Delete", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.Message(w, http.StatusOK, "Comment deleted.")
}
