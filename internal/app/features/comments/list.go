// internal/app/features/comments/list.go
package comments

import (
	"context"
	"net/http"

	commentstore "github.com/branchout-app/branchout/internal/app/store/comments"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/branchout-app/branchout/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleList returns comments, optionally filtered by ?post= or ?author=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := commentstore.New(h.DB)

	var (
		list []models.Comment
		err  error
	)
	switch {
	case r.URL.Query().Get("post") != "":
		var postID primitive.ObjectID
		postID, err = primitive.ObjectIDFromHex(r.URL.Query().Get("post"))
		if err != nil {
			apiutil.Message(w, http.StatusUnprocessableEntity, "Invalid post id.")
			return
		}
		list, err = store.ListByPost(ctx, postID)
	case r.URL.Query().Get("author") != "":
		var author primitive.ObjectID
		author, err = primitive.ObjectIDFromHex(r.URL.Query().Get("author"))
		if err != nil {
			apiutil.Message(w, http.StatusUnprocessableEntity, "Invalid author id.")
			return
		}
		list, err = store.ListByAuthor(ctx, author)
	default:
		list, err = store.List(ctx)
	}
	if err != nil {
		h.Log.Error("comment list", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	if list == nil {
		list = []models.Comment{}
	}
	apiutil.JSON(w, http.StatusOK, map[string]any{"comments": list})
}

// HandleGet returns one comment by id.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.Message(w, http.StatusNotFound, "Comment not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	comment, err := commentstore.New(h.DB).GetByID(ctx, id)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Comment not found.")
		return
	default:
		h.Log.Error("comment GetByID", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{"comment": comment})
}
