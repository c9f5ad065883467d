// internal/app/features/posts/list.go
package posts

import (
	"context"
	"net/http"

	poststore "github.com/branchout-app/branchout/internal/app/store/posts"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/branchout-app/branchout/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleList returns posts, optionally filtered by ?group= or ?author=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := poststore.New(h.DB)

	var (
		list []models.Post
		err  error
	)
	switch {
	case r.URL.Query().Get("group") != "":
		var groupID primitive.ObjectID
		groupID, err = primitive.ObjectIDFromHex(r.URL.Query().Get("group"))
		if err != nil {
			apiutil.Message(w, http.StatusUnprocessableEntity, "Invalid group id.")
			return
		}
		list, err = store.ListByGroup(ctx, groupID)
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
		h.Log.Error("post list", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	if list == nil {
		list = []models.Post{}
	}
	apiutil.JSON(w, http.StatusOK, map[string]any{"posts": list})
}

// HandleGet returns one post by id.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.Message(w, http.StatusNotFound, "Post not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	post, err := poststore.New(h.DB).GetByID(ctx, id)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "Post not found.")
		return
	default:
		h.Log.Error("post GetByID", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{"post": post})
}
