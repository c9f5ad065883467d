// internal/app/features/accounts/list.go
package accounts

import (
	"context"
	"net/http"

	userstore "github.com/branchout-app/branchout/internal/app/store/users"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/branchout-app/branchout/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleList returns every account, sorted by username.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := userstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("user List", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	apiutil.JSON(w, http.StatusOK, map[string]any{"users": users})
}

// HandleGetByUsername looks up one account, case-insensitively.
func (h *Handler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := userstore.New(h.DB).GetByUsername(ctx, chi.URLParam(r, "username"))
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "User not found.")
		return
	default:
		h.Log.Error("user GetByUsername", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{"user": user})
}
