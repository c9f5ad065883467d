// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"

	groupstore "github.com/branchout-app/branchout/internal/app/store/groups"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/branchout-app/branchout/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleList returns every group, newest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := groupstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("group List", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}
	h.respondGroups(w, groups)
}

// HandleListResourceGroups returns only resource groups.
func (h *Handler) HandleListResourceGroups(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := groupstore.New(h.DB).ListResourceGroups(ctx)
	if err != nil {
		h.Log.Error("group ListResourceGroups", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}
	h.respondGroups(w, groups)
}

// HandleListMine returns groups the signed-in user owns or is a member of.
func (h *Handler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	groups, err := groupstore.New(h.DB).ListForUser(ctx, uid)
	if err != nil {
		h.Log.Error("group ListForUser", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}
	h.respondGroups(w, groups)
}

// HandleGet returns one group by id.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apiutil.Message(w, http.StatusNotFound, "Group not found.")
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

	apiutil.JSON(w, http.StatusOK, map[string]any{"group": group})
}

func (h *Handler) respondGroups(w http.ResponseWriter, groups []models.Group) {
	if groups == nil {
		groups = []models.Group{}
	}
	apiutil.JSON(w, http.StatusOK, map[string]any{"groups": groups})
}
