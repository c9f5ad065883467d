// internal/app/features/milestones/handler.go
package milestones

import (
	"context"
	"net/http"

	milestonestore "github.com/branchout-app/branchout/internal/app/store/milestones"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the signed-in user's badge ledger.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// HandleGet returns the caller's ledger. No ledger yet is a 404; it means
// the account has never signed in.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	entry, err := milestonestore.New(h.DB).Get(ctx, uid)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "No milestones ledger for this account yet.")
		return
	default:
		h.Log.Error("milestones Get", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{"badges": entry.Badges})
}

// HandleInitialize creates the caller's ledger explicitly. Normally the
// ledger appears on first login; this exists for accounts migrated in from
// elsewhere. A second call is a conflict.
func (h *Handler) HandleInitialize(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	entry, err := milestonestore.New(h.DB).Initialize(ctx, uid)
	switch err {
	case nil:
	case milestonestore.ErrAlreadyInitialized:
		apiutil.Message(w, http.StatusConflict, "Milestones already initialized.")
		return
	default:
		h.Log.Error("milestones Initialize", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusCreated, map[string]any{
		"message": "Milestones initialized.",
		"badges":  entry.Badges,
	})
}
