// internal/app/features/login/history.go
package login

import (
	"context"
	"net/http"

	loginstore "github.com/branchout-app/branchout/internal/app/store/logins"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/branchout-app/branchout/internal/domain/models"
	"go.uber.org/zap"
)

// HandleHistory returns the caller's sign-in events, newest first, with a
// total count.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := loginstore.New(h.DB)
	recs, err := store.ListByUser(ctx, uid)
	if err != nil {
		h.Log.Error("login ListByUser", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}
	count, err := store.CountByUser(ctx, uid)
	if err != nil {
		h.Log.Error("login CountByUser", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	if recs == nil {
		recs = []models.LoginRecord{}
	}
	apiutil.JSON(w, http.StatusOK, map[string]any{
		"count":  count,
		"logins": recs,
	})
}
