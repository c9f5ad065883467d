// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler ends sessions.
type Handler struct {
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

func NewHandler(sessions *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sessions, Log: logger}
}

// HandleLogout handles POST /logout. Signing out an unauthenticated
// session is a no-op, not an error.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Error("session sign-out", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "Could not end the session.")
		return
	}
	apiutil.Message(w, http.StatusOK, "Signed out.")
}
