// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	loginstore "github.com/branchout-app/branchout/internal/app/store/logins"
	milestonestore "github.com/branchout-app/branchout/internal/app/store/milestones"
	userstore "github.com/branchout-app/branchout/internal/app/store/users"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/awards"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/branchout-app/branchout/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler authenticates accounts and starts sessions. A first sign-in also
// creates the badge ledger and awards the account-creation badge, so every
// user who has ever logged in has a ledger.
type Handler struct {
	DB       *mongo.Database
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, sessions *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Sessions: sessions, Log: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin handles POST /login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Message(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := userstore.New(h.DB).Authenticate(ctx, req.Username, req.Password)
	switch err {
	case nil:
	case userstore.ErrBadCredentials:
		apiutil.Message(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	default:
		h.Log.Error("authenticate", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	if err := h.Sessions.SignIn(w, r, auth.SessionUser{ID: user.ID.Hex(), Username: user.Username}); err != nil {
		h.Log.Error("session sign-in", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "Could not start a session.")
		return
	}

	// Best effort; a lost record never blocks the login.
	if _, err := loginstore.New(h.DB).Record(ctx, user.ID, clientIP(r)); err != nil {
		h.Log.Warn("login record", zap.Error(err))
	}

	msg := "Signed in."
	milestones := milestonestore.New(h.DB)
	if _, err := milestones.Get(ctx, user.ID); err == mongo.ErrNoDocuments {
		if _, err := milestones.Initialize(ctx, user.ID); err != nil && err != milestonestore.ErrAlreadyInitialized {
			h.Log.Warn("milestones initialize", zap.Error(err))
		}
		if award := awards.Grant(ctx, milestones, user.ID, models.BadgeCreatedAccount, h.Log); award != "" {
			msg = msg + " " + award
		}
	} else if err != nil {
		h.Log.Warn("milestones get", zap.Error(err))
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{
		"message": msg,
		"user":    user,
	})
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
