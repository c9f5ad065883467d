// internal/app/features/accounts/register.go
package accounts

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/branchout-app/branchout/internal/app/store/users"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/normalize"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleRegister creates an account. The badge ledger is not created here;
// it is initialized on the account's first login.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Message(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if normalize.Param(req.Username) == "" || req.Password == "" {
		apiutil.Message(w, http.StatusUnprocessableEntity, "Username and password are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := userstore.New(h.DB).Create(ctx, req.Username, req.Password)
	switch err {
	case nil:
	case userstore.ErrDuplicateUsername:
		apiutil.Message(w, http.StatusConflict, "This username is taken.")
		return
	default:
		h.Log.Error("user Create", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusCreated, map[string]any{
		"message": "Account created.",
		"user":    user,
	})
}
