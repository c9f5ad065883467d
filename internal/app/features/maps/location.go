// internal/app/features/maps/location.go
package maps

import (
	"context"
	"encoding/json"
	"net/http"

	locationstore "github.com/branchout-app/branchout/internal/app/store/locations"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/normalize"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type locationRequest struct {
	City  string `json:"city"`
	State string `json:"state"`
}

func (req *locationRequest) validate() bool {
	req.City = normalize.Name(req.City)
	req.State = normalize.Name(req.State)
	return req.City != "" && req.State != ""
}

// HandleGet returns the caller's stored location.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	loc, err := locationstore.New(h.DB).GetByUser(ctx, uid)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "No location set.")
		return
	default:
		h.Log.Error("location GetByUser", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{"location": loc})
}

// HandleSet records the caller's location for the first time.
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}

	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Message(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if !req.validate() {
		apiutil.Message(w, http.StatusUnprocessableEntity, "City and state are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	loc, err := locationstore.New(h.DB).Set(ctx, uid, req.City, req.State)
	switch err {
	case nil:
	case locationstore.ErrAlreadySet:
		apiutil.Message(w, http.StatusConflict, "Location already set; update it instead.")
		return
	default:
		h.Log.Error("location Set", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusCreated, map[string]any{
		"message":  "Location saved.",
		"location": loc,
	})
}

// HandleUpdate replaces the caller's location.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}

	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Message(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if !req.validate() {
		apiutil.Message(w, http.StatusUnprocessableEntity, "City and state are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	loc, err := locationstore.New(h.DB).Update(ctx, uid, req.City, req.State)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "No location set.")
		return
	default:
		h.Log.Error("location Update", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusOK, map[string]any{
		"message":  "Location updated.",
		"location": loc,
	})
}

// HandleDelete removes the caller's location.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := locationstore.New(h.DB).Delete(ctx, uid)
	switch err {
	case nil:
	case mongo.ErrNoDocuments:
		apiutil.Message(w, http.StatusNotFound, "No location set.")
		return
	default:
		h.Log.Error("location Delete", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.Message(w, http.StatusOK, "Location deleted.")
}
