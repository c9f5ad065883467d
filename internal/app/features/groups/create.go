// internal/app/features/groups/create.go
package groups

import (
	"context"
	"encoding/json"
	"net/http"

	groupstore "github.com/branchout-app/branchout/internal/app/store/groups"
	milestonestore "github.com/branchout-app/branchout/internal/app/store/milestones"
	"github.com/branchout-app/branchout/internal/app/system/apiutil"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/branchout-app/branchout/internal/app/system/gates"
	"github.com/branchout-app/branchout/internal/app/system/htmlsanitize"
	"github.com/branchout-app/branchout/internal/app/system/normalize"
	"github.com/branchout-app/branchout/internal/app/system/timeouts"
	"github.com/branchout-app/branchout/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Resource    bool   `json:"resource"`
}

// HandleCreate creates a group owned by the signed-in user. Community
// groups are gated on the creation badges; resource groups are not. The
// gate runs before the insert so a refused caller never consumes the name.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserObjectID(r)
	if !ok {
		apiutil.Message(w, http.StatusUnauthorized, "Sign in required.")
		return
	}

	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiutil.Message(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	req.Name = normalize.Name(req.Name)
	if req.Name == "" {
		apiutil.Message(w, http.StatusUnprocessableEntity, "Group name is required.")
		return
	}
	req.Description = htmlsanitize.Sanitize(req.Description)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !req.Resource {
		entry, err := milestonestore.New(h.DB).Get(ctx, uid)
		var snapshot *models.MilestoneEntry
		switch err {
		case nil:
			snapshot = &entry
		case mongo.ErrNoDocuments:
			// No ledger yet: the gate sees nil and reports every badge.
		default:
			h.Log.Error("milestones Get", zap.Error(err))
			apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
			return
		}

		if missing := gates.MissingForCommunityGroup(snapshot); len(missing) > 0 {
			apiutil.Message(w, http.StatusForbidden, gates.RefusalMessage(missing))
			return
		}
	}

	group, err := groupstore.New(h.DB).Create(ctx, uid, req.Name, req.Description, req.Resource)
	switch err {
	case nil:
	case groupstore.ErrDuplicateGroupName:
		apiutil.Message(w, http.StatusConflict, "A group with this name already exists.")
		return
	default:
		h.Log.Error("group Create", zap.Error(err))
		apiutil.Message(w, http.StatusInternalServerError, "A database error occurred.")
		return
	}

	apiutil.JSON(w, http.StatusCreated, map[string]any{
		"message": "Group created.",
		"group":   group,
	})
}
