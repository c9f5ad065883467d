// internal/app/features/groups/routes.go
package groups

import (
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Reads are public.
	r.Get("/", h.HandleList)
	r.Get("/resource", h.HandleListResourceGroups)
	r.Get("/{id}", h.HandleGet)

	// Everything that touches a roster or a group's fields requires auth.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Post("/", h.HandleCreate)
		pr.Get("/mine", h.HandleListMine)

		pr.Post("/{id}/join", h.HandleJoin)
		pr.Post("/{id}/leave", h.HandleLeave)

		pr.Post("/{id}/resources", h.HandleAddResource)
		pr.Delete("/{id}/resources/{resourceID}", h.HandleRemoveResource)

		pr.Put("/{id}/name", h.HandleUpdateName)
		pr.Put("/{id}/description", h.HandleUpdateDescription)

		// Deletion is by name, which is unique across all groups.
		pr.Delete("/{name}", h.HandleDelete)
	})

	return r
}
