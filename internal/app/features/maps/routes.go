// internal/app/features/maps/routes.go
package maps

import (
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.HandleGet)
	r.Post("/", h.HandleSet)
	r.Put("/", h.HandleUpdate)
	r.Delete("/", h.HandleDelete)
	r.Get("/nearby", h.HandleNearby)

	return r
}
