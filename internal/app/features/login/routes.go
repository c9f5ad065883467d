// internal/app/features/login/routes.go
package login

import (
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/history", h.HandleHistory)
	})

	return r
}
