// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleRegister)
	r.Get("/", h.HandleList)
	r.Get("/{username}", h.HandleGetByUsername)

	return r
}
