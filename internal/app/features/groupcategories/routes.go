// internal/app/features/groupcategories/routes.go
package groupcategories

import (
	"github.com/dalemusser/rolehub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /group-categories.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authz.Require(authz.OnlyForAuthenticated))

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}", h.ServeOne)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
