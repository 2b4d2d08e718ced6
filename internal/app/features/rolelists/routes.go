// internal/app/features/rolelists/routes.go
package rolelists

import (
	"github.com/dalemusser/rolehub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /role-type-lists.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authz.Require(authz.OnlyForAuthenticated))

		pr.Get("/", h.ServeLists)
		pr.Post("/", h.HandleCreateList)
		pr.Get("/{listID}", h.ServeList)

		// membership
		pr.Get("/{listID}/role-types", h.ServeRoleTypes)
		pr.Post("/{listID}/role-types/{typeID}", h.HandleAdd)
		pr.Delete("/{listID}/role-types/{typeID}", h.HandleRemove)
	})

	return r
}
