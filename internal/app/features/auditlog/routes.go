// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/rolehub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit log under /audit-events. Admins only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authz.Require(authz.HasAnyRole("admin")))

		pr.Get("/", h.ServeList)
	})

	return r
}
