// internal/app/system/authz/roles.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/rolehub/internal/app/system/auth"
)

// HasAnyRole returns a capability passing callers holding one of roles.
// Anonymous callers get 401, signed-in callers with another role get 403.
func HasAnyRole(roles ...string) Capability {
	set := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}
	return func(id *auth.Identity) Verdict {
		if v := OnlyForAuthenticated(id); !v.Allowed {
			return v
		}
		if _, ok := set[strings.ToLower(id.Role)]; !ok {
			return Verdict{Status: http.StatusForbidden, Reason: "role not allowed"}
		}
		return Allow
	}
}
