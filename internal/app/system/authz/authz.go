// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/rolehub/internal/app/system/auth"
	"github.com/dalemusser/rolehub/internal/app/system/httpapi"
)

// Verdict is the outcome of a capability check.
// Status is the HTTP status to answer with when the check denies.
type Verdict struct {
	Allowed bool
	Status  int
	Reason  string
}

// Allow is the verdict of a passing check.
var Allow = Verdict{Allowed: true}

// Capability decides whether the caller may run an operation.
// id is nil for anonymous callers.
type Capability func(id *auth.Identity) Verdict

// OnlyForAuthenticated passes any caller with an identity.
func OnlyForAuthenticated(id *auth.Identity) Verdict {
	if id == nil || id.ID == "" {
		return Verdict{Status: http.StatusUnauthorized, Reason: "authentication required"}
	}
	return Allow
}

// Check evaluates caps in order against the request's identity and
// returns the first denying verdict, or Allow.
func Check(r *http.Request, caps ...Capability) Verdict {
	id, _ := auth.CurrentUser(r)
	for _, c := range caps {
		if v := c(id); !v.Allowed {
			return v
		}
	}
	return Allow
}

// Require is middleware composing caps in front of a handler.
// Denied requests get a JSON error with the verdict's status.
func Require(caps ...Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := Check(r, caps...)
			if !v.Allowed {
				switch v.Status {
				case http.StatusForbidden:
					httpapi.WriteForbidden(w, v.Reason)
				default:
					httpapi.WriteUnauthorized(w, v.Reason)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
