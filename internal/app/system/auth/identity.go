package auth

import (
	"context"
	"net/http"
)

// Identity is the authenticated caller of a request.
// ID is the user id stamped into createdby/changedby fields.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the identity stored in ctx and a found flag.
// An identity without an ID is treated as absent.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	if !ok || id == nil || id.ID == "" {
		return nil, false
	}
	return id, true
}

// CurrentUser returns the identity attached to r & “found?” flag.
func CurrentUser(r *http.Request) (*Identity, bool) {
	return FromContext(r.Context())
}

// WithTestUser injects id into the request context, bypassing the
// session and token sources. Used by handler tests.
func WithTestUser(r *http.Request, id *Identity) *http.Request {
	return r.WithContext(WithIdentity(r.Context(), id))
}
