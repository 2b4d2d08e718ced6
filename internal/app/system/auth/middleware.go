package auth

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Loader attaches the caller's identity to the request context.
// A bearer token takes precedence over the session cookie. Either source
// may be nil. Requests without a valid identity pass through unchanged;
// rejecting them is the capability check's job.
type Loader struct {
	Sessions *SessionManager
	Tokens   *TokenVerifier
	Log      *zap.Logger
}

// LoadIdentity is the global middleware that fills the identity.
func (l *Loader) LoadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := l.resolve(r); ok {
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Loader) resolve(r *http.Request) (*Identity, bool) {
	if token := bearerToken(r); token != "" && l.Tokens != nil {
		id, err := l.Tokens.Verify(token)
		if err == nil {
			return id, true
		}
		l.Log.Debug("bearer token rejected", zap.Error(err))
		return nil, false
	}
	if l.Sessions != nil {
		return l.Sessions.Identity(r)
	}
	return nil, false
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
