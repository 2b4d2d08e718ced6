package auth

import (
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
	userName  = "user_name"
	userEmail = "user_email"
	userRole  = "user_role"
)

// ErrEmptySessionKey is returned when no session key is configured in a
// secure (production) deployment.
var ErrEmptySessionKey = errors.New("session key is empty; provide ≥32 random chars")

// SessionManager reads the caller's identity from a signed session cookie.
// The cookie is written by the sign-in service sharing the session key;
// SignIn and SignOut exist for that service and for tests.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds the cookie store.
//
// In production (secure=true) cookies are Secure + SameSite=None and an
// empty key is an error. In dev an empty key is replaced by a random one,
// which invalidates sessions on every restart.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	key := []byte(sessionKey)
	if len(key) == 0 {
		if secure {
			return nil, ErrEmptySessionKey
		}
		key = securecookie.GenerateRandomKey(32)
		logger.Warn("session key is empty; using a random key for this process")
	} else if len(key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(key)))
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	}

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// Identity returns the identity stored in the request's session, if any.
func (m *SessionManager) Identity(r *http.Request) (*Identity, bool) {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		m.log.Debug("session decode failed", zap.Error(err))
		return nil, false
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return nil, false
	}
	id := &Identity{
		ID:    getString(sess, userIDKey),
		Name:  getString(sess, userName),
		Email: getString(sess, userEmail),
		Role:  getString(sess, userRole),
	}
	if id.ID == "" {
		return nil, false
	}
	return id, true
}

// SignIn writes id into the session cookie.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, id Identity) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = id.ID
	sess.Values[userName] = id.Name
	sess.Values[userEmail] = id.Email
	sess.Values[userRole] = id.Role
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
