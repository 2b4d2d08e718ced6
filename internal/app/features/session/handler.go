// internal/app/features/session/handler.go
package session

import (
	"net/http"

	"github.com/dalemusser/rolehub/internal/app/system/auth"
	"github.com/dalemusser/rolehub/internal/app/system/authz"
	"github.com/dalemusser/rolehub/internal/app/system/httpapi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes the caller's identity and lets a bearer-token caller
// hold it in a session cookie instead.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

// Routes is mounted under /session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeWhoAmI)
	r.With(authz.Require(authz.OnlyForAuthenticated)).Post("/", h.HandleSignIn)
	r.Delete("/", h.HandleSignOut)
	return r
}

type whoAmI struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	ID              string `json:"id,omitempty"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role,omitempty"`
}

// ServeWhoAmI handles GET /session.
//
//	{ "isAuthenticated": bool, "id": "...", "name": "...", "email": "...", "role": "..." }
func (h *Handler) ServeWhoAmI(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentUser(r)
	if !ok {
		httpapi.WriteJSON(w, http.StatusOK, whoAmI{})
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, whoAmI{
		IsAuthenticated: true,
		ID:              id.ID,
		Name:            id.Name,
		Email:           id.Email,
		Role:            id.Role,
	})
}

// HandleSignIn handles POST /session: the identity established for this
// request (normally from a bearer token) is written to the session cookie.
func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentUser(r)
	if err := h.SessionMgr.SignIn(w, r, *id); err != nil {
		h.Log.Error("session sign-in failed", zap.Error(err), zap.String("user_id", id.ID))
		httpapi.WriteInternalError(w, "Could not create session.")
		return
	}
	h.Log.Info("session created", zap.String("user_id", id.ID))
	w.WriteHeader(http.StatusNoContent)
}

// HandleSignOut handles DELETE /session. Always succeeds from the client's
// point of view; a broken cookie is replaced by an expired one.
func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("session sign-out failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}
