// internal/app/features/roletypes/handler.go
package roletypes

import (
	"context"
	"errors"
	"net/http"
	"strings"

	roletypestore "github.com/dalemusser/rolehub/internal/app/store/roletypes"
	"github.com/dalemusser/rolehub/internal/app/system/auditlog"
	"github.com/dalemusser/rolehub/internal/app/system/auth"
	"github.com/dalemusser/rolehub/internal/app/system/authz"
	"github.com/dalemusser/rolehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/rolehub/internal/app/system/httpapi"
	"github.com/dalemusser/rolehub/internal/app/system/timeouts"
	"github.com/dalemusser/rolehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TypeStore is the part of the role type store the handler uses.
type TypeStore interface {
	List(ctx context.Context) ([]models.RoleType, error)
	GetByID(ctx context.Context, id string) (models.RoleType, error)
	Create(ctx context.Context, rt models.RoleType, actorID string) (models.RoleType, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// MembershipCleaner removes a role type from every list.
type MembershipCleaner interface {
	DeleteByType(ctx context.Context, typeID string) (int64, error)
}

type Handler struct {
	Types       TypeStore
	Memberships MembershipCleaner
	Audit       *auditlog.Logger
	ErrLog      *httpapi.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(types TypeStore, memberships MembershipCleaner, audit *auditlog.Logger, errLog *httpapi.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Types:       types,
		Memberships: memberships,
		Audit:       audit,
		ErrLog:      errLog,
		Log:         logger,
	}
}

// Routes is mounted under /role-types.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authz.Require(authz.OnlyForAuthenticated))

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeOne)
	r.Delete("/{id}", h.HandleDelete)

	return r
}

type createRequest struct {
	Name       string  `json:"name"`
	NameEN     string  `json:"name_en"`
	CategoryID *string `json:"category_id"`
}

// ServeList handles GET /role-types.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list role types")
	defer cancel()

	rts, err := h.Types.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing role types", err, "A database error occurred.")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"role_types": rts})
}

// ServeOne handles GET /role-types/{id}.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get role type")
	defer cancel()

	rt, err := h.Types.GetByID(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, roletypestore.ErrNotFound) {
		httpapi.WriteNotFound(w, "Role type not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading role type", err, "A database error occurred.")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rt)
}

// HandleCreate handles POST /role-types.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid create role type body", err, "Invalid JSON body.")
		return
	}
	name := htmlsanitize.PlainText(req.Name)
	if strings.TrimSpace(name) == "" {
		httpapi.WriteBadRequest(w, "name is required")
		return
	}

	var actorID string
	if id, ok := auth.CurrentUser(r); ok {
		actorID = id.ID
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create role type")
	defer cancel()

	rt, err := h.Types.Create(ctx, models.RoleType{
		Name:       name,
		NameEN:     htmlsanitize.PlainText(req.NameEN),
		CategoryID: req.CategoryID,
	}, actorID)
	if errors.Is(err, roletypestore.ErrDuplicateName) {
		httpapi.WriteConflict(w, err.Error())
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error creating role type", err, "A database error occurred.")
		return
	}

	h.Audit.RoleTypeCreated(ctx, r, actorID, rt.ID, rt.Name)
	httpapi.WriteJSON(w, http.StatusCreated, rt)
}

// HandleDelete handles DELETE /role-types/{id}. The role type is first
// removed from every list it belongs to, so a failure part way leaves the
// role type in place rather than memberships pointing at nothing.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete role type")
	defer cancel()

	if _, err := h.Types.GetByID(ctx, id); err != nil {
		if errors.Is(err, roletypestore.ErrNotFound) {
			httpapi.WriteNotFound(w, "Role type not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "database error loading role type", err, "A database error occurred.")
		return
	}

	removed, err := h.Memberships.DeleteByType(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error removing role type from lists", err, "A database error occurred.")
		return
	}

	n, err := h.Types.Delete(ctx, id)
	if err != nil {
		h.Log.Error("role type delete failed after its memberships were removed",
			zap.String("type_id", id),
			zap.Int64("memberships_removed", removed),
			zap.Error(err))
		h.ErrLog.LogServerError(w, r, "database error deleting role type", err, "A database error occurred.")
		return
	}
	if n == 0 {
		// deleted concurrently
		httpapi.WriteNotFound(w, "Role type not found.")
		return
	}
	h.Log.Info("role type deleted",
		zap.String("type_id", id),
		zap.Int64("memberships_removed", removed))

	w.WriteHeader(http.StatusNoContent)
}
