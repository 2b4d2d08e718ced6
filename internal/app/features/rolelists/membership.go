// internal/app/features/rolelists/membership.go
package rolelists

import (
	"errors"
	"net/http"

	rolelistsvc "github.com/dalemusser/rolehub/internal/app/service/rolelists"
	"github.com/dalemusser/rolehub/internal/app/system/auth"
	"github.com/dalemusser/rolehub/internal/app/system/httpapi"
	"github.com/dalemusser/rolehub/internal/app/system/timeouts"
	"github.com/dalemusser/rolehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// membershipResponse is the body of add/remove. RoleTypes is present only
// when the caller asked for ?expand=role_types.
type membershipResponse struct {
	ID        string             `json:"id"`
	Msg       string             `json:"msg"`
	RoleTypes *[]models.RoleType `json:"role_types,omitempty"`
}

type roleTypesResponse struct {
	ID        string            `json:"id"`
	RoleTypes []models.RoleType `json:"role_types"`
}

func actorID(r *http.Request) string {
	if id, ok := auth.CurrentUser(r); ok {
		return id.ID
	}
	return ""
}

func wantsRoleTypes(r *http.Request) bool {
	return r.URL.Query().Get("expand") == "role_types"
}

// ServeRoleTypes handles GET /role-type-lists/{listID}/role-types.
// An unknown or empty list answers an empty array.
func (h *Handler) ServeRoleTypes(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Resolve(), h.Log, "list role types")
	defer cancel()

	rts, err := h.Service.ListByID(ctx, listID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "error resolving role types of list", err, "A database error occurred.")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, roleTypesResponse{ID: listID, RoleTypes: rts})
}

// HandleAdd handles POST /role-type-lists/{listID}/role-types/{typeID}.
// Answers 200 with msg "ok" or "fail"; storage faults answer 500.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")
	typeID := chi.URLParam(r, "typeID")

	actor, ok := auth.CurrentUser(r)
	if !ok {
		httpapi.WriteUnauthorized(w, "authentication required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "add role type to list")
	defer cancel()

	res, err := h.Service.Add(ctx, listID, typeID, actor)
	if errors.Is(err, rolelistsvc.ErrNoIdentity) {
		httpapi.WriteUnauthorized(w, "authentication required")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error adding role type to list", err, "A database error occurred.")
		return
	}

	h.Audit.RoleTypeAddedToList(ctx, r, actor.ID, listID, typeID, res.Msg)
	h.Log.Debug("role type add",
		zap.String("list_id", listID),
		zap.String("type_id", typeID),
		zap.String("msg", res.Msg))

	h.writeResult(w, r, res)
}

// HandleRemove handles DELETE /role-type-lists/{listID}/role-types/{typeID}.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")
	typeID := chi.URLParam(r, "typeID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "remove role type from list")
	defer cancel()

	res, err := h.Service.Remove(ctx, listID, typeID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error removing role type from list", err, "A database error occurred.")
		return
	}

	h.Audit.RoleTypeRemovedFromList(ctx, r, actorID(r), listID, typeID, res.Msg)
	h.writeResult(w, r, res)
}

// writeResult answers 200 with the add/remove result. The mutation is
// already committed here, so a failed ?expand=role_types only drops the
// role_types field and is logged.
func (h *Handler) writeResult(w http.ResponseWriter, r *http.Request, res rolelistsvc.Result) {
	out := membershipResponse{ID: res.ID, Msg: res.Msg}
	if wantsRoleTypes(r) {
		ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Resolve(), h.Log, "expand role types")
		defer cancel()

		rts, err := h.Service.ListByID(ctx, res.ID)
		if err != nil {
			h.Log.Warn("expand role_types failed after membership change",
				zap.String("list_id", res.ID),
				zap.String("msg", res.Msg),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Error(err))
		} else {
			out.RoleTypes = &rts
		}
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}
