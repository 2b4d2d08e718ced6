// internal/app/features/groupcategories/categories.go
package groupcategories

import (
	"errors"
	"net/http"
	"strings"

	groupcategorystore "github.com/dalemusser/rolehub/internal/app/store/groupcategories"
	"github.com/dalemusser/rolehub/internal/app/system/auth"
	"github.com/dalemusser/rolehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/rolehub/internal/app/system/httpapi"
	"github.com/dalemusser/rolehub/internal/app/system/timeouts"
	"github.com/dalemusser/rolehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

type createRequest struct {
	Name       string  `json:"name"`
	NameEN     string  `json:"name_en"`
	RBACObject *string `json:"rbacobject"`
}

// updateRequest fields left out of the body are not changed.
type updateRequest struct {
	Name       *string `json:"name"`
	NameEN     *string `json:"name_en"`
	RBACObject *string `json:"rbacobject"`
}

func actorID(r *http.Request) string {
	if id, ok := auth.CurrentUser(r); ok {
		return id.ID
	}
	return ""
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := htmlsanitize.PlainText(*s)
	return &v
}

// ServeList handles GET /group-categories.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list group categories")
	defer cancel()

	cats, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing group categories", err, "A database error occurred.")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"group_categories": cats})
}

// ServeOne handles GET /group-categories/{id}.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get group category")
	defer cancel()

	gc, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	if errors.Is(err, groupcategorystore.ErrNotFound) {
		httpapi.WriteNotFound(w, "Group category not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading group category", err, "A database error occurred.")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, gc)
}

// HandleCreate handles POST /group-categories.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid create group category body", err, "Invalid JSON body.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create group category")
	defer cancel()

	actor := actorID(r)
	gc, err := h.Store.Create(ctx, models.GroupCategory{
		Name:       htmlsanitize.PlainText(req.Name),
		NameEN:     htmlsanitize.PlainText(req.NameEN),
		RBACObject: req.RBACObject,
	}, actor)
	if errors.Is(err, groupcategorystore.ErrDuplicateName) {
		httpapi.WriteConflict(w, err.Error())
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error creating group category", err, "A database error occurred.")
		return
	}

	h.Audit.GroupCategoryCreated(ctx, r, actor, gc.ID, gc.Name)
	httpapi.WriteJSON(w, http.StatusCreated, gc)
}

// HandleUpdate handles PATCH /group-categories/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid update group category body", err, "Invalid JSON body.")
		return
	}

	var changed []string
	if req.Name != nil {
		changed = append(changed, "name")
	}
	if req.NameEN != nil {
		changed = append(changed, "name_en")
	}
	if req.RBACObject != nil {
		changed = append(changed, "rbacobject")
	}
	if len(changed) == 0 {
		httpapi.WriteBadRequest(w, "nothing to update")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update group category")
	defer cancel()

	actor := actorID(r)
	gc, err := h.Store.Update(ctx, id, groupcategorystore.Update{
		Name:       sanitizePtr(req.Name),
		NameEN:     sanitizePtr(req.NameEN),
		RBACObject: req.RBACObject,
	}, actor)
	switch {
	case errors.Is(err, groupcategorystore.ErrNotFound):
		httpapi.WriteNotFound(w, "Group category not found.")
		return
	case errors.Is(err, groupcategorystore.ErrDuplicateName):
		httpapi.WriteConflict(w, err.Error())
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "database error updating group category", err, "A database error occurred.")
		return
	}

	h.Audit.GroupCategoryUpdated(ctx, r, actor, gc.ID, strings.Join(changed, ","))
	httpapi.WriteJSON(w, http.StatusOK, gc)
}

// HandleDelete handles DELETE /group-categories/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete group category")
	defer cancel()

	n, err := h.Store.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error deleting group category", err, "A database error occurred.")
		return
	}
	if n == 0 {
		httpapi.WriteNotFound(w, "Group category not found.")
		return
	}

	h.Audit.GroupCategoryDeleted(ctx, r, actorID(r), id)
	w.WriteHeader(http.StatusNoContent)
}
