// internal/app/features/rolelists/lists.go
package rolelists

import (
	"context"
	"errors"
	"net/http"
	"strings"

	roletypeliststore "github.com/dalemusser/rolehub/internal/app/store/roletypelists"
	"github.com/dalemusser/rolehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/rolehub/internal/app/system/httpapi"
	"github.com/dalemusser/rolehub/internal/app/system/timeouts"
	"github.com/dalemusser/rolehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

type createListRequest struct {
	Name   string `json:"name"`
	NameEN string `json:"name_en"`
}

// ServeLists handles GET /role-type-lists.
func (h *Handler) ServeLists(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list role type lists")
	defer cancel()

	lists, err := h.Lists.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing role type lists", err, "A database error occurred.")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"role_type_lists": lists})
}

// HandleCreateList handles POST /role-type-lists.
func (h *Handler) HandleCreateList(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invalid create list body", err, "Invalid JSON body.")
		return
	}
	name := htmlsanitize.PlainText(req.Name)
	if strings.TrimSpace(name) == "" {
		httpapi.WriteBadRequest(w, "name is required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create role type list")
	defer cancel()

	l, err := h.Lists.Create(ctx, models.RoleTypeList{
		Name:   name,
		NameEN: htmlsanitize.PlainText(req.NameEN),
	}, actorID(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error creating role type list", err, "A database error occurred.")
		return
	}

	h.Audit.RoleTypeListCreated(ctx, r, actorID(r), l.ID, l.Name)
	httpapi.WriteJSON(w, http.StatusCreated, l)
}

// ServeList handles GET /role-type-lists/{listID}: the list and the ids of
// its members in membership order.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "get role type list")
	defer cancel()

	l, ok := h.loadList(ctx, w, r, listID)
	if !ok {
		return
	}
	ms, err := h.Service.Memberships(ctx, listID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading memberships", err, "A database error occurred.")
		return
	}
	ids := make([]string, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.TypeID)
	}
	httpapi.WriteJSON(w, http.StatusOK, listDetail{RoleTypeList: l, RoleTypeIDs: ids})
}

type listDetail struct {
	models.RoleTypeList
	RoleTypeIDs []string `json:"role_type_ids"`
}

// loadList writes 404 or 500 itself and reports false when l is unusable.
func (h *Handler) loadList(ctx context.Context, w http.ResponseWriter, r *http.Request, id string) (models.RoleTypeList, bool) {
	l, err := h.Lists.GetByID(ctx, id)
	if errors.Is(err, roletypeliststore.ErrNotFound) {
		httpapi.WriteNotFound(w, "Role type list not found.")
		return l, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading role type list", err, "A database error occurred.")
		return l, false
	}
	return l, true
}
