package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/rolehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Calling it again on the same request adds to the existing route context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateRoleType inserts a role type with the given name.
func (f *Fixtures) CreateRoleType(ctx context.Context, name string) models.RoleType {
	f.t.Helper()

	now := time.Now().UTC()
	rt := models.RoleType{
		ID:         uuid.NewString(),
		Name:       name,
		NameCI:     text.Fold(name),
		Created:    now,
		LastChange: now,
	}
	if _, err := f.db.Collection("role_types").InsertOne(ctx, rt); err != nil {
		f.t.Fatalf("failed to create test role type: %v", err)
	}
	return rt
}

// CreateRoleTypeList inserts an empty role type list.
func (f *Fixtures) CreateRoleTypeList(ctx context.Context, name string) models.RoleTypeList {
	f.t.Helper()

	l := models.RoleTypeList{
		ID:      uuid.NewString(),
		Name:    name,
		NameCI:  text.Fold(name),
		Created: time.Now().UTC(),
	}
	if _, err := f.db.Collection("role_type_lists").InsertOne(ctx, l); err != nil {
		f.t.Fatalf("failed to create test role type list: %v", err)
	}
	return l
}

// CreateMembership adds typeID to listID directly, bypassing the service.
func (f *Fixtures) CreateMembership(ctx context.Context, listID, typeID string) models.RoleTypeMembership {
	f.t.Helper()

	m := models.RoleTypeMembership{
		ID:        uuid.NewString(),
		ListID:    listID,
		TypeID:    typeID,
		CreatedBy: "fixture",
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("role_type_memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// CreateGroupCategory inserts a group category with the given name.
func (f *Fixtures) CreateGroupCategory(ctx context.Context, name string) models.GroupCategory {
	f.t.Helper()

	now := time.Now().UTC()
	gc := models.GroupCategory{
		ID:         uuid.NewString(),
		Name:       name,
		NameCI:     text.Fold(name),
		Created:    now,
		LastChange: now,
	}
	if _, err := f.db.Collection("groupcategories").InsertOne(ctx, gc); err != nil {
		f.t.Fatalf("failed to create test group category: %v", err)
	}
	return gc
}
