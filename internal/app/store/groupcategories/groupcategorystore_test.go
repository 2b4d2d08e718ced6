package groupcategorystore_test

import (
	"errors"
	"testing"
	"time"

	groupcategorystore "github.com/dalemusser/rolehub/internal/app/store/groupcategories"
	"github.com/dalemusser/rolehub/internal/domain/models"
	"github.com/dalemusser/rolehub/internal/testutil"
)

func ptr(s string) *string { return &s }

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupcategorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	gc, err := store.Create(ctx, models.GroupCategory{Name: "Fakulta", NameEN: "Faculty"}, "u1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if gc.ID == "" {
		t.Error("expected ID to be generated")
	}
	if gc.Created.IsZero() || !gc.Created.Equal(gc.LastChange) {
		t.Errorf("created/lastchange should both be set to insert time: %v %v", gc.Created, gc.LastChange)
	}
	if gc.CreatedBy == nil || *gc.CreatedBy != "u1" {
		t.Errorf("CreatedBy: got %v", gc.CreatedBy)
	}
	if gc.ChangedBy != nil {
		t.Errorf("ChangedBy should be empty on create, got %v", *gc.ChangedBy)
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupcategorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.GroupCategory{Name: "Department"}, ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.GroupCategory{Name: "department"}, "")
	if !errors.Is(err, groupcategorystore.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestStore_Create_UnnamedNotUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupcategorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if _, err := store.Create(ctx, models.GroupCategory{}, ""); err != nil {
			t.Fatalf("Create unnamed #%d failed: %v", i, err)
		}
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := groupcategorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orig := fixtures.CreateGroupCategory(ctx, "Institute")
	time.Sleep(5 * time.Millisecond)

	got, err := store.Update(ctx, orig.ID, groupcategorystore.Update{
		Name:       ptr("Institute of Physics"),
		RBACObject: ptr("rbac-1"),
	}, "editor")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.ID != orig.ID {
		t.Errorf("ID changed: %s -> %s", orig.ID, got.ID)
	}
	if got.Name != "Institute of Physics" {
		t.Errorf("Name: got %q", got.Name)
	}
	if got.RBACObject == nil || *got.RBACObject != "rbac-1" {
		t.Errorf("RBACObject: got %v", got.RBACObject)
	}
	if got.ChangedBy == nil || *got.ChangedBy != "editor" {
		t.Errorf("ChangedBy: got %v", got.ChangedBy)
	}
	if !got.LastChange.After(orig.LastChange) {
		t.Errorf("lastchange not refreshed: %v <= %v", got.LastChange, orig.LastChange)
	}
	if !got.Created.Equal(orig.Created.Truncate(time.Millisecond)) {
		t.Errorf("created should not change: %v vs %v", got.Created, orig.Created)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupcategorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Update(ctx, "missing", groupcategorystore.Update{Name: ptr("x")}, "")
	if !errors.Is(err, groupcategorystore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := groupcategorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	z := fixtures.CreateGroupCategory(ctx, "Zeta")
	fixtures.CreateGroupCategory(ctx, "alpha")

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].Name != "alpha" {
		t.Errorf("unexpected list: %+v", list)
	}

	n, err := store.Delete(ctx, z.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	if _, err := store.GetByID(ctx, z.ID); !errors.Is(err, groupcategorystore.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
