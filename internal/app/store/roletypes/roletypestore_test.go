package roletypestore_test

import (
	"errors"
	"testing"

	roletypestore "github.com/dalemusser/rolehub/internal/app/store/roletypes"
	"github.com/dalemusser/rolehub/internal/domain/models"
	"github.com/dalemusser/rolehub/internal/testutil"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roletypestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.RoleType{Name: "Garant", NameEN: "Guarantor"}, "u1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected ID to be generated")
	}
	if created.CreatedBy == nil || *created.CreatedBy != "u1" {
		t.Errorf("CreatedBy: got %v", created.CreatedBy)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Garant" || got.NameEN != "Guarantor" {
		t.Errorf("unexpected role type: %+v", got)
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roletypestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.RoleType{Name: "Reviewer"}, ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.RoleType{Name: "REVIEWER"}, "")
	if !errors.Is(err, roletypestore.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := roletypestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, roletypestore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ResolveReference(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := roletypestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rt := fixtures.CreateRoleType(ctx, "Dean")

	got, err := store.ResolveReference(ctx, rt.ID)
	if err != nil {
		t.Fatalf("ResolveReference failed: %v", err)
	}
	if got == nil || got.ID != rt.ID {
		t.Errorf("got %+v, want %s", got, rt.ID)
	}

	got, err = store.ResolveReference(ctx, "missing")
	if err != nil {
		t.Fatalf("ResolveReference(missing) failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing role type, got %+v", got)
	}
}

func TestStore_ListAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := roletypestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b := fixtures.CreateRoleType(ctx, "Bravo")
	fixtures.CreateRoleType(ctx, "alpha")

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 || list[0].Name != "alpha" || list[1].Name != "Bravo" {
		t.Errorf("unexpected order: %+v", list)
	}

	n, err := store.Delete(ctx, b.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
}
