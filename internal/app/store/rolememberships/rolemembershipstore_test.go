package rolemembershipstore_test

import (
	"testing"
	"time"

	rolemembershipstore "github.com/dalemusser/rolehub/internal/app/store/rolememberships"
	"github.com/dalemusser/rolehub/internal/domain/models"
	"github.com/dalemusser/rolehub/internal/testutil"
)

func TestStore_InsertAndFilterByList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rolemembershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec, err := store.Insert(ctx, models.RoleTypeMembership{ListID: "L1", TypeID: "T1", CreatedBy: "u1"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if rec == nil {
		t.Fatal("expected inserted record, got nil")
	}
	if rec.ID == "" {
		t.Error("expected ID to be set")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, err := store.FilterByList(ctx, "L1")
	if err != nil {
		t.Fatalf("FilterByList failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 membership, got %d", len(got))
	}
	if got[0].TypeID != "T1" || got[0].CreatedBy != "u1" {
		t.Errorf("unexpected record: %+v", got[0])
	}
}

func TestStore_FilterByList_EmptyIsNonNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rolemembershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := store.FilterByList(ctx, "nothing-here")
	if err != nil {
		t.Fatalf("FilterByList failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestStore_FilterByList_InsertionOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rolemembershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().UTC().Add(-time.Hour)
	ids := []string{"T3", "T1", "T2"}
	for i, id := range ids {
		_, err := store.Insert(ctx, models.RoleTypeMembership{
			ListID:    "L1",
			TypeID:    id,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Insert %s failed: %v", id, err)
		}
	}
	// a member of another list must not show up
	if _, err := store.Insert(ctx, models.RoleTypeMembership{ListID: "L2", TypeID: "T9"}); err != nil {
		t.Fatalf("Insert L2 failed: %v", err)
	}

	got, err := store.FilterByList(ctx, "L1")
	if err != nil {
		t.Fatalf("FilterByList failed: %v", err)
	}
	if len(got) != len(ids) {
		t.Fatalf("expected %d memberships, got %d", len(ids), len(got))
	}
	for i, m := range got {
		if m.TypeID != ids[i] {
			t.Errorf("position %d: got %s, want %s", i, m.TypeID, ids[i])
		}
	}
}

func TestStore_Insert_DuplicateReturnsNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rolemembershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Insert(ctx, models.RoleTypeMembership{ListID: "L1", TypeID: "T1"}); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}

	rec, err := store.Insert(ctx, models.RoleTypeMembership{ListID: "L1", TypeID: "T1"})
	if err != nil {
		t.Fatalf("duplicate Insert should not error, got %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil record for duplicate, got %+v", rec)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := rolemembershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec, err := store.Insert(ctx, models.RoleTypeMembership{ListID: "L1", TypeID: "T1"})
	if err != nil || rec == nil {
		t.Fatalf("Insert failed: rec=%v err=%v", rec, err)
	}

	deleted, err := store.Delete(ctx, *rec)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected Delete to report a removal")
	}

	deleted, err = store.Delete(ctx, *rec)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted {
		t.Error("second Delete should report nothing removed")
	}
}

func TestStore_CountAndBulkDeletes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	store := rolemembershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateMembership(ctx, "L1", "T1")
	fixtures.CreateMembership(ctx, "L1", "T2")
	fixtures.CreateMembership(ctx, "L2", "T1")

	n, err := store.CountByList(ctx, "L1")
	if err != nil || n != 2 {
		t.Fatalf("CountByList: n=%d err=%v", n, err)
	}

	n, err = store.DeleteByType(ctx, "T1")
	if err != nil || n != 2 {
		t.Fatalf("DeleteByType: n=%d err=%v", n, err)
	}

	n, err = store.DeleteByList(ctx, "L1")
	if err != nil || n != 1 {
		t.Fatalf("DeleteByList: n=%d err=%v", n, err)
	}
}
