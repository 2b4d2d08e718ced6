package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/rolehub/internal/app/store/audit"
	"github.com/dalemusser/rolehub/internal/testutil"
)

func TestStore_Log(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	event := audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventRoleTypeAddedToList,
		ActorID:   "actor-1",
		TargetID:  "list-1",
		IP:        "192.168.1.1",
		UserAgent: "TestBrowser/1.0",
		Success:   true,
	}

	if err := store.Log(ctx, event); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := store.GetByTarget(ctx, "list-1", 10)
	if err != nil {
		t.Fatalf("GetByTarget failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID == "" {
		t.Error("expected ID to be generated")
	}
	if events[0].Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestStore_Query_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().UTC().Add(-time.Hour)
	events := []audit.Event{
		{Category: audit.CategoryAdmin, EventType: audit.EventRoleTypeAddedToList, ActorID: "a1", TargetID: "l1", Success: true, Timestamp: base},
		{Category: audit.CategoryAdmin, EventType: audit.EventRoleTypeRemovedFromList, ActorID: "a1", TargetID: "l1", Success: true, Timestamp: base.Add(time.Minute)},
		{Category: audit.CategoryAdmin, EventType: audit.EventRoleTypeAddedToList, ActorID: "a2", TargetID: "l2", Success: false, Timestamp: base.Add(2 * time.Minute)},
	}
	for _, e := range events {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	got, err := store.Query(ctx, audit.QueryFilter{EventType: audit.EventRoleTypeAddedToList})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 add events, got %d", len(got))
	}
	// Newest first
	if got[0].ActorID != "a2" {
		t.Errorf("expected newest event first, got actor %q", got[0].ActorID)
	}

	n, err := store.CountByFilter(ctx, audit.QueryFilter{ActorID: "a1"})
	if err != nil {
		t.Fatalf("CountByFilter failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 events for a1, got %d", n)
	}

	start := base.Add(30 * time.Second)
	n, err = store.CountByFilter(ctx, audit.QueryFilter{StartTime: &start})
	if err != nil {
		t.Fatalf("CountByFilter failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 events after start, got %d", n)
	}
}
