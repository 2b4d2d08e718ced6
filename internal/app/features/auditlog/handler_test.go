package auditlog_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dalemusser/rolehub/internal/app/features/auditlog"
	"github.com/dalemusser/rolehub/internal/app/store/audit"
	"github.com/dalemusser/rolehub/internal/app/system/httpapi"
	"github.com/dalemusser/rolehub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*auditlog.Handler, *audit.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	store := audit.New(db)
	return auditlog.NewHandler(store, httpapi.NewErrorLogger(logger), logger), store
}

type listBody struct {
	Items []struct {
		EventType string `json:"event_type"`
		TargetID  string `json:"target_id"`
	} `json:"items"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func TestRoutes_AdminOnly(t *testing.T) {
	router := auditlog.Routes(auditlog.NewHandler(nil, httpapi.NewErrorLogger(nil), zap.NewNop()))

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest("GET", "/"))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewAuthenticatedRequest("GET", "/", testutil.StaffUser()))
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestServeList_FiltersByTarget(t *testing.T) {
	h, store := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, target := range []string{"list-1", "list-1", "list-2"} {
		err := store.Log(ctx, audit.Event{
			Category:  audit.CategoryAdmin,
			EventType: audit.EventRoleTypeAddedToList,
			TargetID:  target,
			Success:   true,
		})
		if err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/audit-events?target_id=list-1", testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)

	var body listBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Total != 2 || len(body.Items) != 2 {
		t.Errorf("expected 2 events, got total=%d items=%d", body.Total, len(body.Items))
	}
	if body.TotalPages != 1 {
		t.Errorf("total_pages: got %d", body.TotalPages)
	}
}

func TestServeList_BadParams(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, target := range []string{
		"/audit-events?event_type=nope",
		"/audit-events?start_date=yesterday",
		"/audit-events?end_date=2024-13-40",
	} {
		rec := testutil.NewRecorder()
		h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", target, testutil.AdminUser()))
		rec.AssertStatus(t, http.StatusBadRequest)
	}
}
