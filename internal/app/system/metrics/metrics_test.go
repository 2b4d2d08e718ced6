package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeStoreLog(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })
	return logs
}

func TestInstrument_Success(t *testing.T) {
	before := testutil.ToFloat64(dbOperationTotal.WithLabelValues("test_coll", "find", "success"))

	got, err := Instrument(context.Background(), "test_coll", "find", func() (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("result: got %d, want 42", got)
	}

	after := testutil.ToFloat64(dbOperationTotal.WithLabelValues("test_coll", "find", "success"))
	if after != before+1 {
		t.Errorf("success counter: got %v, want %v", after, before+1)
	}
}

func TestInstrument_Error(t *testing.T) {
	before := testutil.ToFloat64(dbOperationTotal.WithLabelValues("test_coll", "insert", "error"))

	boom := errors.New("boom")
	_, err := Instrument(context.Background(), "test_coll", "insert", func() (string, error) {
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	after := testutil.ToFloat64(dbOperationTotal.WithLabelValues("test_coll", "insert", "error"))
	if after != before+1 {
		t.Errorf("error counter: got %v, want %v", after, before+1)
	}
}

func TestObserveMembership(t *testing.T) {
	tests := []struct {
		msg    string
		err    error
		result string
	}{
		{"ok", nil, "ok"},
		{"fail", nil, "fail"},
		{"", errors.New("db down"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.result, func(t *testing.T) {
			c := MembershipOps.WithLabelValues("add", tt.result)
			before := testutil.ToFloat64(c)
			ObserveMembership("add", tt.msg, tt.err)
			if after := testutil.ToFloat64(c); after != before+1 {
				t.Errorf("counter %q: got %v, want %v", tt.result, after, before+1)
			}
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{context.DeadlineExceeded, "timeout"},
		{fmt.Errorf("wrapped: %w", context.Canceled), "canceled"},
		{mongo.ErrNoDocuments, "not_found"},
		{errors.New("other"), "error"},
	}

	for _, tt := range tests {
		if got := classifyError(tt.err); got != tt.want {
			t.Errorf("classifyError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestInstrument_LogsFailure(t *testing.T) {
	logs := observeStoreLog(t)

	_, err := Instrument(context.Background(), "role_type_memberships", "insert", func() (int, error) {
		return 0, errors.New("connection reset")
	})
	if err == nil {
		t.Fatal("expected error")
	}

	entries := logs.FilterMessage("database operation failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 failure log entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.ErrorLevel {
		t.Errorf("level: got %v, want error", e.Level)
	}
	fields := e.ContextMap()
	if fields["collection"] != "role_type_memberships" || fields["operation"] != "insert" {
		t.Errorf("unexpected fields: %v", fields)
	}
}

func TestInstrument_LogsSlowOperation(t *testing.T) {
	logs := observeStoreLog(t)

	_, err := Instrument(context.Background(), "role_types", "list", func() (int, error) {
		time.Sleep(SlowQueryThreshold + 20*time.Millisecond)
		return 1, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := logs.FilterMessage("slow database operation").All()
	if len(entries) != 1 || entries[0].Level != zapcore.WarnLevel {
		t.Errorf("expected one slow-operation warning, got %v", entries)
	}
}

func TestInstrument_FastSuccessIsQuiet(t *testing.T) {
	logs := observeStoreLog(t)

	if _, err := Instrument(context.Background(), "role_types", "get", func() (int, error) { return 1, nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := logs.Len(); n != 0 {
		t.Errorf("expected no log entries, got %d", n)
	}
}
