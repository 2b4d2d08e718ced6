// Package metrics holds the Prometheus collectors for rolehub.
package metrics

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	// MembershipOps counts add/remove requests by outcome.
	// result: ok, fail, error
	MembershipOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rolehub",
			Subsystem: "membership",
			Name:      "operations_total",
			Help:      "Role type list membership operations by outcome",
		},
		[]string{"operation", "result"},
	)

	// ResolveDuration tracks how long a list_by_id fan-out takes.
	ResolveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rolehub",
			Subsystem: "membership",
			Name:      "resolve_duration_seconds",
			Help:      "Time to resolve all role types of a list",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"result"},
	)

	dbOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rolehub",
			Subsystem: "db",
			Name:      "operation_duration_seconds",
			Help:      "Database operation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"collection", "operation"},
	)

	dbOperationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rolehub",
			Subsystem: "db",
			Name:      "operations_total",
			Help:      "Total database operations",
		},
		[]string{"collection", "operation", "result"},
	)
)

var logger atomic.Pointer[zap.Logger]

// SetLogger sets the logger Instrument reports failures and slow
// operations to. Until it is called those lines are discarded.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

func storeLog() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SlowQueryThreshold defines when a query is considered slow.
const SlowQueryThreshold = 100 * time.Millisecond

// Instrument wraps a store operation with metrics and logging.
// It records duration and success/failure counts and logs slow queries.
func Instrument[T any](ctx context.Context, collection, operation string, fn func() (T, error)) (T, error) {
	start := time.Now()
	result, err := fn()
	duration := time.Since(start)

	dbOperationDuration.WithLabelValues(collection, operation).Observe(duration.Seconds())

	if err != nil {
		dbOperationTotal.WithLabelValues(collection, operation, classifyError(err)).Inc()
		storeLog().Error("database operation failed",
			zap.String("collection", collection),
			zap.String("operation", operation),
			zap.Int64("duration_ms", duration.Milliseconds()),
			zap.Error(err))
		return result, err
	}

	dbOperationTotal.WithLabelValues(collection, operation, "success").Inc()
	if duration > SlowQueryThreshold {
		storeLog().Warn("slow database operation",
			zap.String("collection", collection),
			zap.String("operation", operation),
			zap.Int64("duration_ms", duration.Milliseconds()))
	}
	return result, nil
}

// ObserveMembership records the outcome of an add or remove.
func ObserveMembership(operation, msg string, err error) {
	result := msg
	if err != nil {
		result = "error"
	}
	MembershipOps.WithLabelValues(operation, result).Inc()
}

func classifyError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, mongo.ErrNoDocuments):
		return "not_found"
	case mongo.IsDuplicateKeyError(err):
		return "duplicate"
	case mongo.IsNetworkError(err):
		return "network"
	default:
		return "error"
	}
}
