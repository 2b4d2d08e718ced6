// Package timeouts provides the context deadlines used by rolehub handlers.
//
// Tiers:
//   - Ping: health checks
//   - Short: single-document reads and writes (get by id, create)
//   - Medium: list queries and membership add/remove (scan + write)
//   - Resolve: ListByID fan-out across every member of a list
//
// Values are set once at startup from configuration with Configure.
package timeouts

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defaults used until Configure is called.
const (
	DefaultPing    = 2 * time.Second
	DefaultShort   = 5 * time.Second
	DefaultMedium  = 10 * time.Second
	DefaultResolve = 15 * time.Second
)

// Config holds timeout values. Zero fields leave the current value as is.
type Config struct {
	Ping    time.Duration
	Short   time.Duration
	Medium  time.Duration
	Resolve time.Duration
}

var (
	mu  sync.RWMutex
	cur = defaults()
)

func defaults() Config {
	return Config{
		Ping:    DefaultPing,
		Short:   DefaultShort,
		Medium:  DefaultMedium,
		Resolve: DefaultResolve,
	}
}

func Ping() time.Duration    { return Current().Ping }
func Short() time.Duration   { return Current().Short }
func Medium() time.Duration  { return Current().Medium }
func Resolve() time.Duration { return Current().Resolve }

// Configure overrides the non-zero fields of cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		cur.Ping = cfg.Ping
	}
	if cfg.Short > 0 {
		cur.Short = cfg.Short
	}
	if cfg.Medium > 0 {
		cur.Medium = cfg.Medium
	}
	if cfg.Resolve > 0 {
		cur.Resolve = cfg.Resolve
	}
}

// Reset restores the defaults. Used by tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = defaults()
}

// Current returns a snapshot of the active values.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// WithTimeout derives a context with the given timeout. The returned cancel
// logs a warning when the deadline was hit, tagged with operation.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Resolve(), h.Log, "list role types")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
