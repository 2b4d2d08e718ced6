// Package rolelists implements role type list membership: adding a role
// type to a list, removing it again and resolving the members of a list.
package rolelists

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/rolehub/internal/app/system/auth"
	"github.com/dalemusser/rolehub/internal/app/system/metrics"
	"github.com/dalemusser/rolehub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Outcome messages carried in Result.Msg.
const (
	MsgOK   = "ok"
	MsgFail = "fail"
)

// ErrNoIdentity is returned by Add when no acting user is supplied.
var ErrNoIdentity = errors.New("rolelists: acting identity required")

// Result is the outcome of Add and Remove. ID is always the list id.
type Result struct {
	ID  string `json:"id"`
	Msg string `json:"msg"`
}

// OK reports whether the mutation took effect.
func (r Result) OK() bool { return r.Msg == MsgOK }

// MembershipStore persists list memberships.
//
// Insert returns a nil record and a nil error when the store refuses the
// record (for example a duplicate pair rejected by a unique index).
// Delete reports whether a record was actually removed.
type MembershipStore interface {
	FilterByList(ctx context.Context, listID string) ([]models.RoleTypeMembership, error)
	Insert(ctx context.Context, m models.RoleTypeMembership) (*models.RoleTypeMembership, error)
	Delete(ctx context.Context, m models.RoleTypeMembership) (bool, error)
}

// RoleTypeResolver turns a stored role type id into the entity.
// A missing role type is (nil, nil).
type RoleTypeResolver interface {
	ResolveReference(ctx context.Context, id string) (*models.RoleType, error)
}

// Service coordinates membership changes for role type lists.
type Service struct {
	store    MembershipStore
	resolver RoleTypeResolver
	log      *zap.Logger

	// concurrency caps in-flight ResolveReference calls in ListByID.
	// Zero or negative means unbounded.
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithResolveConcurrency bounds the ListByID fan-out.
func WithResolveConcurrency(n int) Option {
	return func(s *Service) { s.concurrency = n }
}

// New builds a Service. A nil logger is replaced by a no-op logger.
func New(store MembershipStore, resolver RoleTypeResolver, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{store: store, resolver: resolver, log: logger}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Add makes typeID a member of listID on behalf of actor.
//
// Adding a pair that is already present yields MsgFail and changes nothing.
// A store-level rejection of the insert also yields MsgFail. Storage faults
// are returned as errors.
func (s *Service) Add(ctx context.Context, listID, typeID string, actor *auth.Identity) (res Result, err error) {
	defer func() { metrics.ObserveMembership("add", res.Msg, err) }()

	if actor == nil || actor.ID == "" {
		return Result{}, ErrNoIdentity
	}

	existing, err := s.store.FilterByList(ctx, listID)
	if err != nil {
		return Result{}, fmt.Errorf("fetch memberships of %s: %w", listID, err)
	}
	if _, found := findType(existing, typeID); found {
		return Result{ID: listID, Msg: MsgFail}, nil
	}

	rec, err := s.store.Insert(ctx, models.RoleTypeMembership{
		ListID:    listID,
		TypeID:    typeID,
		CreatedBy: actor.ID,
	})
	if err != nil {
		return Result{}, fmt.Errorf("insert membership %s/%s: %w", listID, typeID, err)
	}
	if rec == nil {
		s.log.Debug("membership insert rejected by store",
			zap.String("list_id", listID),
			zap.String("type_id", typeID))
		return Result{ID: listID, Msg: MsgFail}, nil
	}
	return Result{ID: listID, Msg: MsgOK}, nil
}

// Remove drops typeID from listID. Only memberships of listID are
// considered. A pair that is not present yields MsgFail.
func (s *Service) Remove(ctx context.Context, listID, typeID string) (res Result, err error) {
	defer func() { metrics.ObserveMembership("remove", res.Msg, err) }()

	existing, err := s.store.FilterByList(ctx, listID)
	if err != nil {
		return Result{}, fmt.Errorf("fetch memberships of %s: %w", listID, err)
	}
	m, found := findType(existing, typeID)
	if !found {
		return Result{ID: listID, Msg: MsgFail}, nil
	}

	deleted, err := s.store.Delete(ctx, m)
	if err != nil {
		return Result{}, fmt.Errorf("delete membership %s/%s: %w", listID, typeID, err)
	}
	if !deleted {
		// removed concurrently between the scan and the delete
		return Result{ID: listID, Msg: MsgFail}, nil
	}
	return Result{ID: listID, Msg: MsgOK}, nil
}

// Memberships returns the raw membership records of a list in store order.
func (s *Service) Memberships(ctx context.Context, listID string) ([]models.RoleTypeMembership, error) {
	ms, err := s.store.FilterByList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("fetch memberships of %s: %w", listID, err)
	}
	return ms, nil
}

// ListByID resolves every member of listID into its role type.
// Resolution runs concurrently; the result keeps membership order.
// Members whose role type no longer exists are left out.
func (s *Service) ListByID(ctx context.Context, listID string) ([]models.RoleType, error) {
	ms, err := s.store.FilterByList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("fetch memberships of %s: %w", listID, err)
	}
	if len(ms) == 0 {
		return []models.RoleType{}, nil
	}

	start := time.Now()
	resolved := make([]*models.RoleType, len(ms))

	g, gctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i, m := range ms {
		g.Go(func() error {
			rt, err := s.resolver.ResolveReference(gctx, m.TypeID)
			if err != nil {
				return fmt.Errorf("resolve role type %s: %w", m.TypeID, err)
			}
			resolved[i] = rt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.ResolveDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, err
	}
	metrics.ResolveDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	out := make([]models.RoleType, 0, len(resolved))
	for i, rt := range resolved {
		if rt == nil {
			s.log.Warn("membership references missing role type",
				zap.String("list_id", listID),
				zap.String("type_id", ms[i].TypeID))
			continue
		}
		out = append(out, *rt)
	}
	return out, nil
}

func findType(ms []models.RoleTypeMembership, typeID string) (models.RoleTypeMembership, bool) {
	for _, m := range ms {
		if m.TypeID == typeID {
			return m, true
		}
	}
	return models.RoleTypeMembership{}, false
}
