package rolelists_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dalemusser/rolehub/internal/domain/models"
	"github.com/google/uuid"
)

// memStore is an in-memory MembershipStore that enforces the
// (list_id, type_id) uniqueness the Mongo index provides.
type memStore struct {
	mu      sync.Mutex
	records []models.RoleTypeMembership

	// filterCalls records the listID of every FilterByList call.
	filterCalls []string

	filterErr error
	insertErr error
	deleteErr error

	// rejectInsert makes Insert return (nil, nil).
	rejectInsert bool
	// beforeDelete runs before Delete removes anything.
	beforeDelete func()
}

func (s *memStore) FilterByList(_ context.Context, listID string) ([]models.RoleTypeMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterCalls = append(s.filterCalls, listID)
	if s.filterErr != nil {
		return nil, s.filterErr
	}
	out := []models.RoleTypeMembership{}
	for _, r := range s.records {
		if r.ListID == listID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) Insert(_ context.Context, m models.RoleTypeMembership) (*models.RoleTypeMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	if s.rejectInsert {
		return nil, nil
	}
	for _, r := range s.records {
		if r.ListID == m.ListID && r.TypeID == m.TypeID {
			return nil, nil
		}
	}
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	s.records = append(s.records, m)
	return &m, nil
}

func (s *memStore) Delete(_ context.Context, m models.RoleTypeMembership) (bool, error) {
	if s.beforeDelete != nil {
		s.beforeDelete()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return false, s.deleteErr
	}
	for i, r := range s.records {
		if r.ID == m.ID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) seed(listID, typeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, models.RoleTypeMembership{
		ID:        uuid.NewString(),
		ListID:    listID,
		TypeID:    typeID,
		CreatedBy: "seed",
		CreatedAt: time.Now().UTC(),
	})
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// memResolver resolves role types from a map. Delays let tests force
// out-of-order completion.
type memResolver struct {
	types  map[string]models.RoleType
	delays map[string]time.Duration
	err    error

	inFlight atomic.Int32
	peak     atomic.Int32
}

func (r *memResolver) ResolveReference(ctx context.Context, id string) (*models.RoleType, error) {
	n := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if d := r.delays[id]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	rt, ok := r.types[id]
	if !ok {
		return nil, nil
	}
	return &rt, nil
}

func resolverFor(ids ...string) *memResolver {
	r := &memResolver{types: map[string]models.RoleType{}, delays: map[string]time.Duration{}}
	for _, id := range ids {
		r.types[id] = models.RoleType{ID: id, Name: "Role " + id}
	}
	return r
}
