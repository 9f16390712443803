package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"walletsegue/internal/domain"
)

// Registry is a mutex-guarded map of pending requests.
type Registry struct {
	mu      sync.Mutex
	pending map[domain.RequestID]domain.PendingRequest
	now     func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the time source used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// New returns an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		pending: make(map[domain.RequestID]domain.PendingRequest),
		now:     time.Now,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Register adds p. CreatedAt is stamped when zero.
func (r *Registry) Register(p domain.PendingRequest) error {
	if p.RequestID == "" {
		return fmt.Errorf("register: empty request id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pending[p.RequestID]; exists {
		return fmt.Errorf("register %s: %w", p.RequestID, domain.ErrDuplicateRequest)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now()
	}
	r.pending[p.RequestID] = p
	return nil
}

// Resolve delivers results to the entry for id.
//
// Steps:
//  1. Remove the entry; an unknown id is ErrUnknownRequest with no effect.
//  2. A result count that differs from the action count fails the entry
//     with ErrMalformedResponse.
//  3. Any failed non-optional action fails the entry with *BatchError.
//  4. Otherwise OnSuccess receives the results.
func (r *Registry) Resolve(id domain.RequestID, results []domain.ActionResult) error {
	p, ok := r.take(id)
	if !ok {
		return fmt.Errorf("resolve %s: %w", id, domain.ErrUnknownRequest)
	}

	if len(results) != len(p.Actions) {
		fail(p, fmt.Errorf("request %s: %w: %d results for %d actions",
			id, domain.ErrMalformedResponse, len(results), len(p.Actions)))
		return nil
	}
	for i, res := range results {
		if res == nil {
			fail(p, fmt.Errorf("request %s: %w: nil result %d", id, domain.ErrMalformedResponse, i))
			return nil
		}
		if !res.OK() && !p.Actions[i].Optional {
			fail(p, &domain.BatchError{RequestID: id, Actions: p.Actions, Results: results})
			return nil
		}
	}
	if p.OnSuccess != nil {
		p.OnSuccess(results)
	}
	return nil
}

// Cancel fails the entry for id with an error matching ErrCancelled.
func (r *Registry) Cancel(id domain.RequestID, reason string) error {
	return r.Fail(id, &domain.CancelError{RequestID: id, Reason: reason})
}

// Fail removes the entry for id and hands err to its failure callback.
func (r *Registry) Fail(id domain.RequestID, err error) error {
	p, ok := r.take(id)
	if !ok {
		return fmt.Errorf("fail %s: %w", id, domain.ErrUnknownRequest)
	}
	fail(p, err)
	return nil
}

// CancelSession cancels every entry belonging to sess and returns how many
// were cancelled.
func (r *Registry) CancelSession(sess domain.SessionID, reason string) int {
	r.mu.Lock()
	var victims []domain.PendingRequest
	for id, p := range r.pending {
		if p.SessionID == sess {
			victims = append(victims, p)
			delete(r.pending, id)
		}
	}
	r.mu.Unlock()

	sortByCreation(victims)
	for _, p := range victims {
		fail(p, &domain.CancelError{RequestID: p.RequestID, Reason: reason})
	}
	return len(victims)
}

// Get returns a copy of the entry for id.
func (r *Registry) Get(id domain.RequestID) (domain.PendingRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[id]
	return p, ok
}

// Len returns the number of pending entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Outstanding returns the number of entries belonging to sess.
func (r *Registry) Outstanding(sess domain.SessionID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.pending {
		if p.SessionID == sess {
			n++
		}
	}
	return n
}

// Snapshot returns the serialisable form of every entry, oldest first.
func (r *Registry) Snapshot() []domain.PendingRecord {
	r.mu.Lock()
	list := make([]domain.PendingRequest, 0, len(r.pending))
	for _, p := range r.pending {
		list = append(list, p)
	}
	r.mu.Unlock()

	sortByCreation(list)
	out := make([]domain.PendingRecord, 0, len(list))
	for _, p := range list {
		out = append(out, p.Record())
	}
	return out
}

// Expired returns the ids of entries created before cutoff, oldest first.
// The registry owns no timers; callers cancel what they consider stale.
func (r *Registry) Expired(cutoff time.Time) []domain.RequestID {
	r.mu.Lock()
	var list []domain.PendingRequest
	for _, p := range r.pending {
		if p.CreatedAt.Before(cutoff) {
			list = append(list, p)
		}
	}
	r.mu.Unlock()

	sortByCreation(list)
	out := make([]domain.RequestID, 0, len(list))
	for _, p := range list {
		out = append(out, p.RequestID)
	}
	return out
}

func (r *Registry) take(id domain.RequestID) (domain.PendingRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[id]
	if ok {
		delete(r.pending, id)
	}
	return p, ok
}

func fail(p domain.PendingRequest, err error) {
	if p.OnFailure != nil {
		p.OnFailure(err)
	}
}

func sortByCreation(list []domain.PendingRequest) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].RequestID < list[j].RequestID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
