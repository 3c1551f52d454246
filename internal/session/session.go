// Package session owns the in-memory datasets uploaded by clients.
// Each upload becomes a Session keyed by UUID; the pipeline packages
// (ingest, filter, analytics) stay stateless and the session carries
// the snapshot they operate on.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/campaign-insights/internal/analytics"
	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/filter"
	"github.com/ignite/campaign-insights/internal/ingest"
)

// Session holds one uploaded dataset together with the currently
// applied criteria and the derived views. Records is the immutable
// full snapshot; Filtered and Metrics are recomputed whenever the
// criteria change.
type Session struct {
	ID       string
	Records  []domain.Record
	Criteria domain.Criteria
	Filtered []domain.Record
	Metrics  domain.Metrics
	Report   ingest.Report

	CreatedAt  time.Time
	AccessedAt time.Time
}

// Facets describes the distinct values available for filtering.
type Facets struct {
	Campaigns  []string `json:"campaigns"`
	Statuses   []string `json:"statuses"`
	ReplyTypes []string `json:"reply_types"`
}

// Facets returns the filter options derived from the full snapshot.
func (s *Session) Facets() Facets {
	statuses := domain.Statuses(s.Records)
	names := make([]string, 0, len(statuses))
	for _, st := range statuses {
		names = append(names, string(st))
	}
	return Facets{
		Campaigns:  domain.CampaignLabels(s.Records),
		Statuses:   names,
		ReplyTypes: domain.ReplyTypes(s.Records),
	}
}

func (s *Session) recompute() {
	s.Filtered = filter.Apply(s.Records, s.Criteria)
	s.Metrics = analytics.Compute(s.Records, s.Filtered)
}

// Store is a thread-safe in-memory session registry with TTL expiry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time

	onCountChange func(n int)
}

// NewStore creates a store whose sessions expire after ttl of
// inactivity. A ttl of zero disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// OnCountChange registers a callback invoked with the session count
// after every mutation. Used to feed the active-sessions gauge.
func (st *Store) OnCountChange(fn func(n int)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.onCountChange = fn
}

func (st *Store) notifyLocked() {
	if st.onCountChange != nil {
		st.onCountChange(len(st.sessions))
	}
}

// Create registers a new session for the given dataset with default
// criteria applied, and returns a copy of its initial state.
func (st *Store) Create(records []domain.Record, report ingest.Report) Session {
	now := st.now()
	s := &Session{
		ID:         uuid.New().String(),
		Records:    records,
		Criteria:   domain.DefaultCriteria(),
		Report:     report,
		CreatedAt:  now,
		AccessedAt: now,
	}
	s.recompute()

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	st.notifyLocked()
	return *s
}

// Get returns a copy of the session and refreshes its access time.
func (st *Store) Get(id string) (Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return Session{}, false
	}
	s.AccessedAt = st.now()
	return *s, true
}

// UpdateCriteria replaces the session's criteria, recomputes the
// filtered view and metrics, and returns the updated state.
func (st *Store) UpdateCriteria(id string, c domain.Criteria) (Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return Session{}, false
	}
	s.Criteria = c
	s.recompute()
	s.AccessedAt = st.now()
	return *s, true
}

// Delete removes the session. It reports whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	st.notifyLocked()
	return true
}

// List returns copies of all live sessions ordered by creation time.
func (st *Store) List() []Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes sessions idle past the TTL and returns how many were
// evicted.
func (st *Store) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	cutoff := st.now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()
	evicted := 0
	for id, s := range st.sessions {
		if s.AccessedAt.Before(cutoff) {
			delete(st.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		st.notifyLocked()
	}
	return evicted
}

// StartSweeper runs Sweep every interval until the stop channel
// closes.
func (st *Store) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 || st.ttl <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				st.Sweep()
			case <-stop:
				return
			}
		}
	}()
}
