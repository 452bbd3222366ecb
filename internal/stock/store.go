// Package stock owns the normalized stock state: the normalizer, the
// current/previous snapshot pair and the fetch lifecycle around them.
package stock

import (
	"context"
	"sync"
	"time"

	"github.com/gardenstock/stockwatch/internal/domain"
	"github.com/gardenstock/stockwatch/internal/feed"
	"github.com/gardenstock/stockwatch/internal/logger"
)

// Store holds the current and previous snapshots plus fetch state.
// All failures during Refetch are captured into the state's Error
// field; nothing is ever surfaced as a hard error to the caller.
type Store struct {
	fetcher feed.Fetcher // nil => built-in offline snapshot
	logger  logger.Logger

	mu    sync.RWMutex
	state domain.StockState

	// onCommit fires after a new snapshot has been fully committed,
	// with the committed and previous snapshots. The change detector
	// hangs off this so it only ever observes complete snapshots.
	onCommit func(current, previous *domain.Snapshot)

	now func() time.Time
}

// NewStore builds a stock store. fetcher may be nil to force the
// deterministic offline snapshot.
func NewStore(fetcher feed.Fetcher, log logger.Logger) *Store {
	return &Store{
		fetcher: fetcher,
		logger:  log,
		state:   domain.StockState{Loading: true},
		now:     time.Now,
	}
}

// OnCommit registers the snapshot-committed hook. Must be called
// before the first Refetch.
func (s *Store) OnCommit(fn func(current, previous *domain.Snapshot)) {
	s.onCommit = fn
}

// Refetch performs one fetch-normalize-commit cycle. Overlapping calls
// are not coordinated beyond last-write-wins; in practice the
// scheduler serializes them.
func (s *Store) Refetch(ctx context.Context) {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	if s.fetcher == nil {
		s.commit(FallbackSnapshot())
		return
	}

	records, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Warn("stock fetch failed, keeping previous snapshot",
			logger.Error(err))
		s.mu.Lock()
		s.state.Loading = false
		s.state.Error = err.Error()
		s.mu.Unlock()
		return
	}

	snap := Normalize(records)
	s.logger.Info("stock snapshot updated",
		logger.Int("records", len(records)),
		logger.Int("items", snap.Total()))

	s.commit(snap)
}

// commit demotes the current snapshot to previous, installs the new
// one and fires the committed hook outside the lock.
func (s *Store) commit(snap *domain.Snapshot) {
	now := s.now()

	s.mu.Lock()
	previous := s.state.Data
	s.state.PreviousData = previous
	s.state.Data = snap
	s.state.LastUpdated = &now
	s.state.Loading = false
	s.state.Error = ""
	s.mu.Unlock()

	if s.onCommit != nil {
		s.onCommit(snap, previous)
	}
}

// SetNextUpdate records the scheduler's next aligned poll instant for
// display. It does not affect fetch timing.
func (s *Store) SetNextUpdate(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := t
	s.state.NextUpdate = &next
}

// State returns a copy of the current fetch state.
func (s *Store) State() domain.StockState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
