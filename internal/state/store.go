package state

import (
	"sync"
	"time"

	"github.com/five82/roster/internal/roster"
)

// Phase is the load lifecycle of the page.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
)

// String returns a lower-case phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "loading"
	}
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Phase    Phase
	Records  []roster.Record
	Cities   []string
	Error    string
	Started  time.Time
	LoadedAt time.Time
}

// Elapsed is how long the load took, or zero while it is in flight.
func (s Snapshot) Elapsed() time.Duration {
	if s.Started.IsZero() || s.LoadedAt.IsZero() {
		return 0
	}
	return s.LoadedAt.Sub(s.Started)
}

// Loading reports whether the load is still in flight.
func (s Snapshot) Loading() bool {
	return s.Phase == PhaseLoading
}

// Store coordinates the loader and its readers.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Begin marks the start of a load at the given time.
func (s *Store) Begin(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{Phase: PhaseLoading, Started: at}
}

// Ready publishes a loaded dataset.
func (s *Store) Ready(ds roster.Dataset, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Phase = PhaseReady
	s.snapshot.Records = cloneRecords(ds.Records)
	s.snapshot.Cities = cloneStrings(ds.Cities)
	s.snapshot.Error = ""
	s.snapshot.LoadedAt = at
}

// Fail publishes a load failure. No partial data is kept.
func (s *Store) Fail(message string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Phase = PhaseError
	s.snapshot.Records = nil
	s.snapshot.Cities = nil
	s.snapshot.Error = message
	s.snapshot.LoadedAt = at
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Records = cloneRecords(s.snapshot.Records)
	snap.Cities = cloneStrings(s.snapshot.Cities)
	return snap
}

func cloneRecords(items []roster.Record) []roster.Record {
	if len(items) == 0 {
		return nil
	}
	dup := make([]roster.Record, len(items))
	copy(dup, items)
	return dup
}

func cloneStrings(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	dup := make([]string, len(items))
	copy(dup, items)
	return dup
}
