package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/sheetdash/internal/sheets"
)

// Snapshot represents the latest data available to the surfaces.
type Snapshot struct {
	Dataset             sheets.Dataset
	LastUpdated         time.Time // last successful fetch
	LastAttempt         time.Time
	LastError           error
	ConsecutiveFailures int
	Generation          uint64 // latest attempt handed out by Begin
}

// IsOffline returns true when the endpoint has failed several attempts in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store holds the retained dataset shared by the refresh path and the search
// filter. Each refresh attempt takes a generation from Begin; results from an
// attempt that is no longer the latest are rejected.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Begin starts a new refresh attempt and returns its generation.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Generation++
	s.snapshot.LastAttempt = time.Now()
	return s.snapshot.Generation
}

// IsLatest reports whether gen is still the newest attempt.
func (s *Store) IsLatest(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gen == s.snapshot.Generation
}

// SetDataset replaces the retained dataset with the result of attempt gen.
// An empty ds clears it. It returns false and changes nothing when gen is stale.
func (s *Store) SetDataset(gen uint64, ds sheets.Dataset) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.snapshot.Generation {
		return false
	}
	s.snapshot.Dataset = ds.Clone()
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	if len(ds) > 0 {
		s.snapshot.LastUpdated = time.Now()
	}
	return true
}

// RecordFailure notes a failed attempt. The previous dataset is kept so it
// stays searchable. It returns false when gen is stale.
func (s *Store) RecordFailure(gen uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.snapshot.Generation {
		return false
	}
	s.snapshot.LastError = err
	s.snapshot.ConsecutiveFailures++
	return true
}

// Dataset returns a copy of the retained dataset.
func (s *Store) Dataset() sheets.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Dataset.Clone()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Dataset = s.snapshot.Dataset.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
