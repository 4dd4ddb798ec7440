// Package catalog provides the thread-safe listing catalog shared
// between the background poller and the UI. Listings are read-only on
// the client; the poller replaces the snapshot wholesale and the UI
// reads defensive copies.
package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/casitahq/casita/internal/api"
)

// Snapshot represents the latest catalog data available to the UI.
type Snapshot struct {
	Listings            []api.Listing
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for
// multiple refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored listings. When err is non-nil the
// previous data is kept but the error is recorded for visibility.
func (s *Store) Update(listings []api.Listing, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Listings = cloneListings(listings)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Listings = cloneListings(s.snapshot.Listings)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// ByID looks up a listing in the current snapshot.
func (s *Store) ByID(id string) (api.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.snapshot.Listings {
		if l.ID == id {
			return l, true
		}
	}
	return api.Listing{}, false
}

func cloneListings(items []api.Listing) []api.Listing {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.Listing, len(items))
	copy(dup, items)
	return dup
}
