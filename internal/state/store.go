// Package state provides the session-scoped local collection store:
// wishlist membership and the booking list. The store is the single
// mutable resource the reconciliation controllers patch optimistically
// and reconcile against server snapshots; every operation is applied
// atomically so readers never observe a torn intermediate state.
package state

import (
	"sync"

	"github.com/casitahq/casita/internal/api"
)

// Store holds both user-owned collections. The zero value is ready to
// use and represents a logged-out, empty state.
type Store struct {
	mu       sync.RWMutex
	wishlist map[string]struct{}
	bookings []api.Booking
}

// AddWishlist inserts a listing identifier. Reports whether the set
// changed, which the caller needs to roll back accurately.
func (s *Store) AddWishlist(listingID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wishlist == nil {
		s.wishlist = make(map[string]struct{})
	}
	if _, ok := s.wishlist[listingID]; ok {
		return false
	}
	s.wishlist[listingID] = struct{}{}
	return true
}

// RemoveWishlist deletes a listing identifier. Reports whether the set
// changed.
func (s *Store) RemoveWishlist(listingID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wishlist[listingID]; !ok {
		return false
	}
	delete(s.wishlist, listingID)
	return true
}

// ReplaceWishlist swaps the whole membership set for the server's.
func (s *Store) ReplaceWishlist(listingIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = make(map[string]struct{}, len(listingIDs))
	for _, id := range listingIDs {
		s.wishlist[id] = struct{}{}
	}
}

// InWishlist reports membership for a single listing.
func (s *Store) InWishlist(listingID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.wishlist[listingID]
	return ok
}

// WishlistIDs returns a copy of the membership set. Order is not
// significant.
func (s *Store) WishlistIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.wishlist) == 0 {
		return nil
	}
	ids := make([]string, 0, len(s.wishlist))
	for id := range s.wishlist {
		ids = append(ids, id)
	}
	return ids
}

// AppendBooking adds a record to the end of the collection.
func (s *Store) AppendBooking(b api.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, b)
}

// RemoveBooking deletes the record with the given identifier,
// returning the removed record so a caller could restore it.
func (s *Store) RemoveBooking(bookingID string) (api.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.bookings {
		if b.BookingID == bookingID {
			s.bookings = append(s.bookings[:i:i], s.bookings[i+1:]...)
			return b, true
		}
	}
	return api.Booking{}, false
}

// SetBookingStatus patches a record's status in place and returns the
// prior status, which the caller keeps for rollback.
func (s *Store) SetBookingStatus(bookingID, status string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.bookings {
		if b.BookingID == bookingID {
			prior := b.Status
			s.bookings[i].Status = status
			return prior, true
		}
	}
	return "", false
}

// ReplaceBookings swaps the whole collection for the server's list.
func (s *Store) ReplaceBookings(bookings []api.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = cloneBookings(bookings)
}

// Bookings returns a copy of the collection in insertion order.
func (s *Store) Bookings() []api.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneBookings(s.bookings)
}

// Clear empties both collections. Called on logout; both resets happen
// under one lock acquisition so no reader sees one collection cleared
// and the other populated.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = nil
	s.bookings = nil
}

func cloneBookings(items []api.Booking) []api.Booking {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.Booking, len(items))
	copy(dup, items)
	return dup
}
