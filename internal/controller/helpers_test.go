package controller

import (
	"context"
	"testing"
	"time"

	"github.com/casitahq/casita/internal/api"
	"github.com/casitahq/casita/internal/resource"
)

// fakeGateway implements api.Gateway with overridable function fields.
// Unset fields succeed with zero values.
type fakeGateway struct {
	listings            func(ctx context.Context) ([]api.Listing, error)
	listingDetails      func(ctx context.Context, id string) (api.Listing, error)
	login               func(ctx context.Context, email, password string) (api.LoginResponse, error)
	signup              func(ctx context.Context, username, email, password string) (api.SignupResponse, error)
	createBooking       func(ctx context.Context, req api.BookingRequest) (api.Booking, error)
	userBookings        func(ctx context.Context, userID string) ([]api.Booking, error)
	cancelBooking       func(ctx context.Context, bookingID string) error
	updateBookingStatus func(ctx context.Context, bookingID, status string) (api.Booking, error)
	addWishlistItem     func(ctx context.Context, userID, listingID string) (api.WishlistEntry, error)
	removeWishlistItem  func(ctx context.Context, userID, listingID string) error
	userWishlist        func(ctx context.Context, userID string) ([]api.WishlistEntry, error)
}

var _ api.Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) Listings(ctx context.Context) ([]api.Listing, error) {
	if f.listings != nil {
		return f.listings(ctx)
	}
	return nil, nil
}

func (f *fakeGateway) ListingDetails(ctx context.Context, id string) (api.Listing, error) {
	if f.listingDetails != nil {
		return f.listingDetails(ctx, id)
	}
	return api.Listing{}, nil
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) (api.LoginResponse, error) {
	if f.login != nil {
		return f.login(ctx, email, password)
	}
	return api.LoginResponse{}, nil
}

func (f *fakeGateway) Signup(ctx context.Context, username, email, password string) (api.SignupResponse, error) {
	if f.signup != nil {
		return f.signup(ctx, username, email, password)
	}
	return api.SignupResponse{}, nil
}

func (f *fakeGateway) CreateBooking(ctx context.Context, req api.BookingRequest) (api.Booking, error) {
	if f.createBooking != nil {
		return f.createBooking(ctx, req)
	}
	return api.Booking{}, nil
}

func (f *fakeGateway) UserBookings(ctx context.Context, userID string) ([]api.Booking, error) {
	if f.userBookings != nil {
		return f.userBookings(ctx, userID)
	}
	return nil, nil
}

func (f *fakeGateway) CancelBooking(ctx context.Context, bookingID string) error {
	if f.cancelBooking != nil {
		return f.cancelBooking(ctx, bookingID)
	}
	return nil
}

func (f *fakeGateway) UpdateBookingStatus(ctx context.Context, bookingID, status string) (api.Booking, error) {
	if f.updateBookingStatus != nil {
		return f.updateBookingStatus(ctx, bookingID, status)
	}
	return api.Booking{}, nil
}

func (f *fakeGateway) AddWishlistItem(ctx context.Context, userID, listingID string) (api.WishlistEntry, error) {
	if f.addWishlistItem != nil {
		return f.addWishlistItem(ctx, userID, listingID)
	}
	return api.WishlistEntry{}, nil
}

func (f *fakeGateway) RemoveWishlistItem(ctx context.Context, userID, listingID string) error {
	if f.removeWishlistItem != nil {
		return f.removeWishlistItem(ctx, userID, listingID)
	}
	return nil
}

func (f *fakeGateway) UserWishlist(ctx context.Context, userID string) ([]api.WishlistEntry, error) {
	if f.userWishlist != nil {
		return f.userWishlist(ctx, userID)
	}
	return nil, nil
}

// collect drains a resource stream to completion and returns every
// emitted state in order.
func collect[T any](t *testing.T, ch <-chan resource.Resource[T]) []resource.Resource[T] {
	t.Helper()
	if ch == nil {
		t.Fatalf("stream is nil")
	}

	var states []resource.Resource[T]
	timeout := time.After(5 * time.Second)
	for {
		select {
		case res, ok := <-ch:
			if !ok {
				return states
			}
			states = append(states, res)
		case <-timeout:
			t.Fatalf("stream did not settle; states so far: %v", len(states))
		}
	}
}
