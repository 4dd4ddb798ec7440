package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casitahq/casita/internal/api"
	"github.com/casitahq/casita/internal/resource"
	"github.com/casitahq/casita/internal/session"
	"github.com/casitahq/casita/internal/state"
)

func newWishlistController(gw api.Gateway) (*Wishlist, *session.Store, *state.Store) {
	sessions := &session.Store{}
	sessions.Set(session.Session{Token: "tok", UserID: "u1", Username: "maya"})
	locals := &state.Store{}
	return NewWishlist(gw, sessions, locals), sessions, locals
}

func TestToggleRequiresLogin(t *testing.T) {
	called := false
	gw := &fakeGateway{
		addWishlistItem: func(context.Context, string, string) (api.WishlistEntry, error) {
			called = true
			return api.WishlistEntry{}, nil
		},
	}
	sessions := &session.Store{}
	locals := &state.Store{}
	ctl := NewWishlist(gw, sessions, locals)

	states := collect(t, ctl.Toggle(context.Background(), "l1", true))
	require.Len(t, states, 1)
	assert.Equal(t, resource.StateError, states[0].State)
	assert.False(t, called)
	assert.Empty(t, locals.WishlistIDs())
}

func TestToggleAddOptimisticThenConfirmed(t *testing.T) {
	gw := &fakeGateway{
		addWishlistItem: func(_ context.Context, userID, listingID string) (api.WishlistEntry, error) {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, "l1", listingID)
			return api.WishlistEntry{ListingID: listingID}, nil
		},
	}
	ctl, _, locals := newWishlistController(gw)

	states := collect(t, ctl.Toggle(context.Background(), "l1", true))
	require.Len(t, states, 2)

	// The loading state already carries the optimistic membership.
	assert.Equal(t, resource.StateLoading, states[0].State)
	assert.Contains(t, states[0].Value, "l1")

	assert.Equal(t, resource.StateSuccess, states[1].State)
	assert.Contains(t, states[1].Value, "l1")
	assert.True(t, locals.InWishlist("l1"))
}

func TestToggleAddFailureRollsBack(t *testing.T) {
	gw := &fakeGateway{
		addWishlistItem: func(context.Context, string, string) (api.WishlistEntry, error) {
			return api.WishlistEntry{}, errors.New("boom")
		},
	}
	ctl, _, locals := newWishlistController(gw)

	states := collect(t, ctl.Toggle(context.Background(), "l1", true))
	require.Len(t, states, 2)
	assert.Equal(t, resource.StateError, states[1].State)

	// Net effect is exactly as if the toggle never happened.
	assert.False(t, locals.InWishlist("l1"))
}

func TestToggleRemoveFailureRestoresMembership(t *testing.T) {
	gw := &fakeGateway{
		removeWishlistItem: func(context.Context, string, string) error {
			return errors.New("boom")
		},
	}
	ctl, _, locals := newWishlistController(gw)
	locals.AddWishlist("l1")

	states := collect(t, ctl.Toggle(context.Background(), "l1", false))
	require.Len(t, states, 2)
	assert.Equal(t, resource.StateLoading, states[0].State)
	assert.NotContains(t, states[0].Value, "l1")
	assert.Equal(t, resource.StateError, states[1].State)

	assert.True(t, locals.InWishlist("l1"))
}

func TestToggleNoopFailureDoesNotRollBack(t *testing.T) {
	gw := &fakeGateway{
		addWishlistItem: func(context.Context, string, string) (api.WishlistEntry, error) {
			return api.WishlistEntry{}, errors.New("boom")
		},
	}
	ctl, _, locals := newWishlistController(gw)
	locals.AddWishlist("l1")

	// Adding an already-present listing changes nothing, so the
	// failure must not remove it either.
	states := collect(t, ctl.Toggle(context.Background(), "l1", true))
	assert.Equal(t, resource.StateError, states[len(states)-1].State)
	assert.True(t, locals.InWishlist("l1"))
}

func TestToggleDiscardsCompletionAfterLogout(t *testing.T) {
	ctl, sessions, locals := newWishlistController(nil)
	locals.AddWishlist("seed")

	gw := &fakeGateway{
		addWishlistItem: func(context.Context, string, string) (api.WishlistEntry, error) {
			// Session changes while the request is in flight.
			sessions.Clear()
			locals.Clear()
			return api.WishlistEntry{}, errors.New("boom")
		},
	}
	ctl = NewWishlist(gw, sessions, locals)

	states := collect(t, ctl.Toggle(context.Background(), "l1", true))

	// The stream settles with no Error emission and no rollback: the
	// logged-out store stays empty.
	require.Len(t, states, 1)
	assert.Equal(t, resource.StateLoading, states[0].State)
	assert.Empty(t, locals.WishlistIDs())
}

func TestRefreshReplacesSetWithServerSnapshot(t *testing.T) {
	gw := &fakeGateway{
		userWishlist: func(_ context.Context, userID string) ([]api.WishlistEntry, error) {
			assert.Equal(t, "u1", userID)
			return []api.WishlistEntry{{ListingID: "l2"}, {ListingID: "l3"}}, nil
		},
	}
	ctl, _, locals := newWishlistController(gw)
	locals.AddWishlist("l1")

	states := collect(t, ctl.Refresh(context.Background()))
	require.Len(t, states, 2)
	assert.Equal(t, resource.StateLoading, states[0].State)
	assert.Contains(t, states[0].Value, "l1")

	assert.Equal(t, resource.StateSuccess, states[1].State)
	assert.ElementsMatch(t, []string{"l2", "l3"}, states[1].Value)

	// Replaced, not merged.
	assert.False(t, locals.InWishlist("l1"))
	assert.True(t, ctl.Contains("l2"))
	assert.ElementsMatch(t, []string{"l2", "l3"}, ctl.IDs())
}

func TestRefreshIsIdempotent(t *testing.T) {
	gw := &fakeGateway{
		userWishlist: func(context.Context, string) ([]api.WishlistEntry, error) {
			return []api.WishlistEntry{{ListingID: "l1"}}, nil
		},
	}
	ctl, _, locals := newWishlistController(gw)

	collect(t, ctl.Refresh(context.Background()))
	first := locals.WishlistIDs()

	collect(t, ctl.Refresh(context.Background()))
	assert.ElementsMatch(t, first, locals.WishlistIDs())
}

func TestRefreshFailureKeepsLocalSet(t *testing.T) {
	gw := &fakeGateway{
		userWishlist: func(context.Context, string) ([]api.WishlistEntry, error) {
			return nil, errors.New("boom")
		},
	}
	ctl, _, locals := newWishlistController(gw)
	locals.AddWishlist("l1")

	states := collect(t, ctl.Refresh(context.Background()))
	assert.Equal(t, resource.StateError, states[len(states)-1].State)
	assert.True(t, locals.InWishlist("l1"))
}

func TestRefreshLoggedOutResetsSet(t *testing.T) {
	called := false
	gw := &fakeGateway{
		userWishlist: func(context.Context, string) ([]api.WishlistEntry, error) {
			called = true
			return nil, nil
		},
	}
	sessions := &session.Store{}
	locals := &state.Store{}
	locals.AddWishlist("stale")
	ctl := NewWishlist(gw, sessions, locals)

	states := collect(t, ctl.Refresh(context.Background()))
	require.Len(t, states, 1)
	assert.Equal(t, resource.StateSuccess, states[0].State)
	assert.Empty(t, states[0].Value)
	assert.False(t, called)
	assert.Empty(t, locals.WishlistIDs())
}
