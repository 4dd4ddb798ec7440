package controller

import (
	"context"

	"github.com/casitahq/casita/internal/api"
	"github.com/casitahq/casita/internal/resource"
	"github.com/casitahq/casita/internal/session"
	"github.com/casitahq/casita/internal/state"
)

// Wishlist reconciles the local wishlist membership set against the
// backend. Toggles are optimistic with exact rollback; refreshes
// replace the set wholesale with the server snapshot.
type Wishlist struct {
	gateway  api.Gateway
	sessions *session.Store
	locals   *state.Store
}

// NewWishlist builds a wishlist controller over the injected stores.
func NewWishlist(gateway api.Gateway, sessions *session.Store, locals *state.Store) *Wishlist {
	return &Wishlist{gateway: gateway, sessions: sessions, locals: locals}
}

// Toggle adds (add=true) or removes a listing from the wishlist. The
// local set is patched immediately and the remote call confirms it; on
// remote failure the patch is reverted so the net effect is exactly as
// if the toggle never happened. The projected value is the membership
// set after each step.
func (c *Wishlist) Toggle(ctx context.Context, listingID string, add bool) <-chan resource.Resource[[]string] {
	out := make(chan resource.Resource[[]string], 3)
	go func() {
		defer close(out)

		sess := c.sessions.Current()
		if !sess.Authenticated() {
			out <- resource.Error[[]string]("You need to be logged in to save listings.")
			return
		}
		epoch := c.sessions.Epoch()

		var changed bool
		if add {
			changed = c.locals.AddWishlist(listingID)
		} else {
			changed = c.locals.RemoveWishlist(listingID)
		}
		out <- resource.LoadingWith(c.locals.WishlistIDs())

		var err error
		if add {
			_, err = c.gateway.AddWishlistItem(ctx, sess.UserID, listingID)
		} else {
			err = c.gateway.RemoveWishlistItem(ctx, sess.UserID, listingID)
		}
		if err != nil {
			if c.sessions.Epoch() != epoch {
				// Session changed while in flight; the optimistic
				// patch is already gone with it. Discard.
				return
			}
			if changed {
				if add {
					c.locals.RemoveWishlist(listingID)
				} else {
					c.locals.AddWishlist(listingID)
				}
			}
			out <- resource.Error[[]string](api.UserMessage(err))
			return
		}

		if c.sessions.Epoch() != epoch {
			return
		}
		out <- resource.Success(c.locals.WishlistIDs())
	}()
	return out
}

// Refresh reconciles the membership set with the server. When no user
// is logged in the set is reset to empty. On success the local set is
// replaced, not merged; on failure local state is left untouched so a
// flaky refresh never destroys usable offline data.
func (c *Wishlist) Refresh(ctx context.Context) <-chan resource.Resource[[]string] {
	out := make(chan resource.Resource[[]string], 2)
	go func() {
		defer close(out)

		sess := c.sessions.Current()
		if !sess.Authenticated() {
			c.locals.ReplaceWishlist(nil)
			out <- resource.Success[[]string](nil)
			return
		}
		epoch := c.sessions.Epoch()

		out <- resource.LoadingWith(c.locals.WishlistIDs())

		entries, err := c.gateway.UserWishlist(ctx, sess.UserID)
		if err != nil {
			out <- resource.Error[[]string](api.UserMessage(err))
			return
		}
		if c.sessions.Epoch() != epoch {
			return
		}

		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ListingID)
		}
		c.locals.ReplaceWishlist(ids)
		out <- resource.Success(c.locals.WishlistIDs())
	}()
	return out
}

// Contains reports current local membership for a listing.
func (c *Wishlist) Contains(listingID string) bool {
	return c.locals.InWishlist(listingID)
}

// IDs returns a copy of the current local membership set.
func (c *Wishlist) IDs() []string {
	return c.locals.WishlistIDs()
}
