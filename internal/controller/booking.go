package controller

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/casitahq/casita/internal/api"
	"github.com/casitahq/casita/internal/catalog"
	"github.com/casitahq/casita/internal/resource"
	"github.com/casitahq/casita/internal/session"
	"github.com/casitahq/casita/internal/state"
)

const dateLayout = "2006-01-02"

// Bookings reconciles the local booking collection against the
// backend. Unlike the wishlist, creation is not optimistic: price and
// validity are server-determined, so the record is appended only after
// remote confirmation. Cancellation flips status optimistically with
// rollback; removal is a deliberate local-first action that is never
// rolled back.
type Bookings struct {
	gateway  api.Gateway
	sessions *session.Store
	locals   *state.Store
	catalog  *catalog.Store
}

// NewBookings builds a booking controller over the injected stores.
func NewBookings(gateway api.Gateway, sessions *session.Store, locals *state.Store, listings *catalog.Store) *Bookings {
	return &Bookings{gateway: gateway, sessions: sessions, locals: locals, catalog: listings}
}

// Create books a stay. Requires an authenticated session and a
// resolved listing in the catalog; both are checked before any network
// call. The total price is nights times the listing's nightly rate.
func (c *Bookings) Create(ctx context.Context, listingID, checkIn, checkOut string, guests int) <-chan resource.Resource[api.Booking] {
	out := make(chan resource.Resource[api.Booking], 2)
	go func() {
		defer close(out)

		sess := c.sessions.Current()
		if !sess.Authenticated() {
			out <- resource.Error[api.Booking]("You need to be logged in to book a stay.")
			return
		}
		listing, ok := c.catalog.ByID(listingID)
		if !ok {
			out <- resource.Error[api.Booking]("Listing details are unavailable. Try again in a moment.")
			return
		}
		nights, err := nightsBetween(checkIn, checkOut)
		if err != nil {
			out <- resource.Error[api.Booking](err.Error())
			return
		}
		if guests < 1 {
			out <- resource.Error[api.Booking]("At least one guest is required.")
			return
		}
		if listing.Guests > 0 && guests > listing.Guests {
			out <- resource.Errorf[api.Booking]("This place sleeps at most %d guests.", listing.Guests)
			return
		}
		epoch := c.sessions.Epoch()
		total := listing.PricePerNight * float64(nights)

		out <- resource.Loading[api.Booking]()

		created, err := c.gateway.CreateBooking(ctx, api.BookingRequest{
			ListingID:      listingID,
			UserID:         sess.UserID,
			CheckInDate:    checkIn,
			CheckOutDate:   checkOut,
			NumberOfGuests: guests,
			TotalPrice:     total,
		})
		if err != nil {
			// Nothing was appended, so nothing to roll back.
			out <- resource.Error[api.Booking](api.UserMessage(err))
			return
		}
		if c.sessions.Epoch() != epoch {
			return
		}

		booking := normalizeBooking(created, listing, sess.UserID, checkIn, checkOut, guests, total)
		c.locals.AppendBooking(booking)
		out <- resource.Success(booking)
	}()
	return out
}

// normalizeBooking fills fields a sparse server response may omit and
// synthesizes a prefixed local identifier when the server issued none.
// Server-issued identifiers win on the next Fetch reconciliation.
func normalizeBooking(b api.Booking, listing api.Listing, userID, checkIn, checkOut string, guests int, total float64) api.Booking {
	if b.BookingID == "" {
		b.BookingID = api.LocalBookingPrefix + uuid.NewString()
	}
	if b.ListingID == "" {
		b.ListingID = listing.ID
	}
	if b.ListingTitle == "" {
		b.ListingTitle = listing.Title
	}
	if b.ListingImageURL == "" {
		b.ListingImageURL = listing.ImageURL
	}
	if b.UserID == "" {
		b.UserID = userID
	}
	if b.CheckInDate == "" {
		b.CheckInDate = checkIn
	}
	if b.CheckOutDate == "" {
		b.CheckOutDate = checkOut
	}
	if b.NumberOfGuests == 0 {
		b.NumberOfGuests = guests
	}
	if b.TotalPrice == 0 {
		b.TotalPrice = total
	}
	if b.Status == "" {
		b.Status = api.BookingStatusConfirmed
	}
	return b
}

// Fetch serves the cached collection immediately, then revalidates
// against the server. When no user is logged in the collection resets
// to empty. A failed revalidation keeps serving the stale cache and is
// only logged; surfacing an error here would flap a UI that is already
// showing usable bookings.
func (c *Bookings) Fetch(ctx context.Context) <-chan resource.Resource[[]api.Booking] {
	out := make(chan resource.Resource[[]api.Booking], 2)
	go func() {
		defer close(out)

		sess := c.sessions.Current()
		if !sess.Authenticated() {
			c.locals.ReplaceBookings(nil)
			out <- resource.Success[[]api.Booking](nil)
			return
		}
		epoch := c.sessions.Epoch()

		out <- resource.Success(c.locals.Bookings())

		server, err := c.gateway.UserBookings(ctx, sess.UserID)
		if err != nil {
			log.Printf("bookings refresh failed, serving cached: %v", err)
			return
		}
		if c.sessions.Epoch() != epoch {
			return
		}
		c.locals.ReplaceBookings(server)
		out <- resource.Success(c.locals.Bookings())
	}()
	return out
}

// Cancel flips the booking's status to cancelled optimistically and
// confirms with the server; on failure the prior status is restored
// exactly. Unknown identifiers report an Error without mutation.
func (c *Bookings) Cancel(ctx context.Context, bookingID string) <-chan resource.Resource[[]api.Booking] {
	out := make(chan resource.Resource[[]api.Booking], 3)
	go func() {
		defer close(out)

		epoch := c.sessions.Epoch()
		prior, ok := c.locals.SetBookingStatus(bookingID, api.BookingStatusCancelled)
		if !ok {
			out <- resource.Error[[]api.Booking]("No booking found to cancel.")
			return
		}
		out <- resource.LoadingWith(c.locals.Bookings())

		if _, err := c.gateway.UpdateBookingStatus(ctx, bookingID, api.BookingStatusCancelled); err != nil {
			if c.sessions.Epoch() != epoch {
				return
			}
			c.locals.SetBookingStatus(bookingID, prior)
			out <- resource.Error[[]api.Booking](api.UserMessage(err))
			return
		}

		if c.sessions.Epoch() != epoch {
			return
		}
		out <- resource.Success(c.locals.Bookings())
	}()
	return out
}

// Remove deletes the booking locally and asks the server to cancel it.
// A remote failure is logged but never rolled back: removal is treated
// as a pure local action, unlike Cancel. The asymmetry is intentional
// and preserved from the original behavior.
func (c *Bookings) Remove(ctx context.Context, bookingID string) <-chan resource.Resource[[]api.Booking] {
	out := make(chan resource.Resource[[]api.Booking], 3)
	go func() {
		defer close(out)

		removed, ok := c.locals.RemoveBooking(bookingID)
		if !ok {
			out <- resource.Error[[]api.Booking]("No booking found to remove.")
			return
		}
		out <- resource.LoadingWith(c.locals.Bookings())

		if err := c.gateway.CancelBooking(ctx, bookingID); err != nil {
			log.Printf("remove booking %s: server cancel failed: %v", removed.BookingID, err)
		}
		out <- resource.Success(c.locals.Bookings())
	}()
	return out
}

// Cached returns the current local booking collection.
func (c *Bookings) Cached() []api.Booking {
	return c.locals.Bookings()
}

// nightsBetween parses two ISO dates and returns the stay length.
func nightsBetween(checkIn, checkOut string) (int, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return 0, errors.New("Check-in date must be YYYY-MM-DD.")
	}
	outDate, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return 0, errors.New("Check-out date must be YYYY-MM-DD.")
	}
	nights := int(outDate.Sub(in).Hours() / 24)
	if nights <= 0 {
		return 0, errors.New("Check-out must be after check-in.")
	}
	return nights, nil
}
