package api

// Listing is a read-only catalog entity. Listings are never mutated
// locally; the catalog store replaces them wholesale on refresh.
type Listing struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	PricePerNight float64 `json:"pricePerNight"`
	ImageURL      string  `json:"imageUrl"`
	Location      string  `json:"location"`
	Beds          int     `json:"beds"`
	Guests        int     `json:"guests"`
	HostName      string  `json:"hostName"`
}

// Booking status values understood by the client.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// LocalBookingPrefix marks booking identifiers synthesized on the
// client before a server-issued identifier has been reconciled.
const LocalBookingPrefix = "local_"

// Booking is a user booking record. Title and image URL are
// denormalized display copies of the listing they were booked from.
type Booking struct {
	BookingID       string  `json:"bookingId"`
	ListingID       string  `json:"listingId"`
	ListingTitle    string  `json:"listingTitle"`
	ListingImageURL string  `json:"listingImageUrl"`
	UserID          string  `json:"userId"`
	CheckInDate     string  `json:"checkInDate"`
	CheckOutDate    string  `json:"checkOutDate"`
	NumberOfGuests  int     `json:"numberOfGuests"`
	TotalPrice      float64 `json:"totalPrice"`
	Status          string  `json:"status"`
}

// BookingRequest is the payload for POST /bookings.
type BookingRequest struct {
	ListingID      string  `json:"listingId"`
	UserID         string  `json:"userId"`
	CheckInDate    string  `json:"checkInDate"`
	CheckOutDate   string  `json:"checkOutDate"`
	NumberOfGuests int     `json:"numberOfGuests"`
	TotalPrice     float64 `json:"totalPrice"`
}

// WishlistEntry mirrors a server wishlist row.
type WishlistEntry struct {
	WishlistItemID  string  `json:"wishlistItemId"`
	ListingID       string  `json:"listingId"`
	ListingTitle    string  `json:"listingTitle"`
	ListingImageURL string  `json:"listingImageUrl"`
	Location        string  `json:"location"`
	PricePerNight   float64 `json:"pricePerNight"`
}

// LoginResponse mirrors POST /auth/login.
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message,omitempty"`
}

// SignupResponse mirrors POST /auth/signup. Signup does not
// authenticate by itself; no token is issued here.
type SignupResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}
