package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type staticTokens string

func (t staticTokens) Token() string { return string(t) }

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, tokens)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, server
}

func TestListings(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/listings" {
			t.Errorf("path = %s, want /listings", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "casita/") {
			t.Errorf("User-Agent = %q, want casita/ prefix", ua)
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("Authorization = %q, want unset without a token", auth)
		}
		_ = json.NewEncoder(w).Encode([]Listing{
			{ID: "l1", Title: "Canyon casita", PricePerNight: 120},
		})
	}), nil)

	listings, err := client.Listings(context.Background())
	if err != nil {
		t.Fatalf("Listings returned error: %v", err)
	}
	if len(listings) != 1 || listings[0].ID != "l1" {
		t.Fatalf("listings = %+v", listings)
	}
}

func TestLoginPostsCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("%s %s, want POST /auth/login", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Email != "maya@example.com" || body.Password != "hunter22" {
			t.Errorf("body = %+v", body)
		}
		_ = json.NewEncoder(w).Encode(LoginResponse{
			Token: "tok", UserID: "u1", Username: "maya", Email: body.Email,
		})
	}), nil)

	resp, err := client.Login(context.Background(), "maya@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.Token != "tok" || resp.UserID != "u1" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestAuthorizedRequestsCarryBearerToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want Bearer tok-123", got)
		}
		if r.URL.Path != "/users/u1/bookings" {
			t.Errorf("path = %s, want /users/u1/bookings", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]Booking{{BookingID: "b1"}})
	}), staticTokens("tok-123"))

	bookings, err := client.UserBookings(context.Background(), "u1")
	if err != nil {
		t.Fatalf("UserBookings returned error: %v", err)
	}
	if len(bookings) != 1 || bookings[0].BookingID != "b1" {
		t.Fatalf("bookings = %+v", bookings)
	}
}

func TestWishlistRoutes(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		switch r.Method {
		case http.MethodPost:
			_ = json.NewEncoder(w).Encode(WishlistEntry{ListingID: "l1"})
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			_ = json.NewEncoder(w).Encode([]WishlistEntry{{ListingID: "l1"}})
		}
	}), staticTokens("tok"))

	ctx := context.Background()

	if _, err := client.AddWishlistItem(ctx, "u1", "l1"); err != nil {
		t.Fatalf("AddWishlistItem: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/users/u1/wishlists/l1" {
		t.Fatalf("add route = %s %s", gotMethod, gotPath)
	}

	if err := client.RemoveWishlistItem(ctx, "u1", "l1"); err != nil {
		t.Fatalf("RemoveWishlistItem: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/users/u1/wishlists/l1" {
		t.Fatalf("remove route = %s %s", gotMethod, gotPath)
	}

	entries, err := client.UserWishlist(ctx, "u1")
	if err != nil {
		t.Fatalf("UserWishlist: %v", err)
	}
	if gotMethod != http.MethodGet || gotPath != "/users/u1/wishlists" {
		t.Fatalf("list route = %s %s", gotMethod, gotPath)
	}
	if len(entries) != 1 || entries[0].ListingID != "l1" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestBookingRoutes(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		switch {
		case r.Method == http.MethodPut:
			var body struct {
				Status string `json:"status"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			_ = json.NewEncoder(w).Encode(Booking{BookingID: "b1", Status: body.Status})
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			_ = json.NewEncoder(w).Encode(Booking{BookingID: "b1", Status: BookingStatusConfirmed})
		}
	}), staticTokens("tok"))

	ctx := context.Background()

	booking, err := client.CreateBooking(ctx, BookingRequest{ListingID: "l1", UserID: "u1"})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/bookings" {
		t.Fatalf("create route = %s %s", gotMethod, gotPath)
	}
	if booking.Status != BookingStatusConfirmed {
		t.Fatalf("booking = %+v", booking)
	}

	updated, err := client.UpdateBookingStatus(ctx, "b1", BookingStatusCancelled)
	if err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/bookings/b1/status" {
		t.Fatalf("status route = %s %s", gotMethod, gotPath)
	}
	if updated.Status != BookingStatusCancelled {
		t.Fatalf("updated = %+v", updated)
	}

	if err := client.CancelBooking(ctx, "b1"); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/bookings/b1" {
		t.Fatalf("delete route = %s %s", gotMethod, gotPath)
	}
}

func TestServerErrorCarriesStatusAndMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"User with this email already exists"}`))
	}), nil)

	_, err := client.Login(context.Background(), "maya@example.com", "hunter22")
	if err == nil {
		t.Fatalf("Login returned nil error, want server error")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.Kind != KindServer {
		t.Fatalf("Kind = %d, want KindServer", apiErr.Kind)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if got := UserMessage(err); got != "User with this email already exists" {
		t.Fatalf("UserMessage = %q", got)
	}
}

func TestServerErrorWithoutMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), nil)

	_, err := client.Listings(context.Background())
	if err == nil {
		t.Fatalf("Listings returned nil error")
	}
	if got := UserMessage(err); got != "Request failed with code: 500" {
		t.Fatalf("UserMessage = %q", got)
	}
}

func TestMalformedResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}), nil)

	_, err := client.Listings(context.Background())
	if err == nil {
		t.Fatalf("Listings returned nil error, want decode failure")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindMalformed {
		t.Fatalf("error = %v, want KindMalformed", err)
	}
}

func TestUnreachableServerIsConnectivity(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	client, err := NewClient(addr, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Listings(context.Background())
	if err == nil {
		t.Fatalf("Listings returned nil error against closed server")
	}
	if !IsConnectivity(err) {
		t.Fatalf("IsConnectivity = false for %v", err)
	}
	if got := UserMessage(err); got != ConnectivityMessage {
		t.Fatalf("UserMessage = %q, want fixed connectivity text", got)
	}
}

func TestParseBaseURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "http://" + defaultAPIBase},
		{"  10.0.0.5:9999  ", "http://10.0.0.5:9999"},
		{"https://api.example.com", "https://api.example.com"},
		{"http://api.example.com/extra/path?q=1", "http://api.example.com"},
	}
	for _, tc := range cases {
		u, err := parseBaseURL(tc.in)
		if err != nil {
			t.Fatalf("parseBaseURL(%q) error: %v", tc.in, err)
		}
		if u.String() != tc.want {
			t.Fatalf("parseBaseURL(%q) = %q, want %q", tc.in, u.String(), tc.want)
		}
	}
}
