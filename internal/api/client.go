// Package api implements the Casita marketplace gateway: the wire
// types, the Gateway interface consumed by the controllers, and the
// HTTP client that speaks to the backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Gateway is the remote boundary used by the controllers. It is
// implemented by *Client and faked in tests.
type Gateway interface {
	Listings(ctx context.Context) ([]Listing, error)
	ListingDetails(ctx context.Context, id string) (Listing, error)
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	Signup(ctx context.Context, username, email, password string) (SignupResponse, error)
	CreateBooking(ctx context.Context, req BookingRequest) (Booking, error)
	UserBookings(ctx context.Context, userID string) ([]Booking, error)
	CancelBooking(ctx context.Context, bookingID string) error
	UpdateBookingStatus(ctx context.Context, bookingID, status string) (Booking, error)
	AddWishlistItem(ctx context.Context, userID, listingID string) (WishlistEntry, error)
	RemoveWishlistItem(ctx context.Context, userID, listingID string) error
	UserWishlist(ctx context.Context, userID string) ([]WishlistEntry, error)
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)

// TokenSource supplies the current session credential. An empty token
// means no Authorization header is attached.
type TokenSource interface {
	Token() string
}

// Client talks to the Casita HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    TokenSource
	userAgent string
}

const (
	defaultAPIBase   = "127.0.0.1:3000"
	defaultUserAgent = "casita/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the provided base address. The tokens
// source may be nil for an unauthenticated client.
func NewClient(apiBase string, tokens TokenSource) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		tokens:    tokens,
		userAgent: defaultUserAgent,
	}, nil
}

// Listings retrieves the full listing catalog.
func (c *Client) Listings(ctx context.Context) ([]Listing, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Listing
	if err := c.do(ctx, http.MethodGet, "/listings", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ListingDetails retrieves a single listing.
func (c *Client) ListingDetails(ctx context.Context, id string) (Listing, error) {
	if c == nil {
		return Listing{}, fmt.Errorf("client is nil")
	}
	var payload Listing
	if err := c.do(ctx, http.MethodGet, "/listings/"+id, nil, &payload); err != nil {
		return Listing{}, err
	}
	return payload, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	if c == nil {
		return LoginResponse{}, fmt.Errorf("client is nil")
	}
	var payload LoginResponse
	body := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &payload); err != nil {
		return LoginResponse{}, err
	}
	return payload, nil
}

// Signup registers a new account. The caller is expected to follow up
// with Login; registration issues no credential.
func (c *Client) Signup(ctx context.Context, username, email, password string) (SignupResponse, error) {
	if c == nil {
		return SignupResponse{}, fmt.Errorf("client is nil")
	}
	var payload SignupResponse
	body := signupRequest{Username: username, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", body, &payload); err != nil {
		return SignupResponse{}, err
	}
	return payload, nil
}

// CreateBooking submits a booking and returns the server record.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (Booking, error) {
	if c == nil {
		return Booking{}, fmt.Errorf("client is nil")
	}
	var payload Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", req, &payload); err != nil {
		return Booking{}, err
	}
	return payload, nil
}

// UserBookings retrieves the bookings owned by userID.
func (c *Client) UserBookings(ctx context.Context, userID string) ([]Booking, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Booking
	path := "/users/" + userID + "/bookings"
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CancelBooking deletes a booking on the server.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodDelete, "/bookings/"+bookingID, nil, nil)
}

// UpdateBookingStatus transitions a booking's status.
func (c *Client) UpdateBookingStatus(ctx context.Context, bookingID, status string) (Booking, error) {
	if c == nil {
		return Booking{}, fmt.Errorf("client is nil")
	}
	var payload Booking
	path := "/bookings/" + bookingID + "/status"
	if err := c.do(ctx, http.MethodPut, path, statusUpdateRequest{Status: status}, &payload); err != nil {
		return Booking{}, err
	}
	return payload, nil
}

// AddWishlistItem adds a listing to the user's wishlist.
func (c *Client) AddWishlistItem(ctx context.Context, userID, listingID string) (WishlistEntry, error) {
	if c == nil {
		return WishlistEntry{}, fmt.Errorf("client is nil")
	}
	var payload WishlistEntry
	if err := c.do(ctx, http.MethodPost, wishlistPath(userID, listingID), nil, &payload); err != nil {
		return WishlistEntry{}, err
	}
	return payload, nil
}

// RemoveWishlistItem removes a listing from the user's wishlist.
func (c *Client) RemoveWishlistItem(ctx context.Context, userID, listingID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodDelete, wishlistPath(userID, listingID), nil, nil)
}

// UserWishlist retrieves the user's wishlist rows.
func (c *Client) UserWishlist(ctx context.Context, userID string) ([]WishlistEntry, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []WishlistEntry
	path := "/users/" + userID + "/wishlists"
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func wishlistPath(userID, listingID string) string {
	return "/users/" + userID + "/wishlists/" + listingID
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Credential attachment: the transport owns the Authorization
	// header so no caller can forget it.
	if c.tokens != nil {
		if token := strings.TrimSpace(c.tokens.Token()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return serverError(resp.StatusCode, readErrorMessage(resp.Body))
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return malformedError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// readErrorMessage extracts a display message from an error body,
// preferring a JSON {"message": ...} payload over raw text.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
