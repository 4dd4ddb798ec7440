package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrorKind partitions gateway failures for messaging decisions.
type ErrorKind int

const (
	// KindUnexpected covers failures that fit no other kind.
	KindUnexpected ErrorKind = iota
	// KindConnectivity means no call completed (DNS, refused, timeout).
	KindConnectivity
	// KindServer means the call completed with a failure status code.
	KindServer
	// KindMalformed means the response body could not be decoded.
	KindMalformed
)

// ConnectivityMessage is the fixed user-facing text for connectivity
// failures. The underlying transport detail is never shown.
const ConnectivityMessage = "Couldn't reach server. Check your internet connection."

// Error is a classified gateway failure.
type Error struct {
	Kind       ErrorKind
	StatusCode int    // set for KindServer
	Message    string // server-provided message, when any
	cause      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindConnectivity:
		return fmt.Sprintf("connectivity: %v", e.cause)
	case KindServer:
		if e.Message != "" {
			return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
		}
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	case KindMalformed:
		return fmt.Sprintf("malformed response: %v", e.cause)
	default:
		if e.cause != nil {
			return e.cause.Error()
		}
		return "unexpected error"
	}
}

func (e *Error) Unwrap() error { return e.cause }

// UserMessage reduces any gateway error to a single display string.
// Connectivity failures always collapse to ConnectivityMessage so the
// UI is retry-worthy without leaking transport detail.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case KindConnectivity:
			return ConnectivityMessage
		case KindServer:
			if msg := strings.TrimSpace(apiErr.Message); msg != "" {
				return msg
			}
			return fmt.Sprintf("Request failed with code: %d", apiErr.StatusCode)
		case KindMalformed:
			return "The server sent an unreadable response."
		}
	}
	if err != nil {
		return fmt.Sprintf("An unknown error occurred: %v", err)
	}
	return "An unknown error occurred"
}

// IsConnectivity reports whether err is a classified connectivity
// failure.
func IsConnectivity(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindConnectivity
}

func connectivityError(err error) *Error {
	return &Error{Kind: KindConnectivity, cause: err}
}

func serverError(status int, message string) *Error {
	return &Error{Kind: KindServer, StatusCode: status, Message: strings.TrimSpace(message)}
}

func malformedError(err error) *Error {
	return &Error{Kind: KindMalformed, cause: err}
}

// classifyTransport wraps an http.Client.Do failure. Anything that
// prevented a response (dial, DNS, timeout, cancelled context) counts
// as connectivity.
func classifyTransport(err error) *Error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return connectivityError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return connectivityError(err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return connectivityError(err)
	}
	return &Error{Kind: KindUnexpected, cause: err}
}
