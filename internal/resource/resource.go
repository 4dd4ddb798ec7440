// Package resource defines the envelope every asynchronous operation
// emits: Idle, Loading, Success or Error. Controllers publish streams
// of Resource values; consumers render whatever state arrives last.
package resource

import "fmt"

// State identifies the phase of an asynchronous operation.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Resource wraps an operation outcome. Value is meaningful when
// HasValue is set: always for Success, optionally for Loading when a
// last-known value is being carried.
type Resource[T any] struct {
	State    State
	Value    T
	HasValue bool
	Err      string
}

// Idle is the rest state before any operation and after logout.
func Idle[T any]() Resource[T] {
	return Resource[T]{State: StateIdle}
}

// Loading marks an operation in flight with no value to show.
func Loading[T any]() Resource[T] {
	return Resource[T]{State: StateLoading}
}

// LoadingWith marks an operation in flight while carrying the
// last-known value for display.
func LoadingWith[T any](value T) Resource[T] {
	return Resource[T]{State: StateLoading, Value: value, HasValue: true}
}

// Success wraps a settled value.
func Success[T any](value T) Resource[T] {
	return Resource[T]{State: StateSuccess, Value: value, HasValue: true}
}

// Error wraps a user-facing failure message.
func Error[T any](message string) Resource[T] {
	return Resource[T]{State: StateError, Err: message}
}

// Errorf formats a user-facing failure message.
func Errorf[T any](format string, args ...any) Resource[T] {
	return Resource[T]{State: StateError, Err: fmt.Sprintf(format, args...)}
}

// IsTerminal reports whether the state settles the operation. Error is
// non-terminal across operations (a retry re-enters Loading) but both
// Success and Error settle a single stream.
func (r Resource[T]) IsTerminal() bool {
	return r.State == StateSuccess || r.State == StateError
}
