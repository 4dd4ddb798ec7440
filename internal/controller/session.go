// Package controller orchestrates local/remote state reconciliation:
// optimistic mutation of the session-scoped collections, remote
// confirmation, and rollback on failure. Each asynchronous operation
// returns a receive-only stream of resource states; the stream is
// closed once the operation settles. The gateway call is the only
// suspension point; all store mutation is synchronous.
package controller

import (
	"context"
	"errors"

	"github.com/casitahq/casita/internal/api"
	"github.com/casitahq/casita/internal/resource"
	"github.com/casitahq/casita/internal/session"
	"github.com/casitahq/casita/internal/state"
)

// Session orchestrates login, signup and logout, gates submissions on
// client-side validation, and propagates authentication state to the
// local collections.
type Session struct {
	gateway  api.Gateway
	sessions *session.Store
	locals   *state.Store
}

// NewSession builds a session controller over the injected stores.
func NewSession(gateway api.Gateway, sessions *session.Store, locals *state.Store) *Session {
	return &Session{gateway: gateway, sessions: sessions, locals: locals}
}

// Login validates the form, then authenticates against the gateway.
// Invalid input returns the field errors and a nil stream: no network
// call is made and no resource state is emitted. On success the
// session is written atomically before Success is emitted; on failure
// the session is left unchanged.
func (c *Session) Login(ctx context.Context, email, password string) (<-chan resource.Resource[session.Session], FieldErrors) {
	if errs := ValidateLogin(email, password); len(errs) > 0 {
		return nil, errs
	}

	out := make(chan resource.Resource[session.Session], 2)
	go func() {
		defer close(out)
		c.doLogin(ctx, out, email, password)
	}()
	return out, nil
}

// Signup validates the stricter signup form, registers the account,
// and on success chains into the login flow with the same credentials
// on the same stream. Registration is not self-authenticating.
func (c *Session) Signup(ctx context.Context, username, email, password string) (<-chan resource.Resource[session.Session], FieldErrors) {
	if errs := ValidateSignup(username, email, password); len(errs) > 0 {
		return nil, errs
	}

	out := make(chan resource.Resource[session.Session], 4)
	go func() {
		defer close(out)

		out <- resource.Loading[session.Session]()
		if _, err := c.gateway.Signup(ctx, username, email, password); err != nil {
			out <- resource.Error[session.Session](signupMessage(err))
			return
		}
		c.doLogin(ctx, out, email, password)
	}()
	return out, nil
}

func (c *Session) doLogin(ctx context.Context, out chan<- resource.Resource[session.Session], email, password string) {
	out <- resource.Loading[session.Session]()

	resp, err := c.gateway.Login(ctx, email, password)
	if err != nil {
		out <- resource.Error[session.Session](api.UserMessage(err))
		return
	}

	sess := session.Session{
		Token:    resp.Token,
		UserID:   resp.UserID,
		Username: resp.Username,
		Email:    resp.Email,
	}
	c.sessions.Set(sess)
	out <- resource.Success(sess)
}

// Logout synchronously clears the session and cascades clearing of
// both local collections. No network call; idempotent.
func (c *Session) Logout() {
	c.sessions.Clear()
	c.locals.Clear()
}

// Authenticated reports the session invariant.
func (c *Session) Authenticated() bool {
	return c.sessions.Authenticated()
}

// Current returns a copy of the active session.
func (c *Session) Current() session.Session {
	return c.sessions.Current()
}

// signupMessage maps well-known registration failures to friendlier
// text than the raw server body.
func signupMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind == api.KindServer {
		switch apiErr.StatusCode {
		case 400:
			return "User with this email already exists"
		case 422:
			return "Invalid user data provided"
		}
	}
	return api.UserMessage(err)
}
