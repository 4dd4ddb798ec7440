// Package app wires the Casita client together: configuration,
// preferences, the API client, the session and collection stores, the
// controllers, the catalog poller and the TUI.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/casitahq/casita/internal/api"
	"github.com/casitahq/casita/internal/catalog"
	"github.com/casitahq/casita/internal/config"
	"github.com/casitahq/casita/internal/controller"
	"github.com/casitahq/casita/internal/prefs"
	"github.com/casitahq/casita/internal/session"
	"github.com/casitahq/casita/internal/state"
	"github.com/casitahq/casita/internal/ui"
)

// Options configure the Casita application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/casita/prefs.toml
	PollEvery  int    // seconds; zero uses the configured value
}

// Run boots the Casita TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	sessions := &session.Store{}
	locals := &state.Store{}
	listings := &catalog.Store{}

	client, err := api.NewClient(cfg.APIBase, sessions)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	interval := time.Duration(cfg.PollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start the background catalog poller.
	StartPoller(ctx, listings, client, interval)

	// Do an initial refresh so the first frame has listings to show.
	refresh(ctx, listings, client)

	uiOpts := ui.Options{
		Context:   ctx,
		Catalog:   listings,
		Session:   controller.NewSession(client, sessions, locals),
		Wishlist:  controller.NewWishlist(client, sessions, locals),
		Bookings:  controller.NewBookings(client, sessions, locals, listings),
		Sessions:  sessions,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
