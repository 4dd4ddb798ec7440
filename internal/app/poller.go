package app

import (
	"context"
	"log"
	"time"

	"github.com/casitahq/casita/internal/api"
	"github.com/casitahq/casita/internal/catalog"
)

const defaultPollInterval = 30 * time.Second

// StartPoller launches a background goroutine that refreshes the
// listing catalog at a fixed cadence. It returns immediately.
func StartPoller(ctx context.Context, store *catalog.Store, client *api.Client, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			refresh(ctx, store, client)
		}
	}()
}

func refresh(ctx context.Context, store *catalog.Store, client *api.Client) {
	listings, err := client.Listings(ctx)
	if err != nil {
		store.Update(nil, err)
		log.Printf("catalog poll failed: %v", err)
		return
	}
	store.Update(listings, nil)
}
