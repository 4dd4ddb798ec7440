package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/casitahq/casita/internal/api"
	"github.com/casitahq/casita/internal/catalog"
	"github.com/casitahq/casita/internal/resource"
	"github.com/casitahq/casita/internal/session"
)

type tickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type catalogMsg catalog.Snapshot

func fetchCatalogCmd(store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		return catalogMsg(store.Snapshot())
	}
}

// Controller streams are drained one receive per command; each message
// carries the channel so Update can re-issue the wait until the stream
// closes.

type authMsg struct {
	res resource.Resource[session.Session]
	ch  <-chan resource.Resource[session.Session]
	ok  bool
}

type wishlistMsg struct {
	res resource.Resource[[]string]
	ch  <-chan resource.Resource[[]string]
	ok  bool
}

type bookingListMsg struct {
	res resource.Resource[[]api.Booking]
	ch  <-chan resource.Resource[[]api.Booking]
	ok  bool
}

type bookingCreateMsg struct {
	res resource.Resource[api.Booking]
	ch  <-chan resource.Resource[api.Booking]
	ok  bool
}

func waitAuth(ch <-chan resource.Resource[session.Session]) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		return authMsg{res: res, ch: ch, ok: ok}
	}
}

func waitWishlist(ch <-chan resource.Resource[[]string]) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		return wishlistMsg{res: res, ch: ch, ok: ok}
	}
}

func waitBookingList(ch <-chan resource.Resource[[]api.Booking]) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		return bookingListMsg{res: res, ch: ch, ok: ok}
	}
}

func waitBookingCreate(ch <-chan resource.Resource[api.Booking]) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		return bookingCreateMsg{res: res, ch: ch, ok: ok}
	}
}
