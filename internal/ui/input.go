package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/casitahq/casita/internal/prefs"
	"github.com/casitahq/casita/internal/resource"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Forms own the keyboard while active.
	if m.currentView == ViewAccount && !m.sessionCtl.Authenticated() {
		return m.handleAuthKey(msg)
	}
	if m.currentView == ViewBook {
		return m.handleBookKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = NextTheme(m.theme.Name)
		_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		return m, nil

	case key.Matches(msg, m.keys.ViewHome):
		m.currentView = ViewHome
		return m, nil

	case key.Matches(msg, m.keys.ViewWishlist):
		m.currentView = ViewWishlist
		return m, waitWishlist(m.wishlistCtl.Refresh(m.ctx))

	case key.Matches(msg, m.keys.ViewTrips):
		m.currentView = ViewTrips
		return m, waitBookingList(m.bookingCtl.Fetch(m.ctx))

	case key.Matches(msg, m.keys.ViewAccount):
		m.currentView = ViewAccount
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCurrent()

	case key.Matches(msg, m.keys.ToggleWishlist):
		return m.toggleWishlist()

	case key.Matches(msg, m.keys.Book):
		return m.openBookForm()

	case key.Matches(msg, m.keys.CancelBooking):
		return m.cancelSelectedBooking()

	case key.Matches(msg, m.keys.RemoveBooking):
		return m.removeSelectedBooking()

	case key.Matches(msg, m.keys.Confirm):
		if m.currentView == ViewAccount && m.sessionCtl.Authenticated() {
			m.sessionCtl.Logout()
			m.wishlistIDs = nil
			m.bookings = nil
			m.setStatus(resource.StateIdle, "Signed out")
			return m, nil
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.currentView {
	case ViewHome:
		m.homeRow += delta
	case ViewWishlist:
		m.wishlistRow += delta
	case ViewTrips:
		m.tripsRow += delta
	}
	m.clampRows()
}

func (m Model) refreshCurrent() tea.Cmd {
	switch m.currentView {
	case ViewWishlist:
		return waitWishlist(m.wishlistCtl.Refresh(m.ctx))
	case ViewTrips:
		return waitBookingList(m.bookingCtl.Fetch(m.ctx))
	default:
		return fetchCatalogCmd(m.catalogStore)
	}
}

func (m Model) toggleWishlist() (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewHome:
		if len(m.snapshot.Listings) == 0 {
			return m, nil
		}
		id := m.snapshot.Listings[m.homeRow].ID
		add := !m.wishlistCtl.Contains(id)
		return m, waitWishlist(m.wishlistCtl.Toggle(m.ctx, id, add))
	case ViewWishlist:
		if len(m.wishlistIDs) == 0 {
			return m, nil
		}
		id := m.wishlistIDs[m.wishlistRow]
		return m, waitWishlist(m.wishlistCtl.Toggle(m.ctx, id, false))
	}
	return m, nil
}

func (m Model) openBookForm() (tea.Model, tea.Cmd) {
	if m.currentView != ViewHome && m.currentView != ViewWishlist {
		return m, nil
	}
	var listingID string
	switch m.currentView {
	case ViewHome:
		if len(m.snapshot.Listings) == 0 {
			return m, nil
		}
		listingID = m.snapshot.Listings[m.homeRow].ID
	case ViewWishlist:
		if len(m.wishlistIDs) == 0 {
			return m, nil
		}
		listingID = m.wishlistIDs[m.wishlistRow]
	}
	if !m.sessionCtl.Authenticated() {
		m.setStatus(resource.StateError, "You need to be logged in to book a stay.")
		m.currentView = ViewAccount
		return m, nil
	}
	m.bookForm.open(listingID)
	m.currentView = ViewBook
	return m, nil
}

func (m Model) cancelSelectedBooking() (tea.Model, tea.Cmd) {
	if m.currentView != ViewTrips || len(m.bookings) == 0 {
		return m, nil
	}
	id := m.bookings[m.tripsRow].BookingID
	return m, waitBookingList(m.bookingCtl.Cancel(m.ctx, id))
}

func (m Model) removeSelectedBooking() (tea.Model, tea.Cmd) {
	if m.currentView != ViewTrips || len(m.bookings) == 0 {
		return m, nil
	}
	id := m.bookings[m.tripsRow].BookingID
	return m, waitBookingList(m.bookingCtl.Remove(m.ctx, id))
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.authForm

	switch msg.String() {
	case "esc":
		m.currentView = ViewHome
		return m, nil
	case "ctrl+s":
		f.switchMode()
		return m, nil
	case "tab", "shift+tab", "up", "down":
		f.cycleFocus(msg.String() == "shift+tab" || msg.String() == "up")
		return m, nil
	case "enter":
		return m.submitAuth()
	}

	cmd := f.updateInputs(msg)
	return m, cmd
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	f := &m.authForm
	f.remoteErr = ""

	if f.mode == authLogin {
		ch, errs := m.sessionCtl.Login(m.ctx, f.email(), f.password())
		if len(errs) > 0 {
			f.errs = errs
			return m, nil
		}
		f.errs = nil
		return m, waitAuth(ch)
	}

	ch, errs := m.sessionCtl.Signup(m.ctx, f.username(), f.email(), f.password())
	if len(errs) > 0 {
		f.errs = errs
		return m, nil
	}
	f.errs = nil
	return m, waitAuth(ch)
}

func (m Model) handleBookKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.bookForm

	switch msg.String() {
	case "esc":
		f.reset()
		m.currentView = ViewHome
		return m, nil
	case "tab", "shift+tab", "up", "down":
		f.cycleFocus(msg.String() == "shift+tab" || msg.String() == "up")
		return m, nil
	case "enter":
		return m.submitBooking()
	}

	cmd := f.updateInputs(msg)
	return m, cmd
}

func (m Model) submitBooking() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	f := &m.bookForm

	guestsRaw := strings.TrimSpace(f.inputs[2].Value())
	guests, err := strconv.Atoi(guestsRaw)
	if err != nil {
		f.errMsg = "Guests must be a number."
		return m, nil
	}

	checkIn := strings.TrimSpace(f.inputs[0].Value())
	checkOut := strings.TrimSpace(f.inputs[1].Value())
	return m, waitBookingCreate(m.bookingCtl.Create(m.ctx, f.listingID, checkIn, checkOut, guests))
}
