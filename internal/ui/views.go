package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/casitahq/casita/internal/api"
	"github.com/casitahq/casita/internal/resource"
	"github.com/casitahq/casita/internal/session"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var body string
	switch m.currentView {
	case ViewHome:
		body = m.renderHome()
	case ViewWishlist:
		body = m.renderWishlist()
	case ViewTrips:
		body = m.renderTrips()
	case ViewAccount:
		body = m.renderAccount()
	case ViewBook:
		body = m.renderBook()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := "  "

	parts := []string{styles.Logo.Render("casita")}

	if m.snapshot.IsOffline() {
		parts = append(parts, styles.DangerText.Bold(true).Render("OFFLINE"))
	} else if m.snapshot.LastError != nil {
		parts = append(parts, styles.WarningText.Render("reconnecting..."))
	}

	sess := m.sessions.Current()
	if sess.Authenticated() {
		parts = append(parts, styles.SuccessText.Render("● "+sess.Username))
	} else {
		parts = append(parts, styles.MutedText.Render("○ guest"))
	}

	tabs := []struct {
		view  View
		label string
	}{
		{ViewHome, "[h] Home"},
		{ViewWishlist, "[w] Wishlist"},
		{ViewTrips, "[t] Trips"},
		{ViewAccount, "[a] Account"},
	}
	for _, tab := range tabs {
		if tab.view == m.currentView {
			parts = append(parts, styles.AccentText.Bold(true).Render(tab.label))
		} else {
			parts = append(parts, styles.MutedText.Render(tab.label))
		}
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	hints := "? help · T theme · q quit"
	switch m.currentView {
	case ViewHome:
		hints = "s save · b book · r refresh · " + hints
	case ViewWishlist:
		hints = "s unsave · b book · r refresh · " + hints
	case ViewTrips:
		hints = "x cancel · d remove · r refresh · " + hints
	case ViewAccount:
		if m.sessions.Authenticated() {
			hints = "enter sign out · " + hints
		} else {
			hints = "enter submit · ctrl+s login/signup · esc back"
		}
	case ViewBook:
		hints = "enter confirm · tab next field · esc back"
	}

	line := styles.FaintText.Render(hints)
	if m.status != "" {
		var statusStyle lipgloss.Style
		switch m.statusKind {
		case resource.StateError:
			statusStyle = styles.DangerText
		case resource.StateSuccess:
			statusStyle = styles.SuccessText
		default:
			statusStyle = styles.MutedText
		}
		line = statusStyle.Render(m.status) + styles.FaintText.Render("  ·  "+hints)
	}
	return line
}

func (m Model) renderHome() string {
	styles := m.theme.Styles()

	if len(m.snapshot.Listings) == 0 {
		if m.snapshot.LastError != nil {
			return styles.Panel.Render(styles.DangerText.Render(api.ConnectivityMessage))
		}
		return styles.Panel.Render(styles.MutedText.Render("Loading listings..."))
	}

	var rows []string
	for i, l := range m.snapshot.Listings {
		marker := "  "
		if m.wishlistCtl.Contains(l.ID) {
			marker = styles.AccentText.Render("♥ ")
		}
		line := fmt.Sprintf("%s%-32s %-20s $%.0f/night", marker, truncate(l.Title, 32), truncate(l.Location, 20), l.PricePerNight)
		if i == m.homeRow {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		rows = append(rows, line)
	}
	list := styles.Panel.Render(strings.Join(rows, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, list, m.renderListingDetail())
}

func (m Model) renderListingDetail() string {
	styles := m.theme.Styles()
	l := m.snapshot.Listings[m.homeRow]

	lines := []string{
		styles.AccentText.Bold(true).Render(l.Title),
		styles.MutedText.Render(l.Location),
		styles.Text.Render(truncate(l.Description, 240)),
		styles.MutedText.Render(fmt.Sprintf("%d beds · sleeps %d · hosted by %s", l.Beds, l.Guests, l.HostName)),
		styles.Text.Render(fmt.Sprintf("$%.2f per night", l.PricePerNight)),
	}
	return styles.PanelFocus.Render(strings.Join(lines, "\n"))
}

func (m Model) renderWishlist() string {
	styles := m.theme.Styles()

	if len(m.wishlistIDs) == 0 {
		if !m.sessions.Authenticated() {
			return styles.Panel.Render(styles.MutedText.Render("Log in to keep a wishlist."))
		}
		return styles.Panel.Render(styles.MutedText.Render("Nothing saved yet. Press s on a listing to save it."))
	}

	var rows []string
	for i, id := range m.wishlistIDs {
		var line string
		if l, ok := m.catalogStore.ByID(id); ok {
			line = fmt.Sprintf("%-32s %-20s $%.0f/night", truncate(l.Title, 32), truncate(l.Location, 20), l.PricePerNight)
		} else {
			// Catalog still loading; show the raw identifier.
			line = id
		}
		if i == m.wishlistRow {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		rows = append(rows, line)
	}
	return styles.Panel.Render(strings.Join(rows, "\n"))
}

func (m Model) renderTrips() string {
	styles := m.theme.Styles()

	if len(m.bookings) == 0 {
		if !m.sessions.Authenticated() {
			return styles.Panel.Render(styles.MutedText.Render("Log in to see your trips."))
		}
		return styles.Panel.Render(styles.MutedText.Render("No trips booked yet."))
	}

	var rows []string
	for i, b := range m.bookings {
		status := styles.SuccessText.Render(b.Status)
		if b.Status == api.BookingStatusCancelled {
			status = styles.DangerText.Render(b.Status)
		}
		line := fmt.Sprintf("%-28s %s → %s  %d guests  $%.2f  ",
			truncate(b.ListingTitle, 28), b.CheckInDate, b.CheckOutDate, b.NumberOfGuests, b.TotalPrice)
		if i == m.tripsRow {
			line = styles.Selected.Render(line) + status
		} else {
			line = styles.Text.Render(line) + status
		}
		rows = append(rows, line)
	}
	return styles.Panel.Render(strings.Join(rows, "\n"))
}

func (m Model) renderAccount() string {
	styles := m.theme.Styles()
	sess := m.sessions.Current()

	if sess.Authenticated() {
		lines := []string{
			styles.AccentText.Bold(true).Render(sess.Username),
			styles.Text.Render(sess.Email),
			styles.MutedText.Render("user id: " + sess.UserID),
		}
		if exp, ok := session.TokenExpiry(sess.Token); ok {
			lines = append(lines, styles.FaintText.Render("session expires "+exp.Format("2006-01-02 15:04")))
		}
		lines = append(lines, "", styles.MutedText.Render("Press enter to sign out."))
		return styles.Panel.Render(strings.Join(lines, "\n"))
	}

	return m.renderAuthForm()
}

func (m Model) renderAuthForm() string {
	styles := m.theme.Styles()
	f := m.authForm

	title := "Log in"
	hint := "ctrl+s to create an account instead"
	if f.mode == authSignup {
		title = "Create account"
		hint = "ctrl+s to log in instead"
	}

	lines := []string{styles.AccentText.Bold(true).Render(title)}

	renderField := func(label string, idx int) {
		lines = append(lines, styles.MutedText.Render(label), f.inputs[idx].View())
		if msg := f.errs.For(label); msg != "" {
			lines = append(lines, styles.DangerText.Render(msg))
		}
	}

	if f.mode == authSignup {
		renderField("username", 0)
	}
	renderField("email", 1)
	renderField("password", 2)

	if f.remoteErr != "" {
		lines = append(lines, "", styles.DangerText.Render(f.remoteErr))
	}
	if m.busy {
		lines = append(lines, "", styles.WarningText.Render("Signing in..."))
	}
	lines = append(lines, "", styles.FaintText.Render(hint))

	return styles.PanelFocus.Render(strings.Join(lines, "\n"))
}

func (m Model) renderBook() string {
	styles := m.theme.Styles()
	f := m.bookForm

	lines := []string{styles.AccentText.Bold(true).Render("Book your stay")}

	if l, ok := m.catalogStore.ByID(f.listingID); ok {
		nightly := fmt.Sprintf("$%.2f per night · sleeps %d", l.PricePerNight, l.Guests)
		lines = append(lines, styles.Text.Render(l.Title), styles.MutedText.Render(nightly), "")
	}

	labels := []string{"check-in", "check-out", "guests"}
	for i, label := range labels {
		lines = append(lines, styles.MutedText.Render(label), f.inputs[i].View())
	}

	if f.errMsg != "" {
		lines = append(lines, "", styles.DangerText.Render(f.errMsg))
	}
	if m.busy {
		lines = append(lines, "", styles.WarningText.Render("Booking..."))
	}

	return styles.PanelFocus.Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	lines := []string{
		styles.AccentText.Bold(true).Render("Casita keys"),
		"",
		"h / w / t / a   switch view (home, wishlist, trips, account)",
		"↑/k ↓/j         move selection",
		"s               save or unsave the selected listing",
		"b               book the selected listing",
		"x               cancel the selected booking",
		"d               remove the selected booking from the list",
		"r               refresh the current view",
		"T               cycle theme",
		"q / ctrl+c      quit",
		"",
		styles.FaintText.Render("Press any key to close."),
	}
	return styles.Panel.Render(strings.Join(lines, "\n"))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
