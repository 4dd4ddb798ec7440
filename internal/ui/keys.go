package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	Escape     key.Binding

	// View switching
	ViewHome     key.Binding
	ViewWishlist key.Binding
	ViewTrips    key.Binding
	ViewAccount  key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	ToggleWishlist key.Binding
	Book           key.Binding
	CancelBooking  key.Binding
	RemoveBooking  key.Binding
	Refresh        key.Binding
	Confirm        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),

		ViewHome: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "Home"),
		),
		ViewWishlist: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Wishlist"),
		),
		ViewTrips: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Trips"),
		),
		ViewAccount: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Account"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Down"),
		),

		ToggleWishlist: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Save/unsave listing"),
		),
		Book: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Book stay"),
		),
		CancelBooking: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Cancel booking"),
		),
		RemoveBooking: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Remove booking"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}
