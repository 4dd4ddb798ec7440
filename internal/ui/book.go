package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// bookForm holds the booking form state for a single listing.
type bookForm struct {
	listingID string
	inputs    [3]textinput.Model // check-in, check-out, guests
	focusIdx  int
	errMsg    string
}

func newBookForm() bookForm {
	f := bookForm{}

	checkIn := textinput.New()
	checkIn.Placeholder = "check-in (YYYY-MM-DD)"
	checkIn.CharLimit = 10

	checkOut := textinput.New()
	checkOut.Placeholder = "check-out (YYYY-MM-DD)"
	checkOut.CharLimit = 10

	guests := textinput.New()
	guests.Placeholder = "guests"
	guests.CharLimit = 2

	f.inputs = [3]textinput.Model{checkIn, checkOut, guests}
	f.applyFocus()
	return f
}

func (f *bookForm) open(listingID string) {
	f.reset()
	f.listingID = listingID
}

func (f *bookForm) cycleFocus(reverse bool) {
	n := len(f.inputs)
	if reverse {
		f.focusIdx = (f.focusIdx - 1 + n) % n
	} else {
		f.focusIdx = (f.focusIdx + 1) % n
	}
	f.applyFocus()
}

func (f *bookForm) applyFocus() {
	for i := range f.inputs {
		if i == f.focusIdx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *bookForm) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focusIdx], cmd = f.inputs[f.focusIdx].Update(msg)
	return cmd
}

func (f *bookForm) reset() {
	f.listingID = ""
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.errMsg = ""
	f.focusIdx = 0
	f.applyFocus()
}
