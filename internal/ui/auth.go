package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/casitahq/casita/internal/controller"
)

type authMode int

const (
	authLogin authMode = iota
	authSignup
)

// authForm holds the login/signup form state. Field values survive
// validation failures; messages only annotate.
type authForm struct {
	mode      authMode
	inputs    [3]textinput.Model // username, email, password
	focusIdx  int
	errs      controller.FieldErrors
	remoteErr string
}

func newAuthForm() authForm {
	f := authForm{}

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 20

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	f.inputs = [3]textinput.Model{username, email, password}
	f.focusIdx = f.firstField()
	f.applyFocus()
	return f
}

func (f *authForm) username() string { return f.inputs[0].Value() }
func (f *authForm) email() string    { return f.inputs[1].Value() }
func (f *authForm) password() string { return f.inputs[2].Value() }

// firstField returns the index of the first visible field for the
// current mode; login hides the username input.
func (f *authForm) firstField() int {
	if f.mode == authSignup {
		return 0
	}
	return 1
}

func (f *authForm) switchMode() {
	if f.mode == authLogin {
		f.mode = authSignup
	} else {
		f.mode = authLogin
	}
	f.errs = nil
	f.remoteErr = ""
	f.focusIdx = f.firstField()
	f.applyFocus()
}

func (f *authForm) cycleFocus(reverse bool) {
	first := f.firstField()
	span := len(f.inputs) - first
	offset := f.focusIdx - first
	if reverse {
		offset = (offset - 1 + span) % span
	} else {
		offset = (offset + 1) % span
	}
	f.focusIdx = first + offset
	f.applyFocus()
}

func (f *authForm) applyFocus() {
	for i := range f.inputs {
		if i == f.focusIdx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *authForm) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focusIdx], cmd = f.inputs[f.focusIdx].Update(msg)
	return cmd
}

func (f *authForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.errs = nil
	f.remoteErr = ""
	f.focusIdx = f.firstField()
	f.applyFocus()
}
