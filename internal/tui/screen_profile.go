package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-task-client/internal/service"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// profileForm edits the logged-in user's own profile.
type profileForm struct {
	user   models.User
	form   form
	saving bool
	errMsg string
}

func newProfileForm(u models.User) profileForm {
	p := profileForm{
		user: u,
		form: newForm(
			formField{label: "Full name", input: newInput("full name", 40, false)},
			formField{label: "Email", input: newInput("email", 40, false)},
			formField{label: "Contact", input: newInput("phone", 13, false)},
		),
	}
	p.form.setValue(userFullName, u.DisplayName())
	p.form.setValue(userEmail, u.Email)
	p.form.setValue(userContact, u.Contact)
	return p
}

func (p profileForm) init() tea.Cmd {
	return textinput.Blink
}

// request lists only the changed fields.
func (p profileForm) request() models.UpdateUserRequest {
	var req models.UpdateUserRequest
	if v := p.form.value(userFullName); v != p.user.DisplayName() {
		req.FullName = v
	}
	if v := p.form.value(userEmail); v != p.user.Email {
		req.Email = v
	}
	if v := p.form.value(userContact); v != p.user.Contact {
		req.Contact = v
	}
	return req
}

func (p profileForm) view() string {
	var b strings.Builder
	p.form.view(&b)

	if p.saving {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save profile]\n")
	}
	renderMessages(&b, "", p.errMsg)

	return renderPage("MY PROFILE", strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: save │ esc: cancel")
}

func (m mainLoopModel) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &m.profile

	switch msg.String() {
	case "esc":
		m.screen = screenBoard
		return m, nil
	case "enter":
		if p.saving {
			return m, nil
		}
		req := p.request()
		if req == (models.UpdateUserRequest{}) {
			p.errMsg = "Nothing changed"
			return m, nil
		}
		p.saving, p.errMsg = true, ""
		ctx, auth := m.ctx, m.services.AuthService
		return m, func() tea.Msg {
			user, err := auth.UpdateProfile(ctx, req)
			return profileSavedMsg{user: user, err: err}
		}
	}

	cmd := p.form.update(msg)
	return m, cmd
}

func profileErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return "An account with this email already exists"
	case errors.Is(err, service.ErrValidation):
		return strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
	default:
		return humanizeServerUnavailableError(err)
	}
}
