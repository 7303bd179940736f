package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-task-client/internal/service"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pwdCurrent = iota
	pwdNew
	pwdRepeat
)

type passwordForm struct {
	form   form
	saving bool
	errMsg string
}

func newPasswordForm() passwordForm {
	return passwordForm{
		form: newForm(
			formField{label: "Current password", input: newInput("current password", 20, true)},
			formField{label: "New password", input: newInput("6 to 20 characters", 20, true)},
			formField{label: "Repeat", input: newInput("new password again", 20, true)},
		),
	}
}

func (p passwordForm) init() tea.Cmd {
	return textinput.Blink
}

// request checks the form locally before anything is sent.
func (p passwordForm) request() (models.ChangePasswordRequest, error) {
	req := models.ChangePasswordRequest{
		CurrentPassword: p.form.rawValue(pwdCurrent),
		NewPassword:     p.form.rawValue(pwdNew),
	}
	switch {
	case req.CurrentPassword == "" || req.NewPassword == "":
		return req, errors.New("all fields are required")
	case req.NewPassword != p.form.rawValue(pwdRepeat):
		return req, errors.New("new passwords do not match")
	}
	return req, nil
}

func (p passwordForm) view() string {
	var b strings.Builder
	p.form.view(&b)

	if p.saving {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Change password]\n")
	}
	renderMessages(&b, "", p.errMsg)

	return renderPage("CHANGE PASSWORD", strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: save │ esc: cancel")
}

func (m mainLoopModel) updatePassword(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &m.password

	switch msg.String() {
	case "esc":
		m.screen = screenBoard
		return m, nil
	case "enter":
		if p.saving {
			return m, nil
		}
		req, err := p.request()
		if err != nil {
			p.errMsg = err.Error()
			return m, nil
		}
		p.saving, p.errMsg = true, ""
		ctx, auth := m.ctx, m.services.AuthService
		return m, func() tea.Msg {
			return passwordChangedMsg{err: auth.ChangePassword(ctx, req)}
		}
	}

	cmd := p.form.update(msg)
	return m, cmd
}

func passwordErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrWrongCurrentPassword):
		return "Current password is incorrect"
	case errors.Is(err, service.ErrValidation):
		return strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
	default:
		return humanizeServerUnavailableError(err)
	}
}
