// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/go-task-client/internal/service"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModel is the Bubble Tea model for the login screen. It renders two text inputs
// (e-mail and password) and dispatches an async login command on form submission.
// On success a [LoginResult] message is produced and handled by [RootModel] to finish
// the authentication flow.
type LoginModel struct {
	ctx  context.Context
	auth service.AuthService

	form       form
	submitting bool
	status     string
	errMsg     string
}

// NewLoginModel creates a [LoginModel] with pre-configured e-mail and password inputs.
// The e-mail field receives focus immediately; the password field uses masked echo.
func NewLoginModel(ctx context.Context, auth service.AuthService) *LoginModel {
	return &LoginModel{
		ctx:  ctx,
		auth: auth,
		form: newForm(
			formField{label: "Email", input: newInput("email", 40, false)},
			formField{label: "Password", input: newInput("password", 256, true)},
		),
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the active input.
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [LoginResult]     clears submitting state; on error, populates errMsg.
//   - [VerifiedNotice]  prefills the e-mail of a freshly verified account.
//   - esc               cancels and navigates back to the menu.
//   - enter             validates inputs and dispatches the async login command.
//
// All other key events are forwarded to the form.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoginResult:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = loginErrorMessage(msg.Err)
		}
		return m, nil

	case VerifiedNotice:
		m.form.setValue(0, msg.Email)
		m.form.setFocus(1)
		m.status = "Account verified, you can log in now"
		m.errMsg = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			m.status = ""
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case "enter":
			if m.submitting {
				return m, nil
			}

			email := m.form.value(0)
			pass := m.form.rawValue(1)
			if email == "" || pass == "" {
				m.errMsg = "Email and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.status = ""
			m.submitting = true
			return m, m.cmdLogin(email, pass)
		}
	}

	return m, m.form.update(msg)
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	var b strings.Builder
	m.form.view(&b)

	if m.submitting {
		b.WriteString("\n[Logging in...]\n")
	} else {
		b.WriteString("\n[Log in]\n")
	}
	renderMessages(&b, m.status, m.errMsg)

	return renderPage("LOG IN", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *LoginModel) cmdLogin(email, pass string) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		user, err := auth.Login(ctx, models.Credentials{Email: email, Password: pass})
		return LoginResult{User: user, Err: err}
	}
}

func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrWrongCredentials):
		return "Invalid email or password"
	case errors.Is(err, service.ErrAccountNotVerified):
		return "Account is not verified, use \"Verify account\" in the menu"
	case errors.Is(err, service.ErrIncompleteAuthResponse):
		return "The server returned an incomplete login response"
	default:
		return humanizeServerUnavailableError(err)
	}
}
