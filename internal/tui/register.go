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

const (
	signupFullName = iota
	signupEmail
	signupUsername
	signupContact
	signupPassword
	signupConfirm
)

// SignupModel is the signup screen. A successful signup opens the
// verification page for the new address.
type SignupModel struct {
	ctx  context.Context
	auth service.AuthService

	form       form
	submitting bool
	errMsg     string
}

func NewSignupModel(ctx context.Context, auth service.AuthService) *SignupModel {
	return &SignupModel{
		ctx:  ctx,
		auth: auth,
		form: newForm(
			formField{label: "Full name", input: newInput("4-40 characters", 40, false)},
			formField{label: "Email", input: newInput("email", 40, false)},
			formField{label: "Username", input: newInput("username", 20, false)},
			formField{label: "Contact", input: newInput("phone", 13, false)},
			formField{label: "Password", input: newInput("6-20 characters", 20, true)},
			formField{label: "Repeat", input: newInput("password again", 20, true)},
		),
	}
}

func (m *SignupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SignupResult:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = signupErrorMessage(msg.Err)
			return m, nil
		}
		m.errMsg = ""
		return m, func() tea.Msg {
			return NavigateTo{Page: pageVerify, Payload: VerifyPrefill{
				Email:  msg.Email,
				Notice: "Account created, check " + msg.Email + " for the verification token",
			}}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case "enter":
			if m.submitting {
				return m, nil
			}
			req, err := m.request()
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdSignup(req)
		}
	}

	return m, m.form.update(msg)
}

func (m *SignupModel) request() (models.SignupRequest, error) {
	if m.form.rawValue(signupPassword) != m.form.rawValue(signupConfirm) {
		return models.SignupRequest{}, errors.New("passwords do not match")
	}
	return models.SignupRequest{
		FullName: m.form.value(signupFullName),
		Email:    m.form.value(signupEmail),
		Username: m.form.value(signupUsername),
		Contact:  m.form.value(signupContact),
		Password: m.form.rawValue(signupPassword),
	}, nil
}

func (m *SignupModel) View() string {
	var b strings.Builder
	m.form.view(&b)

	if m.submitting {
		b.WriteString("\n[Signing up...]\n")
	} else {
		b.WriteString("\n[Sign up]\n")
	}
	renderMessages(&b, "", m.errMsg)

	return renderPage("SIGN UP", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *SignupModel) cmdSignup(req models.SignupRequest) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		return SignupResult{Email: req.Email, Err: auth.Signup(ctx, req)}
	}
}

func signupErrorMessage(err error) string {
	if errors.Is(err, service.ErrEmailTaken) {
		return "An account with this email already exists"
	}
	return humanizeServerUnavailableError(err)
}
