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

// VerifyModel confirms an e-mail address with the token sent to it.
// ctrl+r asks the backend to send a new token.
type VerifyModel struct {
	ctx  context.Context
	auth service.AuthService

	form       form
	submitting bool
	status     string
	errMsg     string
}

func NewVerifyModel(ctx context.Context, auth service.AuthService) *VerifyModel {
	return &VerifyModel{
		ctx:  ctx,
		auth: auth,
		form: newForm(
			formField{label: "Email", input: newInput("email", 40, false)},
			formField{label: "Token", input: newInput("verification token", 64, false)},
		),
	}
}

func (m *VerifyModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *VerifyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case VerifyPrefill:
		m.form.setValue(0, msg.Email)
		m.form.setFocus(1)
		m.status = msg.Notice
		m.errMsg = ""
		return m, nil

	case VerifyResult:
		m.submitting = false
		if msg.Err != nil {
			m.status = ""
			m.errMsg = verifyErrorMessage(msg.Err)
			return m, nil
		}
		m.errMsg = ""
		if msg.Resent {
			m.status = "A new token was sent to " + msg.Email
			return m, nil
		}
		m.status = ""
		return m, func() tea.Msg {
			return NavigateTo{Page: pageLogin, Payload: VerifiedNotice{Email: msg.Email}}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			m.status = ""
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case "ctrl+r":
			if m.submitting {
				return m, nil
			}
			email := m.form.value(0)
			if email == "" {
				m.errMsg = "Email is required"
				return m, nil
			}
			m.submitting = true
			return m, m.cmdResend(email)
		case "enter":
			if m.submitting {
				return m, nil
			}
			req := models.VerifyTokenRequest{Email: m.form.value(0), Token: m.form.value(1)}
			if req.Email == "" || req.Token == "" {
				m.errMsg = "Email and token are required"
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdVerify(req)
		}
	}

	return m, m.form.update(msg)
}

func (m *VerifyModel) View() string {
	var b strings.Builder
	m.form.view(&b)

	if m.submitting {
		b.WriteString("\n[Sending...]\n")
	} else {
		b.WriteString("\n[Verify]\n")
	}
	renderMessages(&b, m.status, m.errMsg)

	return renderPage("VERIFY ACCOUNT", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: verify │ ctrl+r: resend token")
}

func (m *VerifyModel) cmdVerify(req models.VerifyTokenRequest) tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return VerifyResult{Email: req.Email, Err: auth.VerifyToken(ctx, req)}
	}
}

func (m *VerifyModel) cmdResend(email string) tea.Cmd {
	ctx, auth := m.ctx, m.auth
	return func() tea.Msg {
		return VerifyResult{Email: email, Resent: true, Err: auth.ResendToken(ctx, email)}
	}
}

func verifyErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidVerificationToken):
		return "The token is not valid"
	case errors.Is(err, service.ErrVerificationTokenExpired):
		return "The token has expired, press ctrl+r for a new one"
	case errors.Is(err, service.ErrAccountAlreadyVerified):
		return "This account is already verified"
	case errors.Is(err, service.ErrNotFound):
		return "No account uses this email"
	default:
		return humanizeServerUnavailableError(err)
	}
}
