package tui

import (
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/internal/utils"
	"github.com/MKhiriev/go-task-client/models"
	tea "github.com/charmbracelet/bubbletea"
)

// SessionNotifier forwards session events of the authenticated HTTP client
// to the running program. A session expiry ends the main loop, which sends
// the user back to the login flow.
type SessionNotifier struct {
	logger *logger.Logger

	mu      sync.Mutex
	program *tea.Program
	expired atomic.Bool
}

// NewSessionNotifier returns a notifier with no program attached.
func NewSessionNotifier(logger *logger.Logger) *SessionNotifier {
	return &SessionNotifier{logger: logger}
}

// SessionRefreshed implements adapter.SessionObserver.
func (n *SessionNotifier) SessionRefreshed(session models.Session) {
	event := n.logger.Debug().Bool("has_refresh_token", session.RefreshToken != "")
	if exp, err := utils.TokenExpiry(session.AccessToken); err == nil {
		event = event.Time("access_expires_at", exp)
	}
	event.Msg("session refreshed")
}

// SessionExpired implements adapter.SessionObserver.
func (n *SessionNotifier) SessionExpired(err error) {
	n.logger.Warn().Err(err).Msg("session expired")
	n.expired.Store(true)

	n.mu.Lock()
	p := n.program
	n.mu.Unlock()

	if p != nil {
		go p.Send(sessionExpiredMsg{err: err})
	}
}

// attach routes events to p until detach is called and resets the expiry
// flag of the previous session.
func (n *SessionNotifier) attach(p *tea.Program) {
	n.mu.Lock()
	n.program = p
	n.mu.Unlock()
	n.expired.Store(false)
}

func (n *SessionNotifier) detach() {
	n.mu.Lock()
	n.program = nil
	n.mu.Unlock()
}

// Expired reports whether the session expired since the last attach.
func (n *SessionNotifier) Expired() bool {
	return n.expired.Load()
}
