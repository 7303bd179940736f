// Package fakeapi is an in-memory stand-in for the task-management backend.
// It serves the same REST routes under /api, issues HS256 JWT access
// tokens with rotating refresh tokens, and records every request so that
// tests can assert on refresh behaviour. It is test support only.
package fakeapi

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/internal/utils"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer    = "fakeapi"
	defaultSignKey = "fakeapi-sign-key"

	// DefaultAccessTTL is the lifetime of issued access tokens.
	DefaultAccessTTL = 15 * time.Minute
)

// RecordedRequest is one request seen by the server.
type RecordedRequest struct {
	Method string
	Path   string
	// Token is the bearer token the request carried, or "".
	Token     string
	RequestID string
}

type account struct {
	user              models.User
	passwordHash      []byte
	verified          bool
	verificationToken string
	notifications     models.NotificationPreferences
	privacy           models.PrivacyPreferences
}

// Server is the fake backend. The zero value is not usable; use [New].
type Server struct {
	clock     clockwork.Clock
	signKey   string
	accessTTL time.Duration
	ids       *utils.UUIDGenerator
	logger    *logger.Logger

	mu            sync.Mutex
	accounts      map[int64]*account
	tasks         map[int64]*models.Task
	refreshTokens map[string]int64
	nextUserID    int64
	nextTaskID    int64

	requests      []RecordedRequest
	refreshCalls  int
	refreshStatus int
	refreshDelay  time.Duration
	forced        map[string]int

	router http.Handler
}

// Option configures a [Server].
type Option func(*Server)

// WithClock sets the clock used for token issuing and validation.
func WithClock(c clockwork.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithAccessTTL sets the lifetime of access tokens issued by login and
// refresh.
func WithAccessTTL(ttl time.Duration) Option {
	return func(s *Server) { s.accessTTL = ttl }
}

// WithLogger sets the request logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New builds an empty fake backend.
func New(opts ...Option) *Server {
	s := &Server{
		clock:         clockwork.NewRealClock(),
		signKey:       defaultSignKey,
		accessTTL:     DefaultAccessTTL,
		ids:           utils.NewUUIDGenerator(),
		logger:        logger.Nop(),
		accounts:      make(map[int64]*account),
		tasks:         make(map[int64]*models.Task),
		refreshTokens: make(map[string]int64),
		forced:        make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// AddUser stores a verified account and returns it with its id set.
func (s *Server) AddUser(user models.User, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	user.UserID = s.nextUserID
	if len(user.Roles) == 0 {
		user.Roles = []string{models.RoleUser}
	}
	s.accounts[user.UserID] = &account{user: user, passwordHash: hash, verified: true}
	return user, nil
}

// AddTask stores a task and returns it with its id and timestamps set.
func (s *Server) AddTask(task models.Task) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTaskID++
	task.ID = s.nextTaskID
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.clock.Now()
	}
	task.UpdatedAt = task.CreatedAt
	stored := task
	s.tasks[task.ID] = &stored
	return task
}

// IssueSession returns a fresh token pair for userID. A negative accessTTL
// yields an access token that is already expired.
func (s *Server) IssueSession(userID int64, accessTTL time.Duration) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(userID, accessTTL)
}

func (s *Server) issueLocked(userID int64, accessTTL time.Duration) (models.Session, error) {
	acc, ok := s.accounts[userID]
	if !ok {
		return models.Session{}, errUnknownUser
	}

	access, err := utils.GenerateJWTToken(tokenIssuer, userID, accessTTL, s.signKey, s.clock.Now(), s.ids.Generate())
	if err != nil {
		return models.Session{}, err
	}
	refresh := s.ids.Generate()
	s.refreshTokens[refresh] = userID

	user := acc.user
	return models.Session{AccessToken: access, RefreshToken: refresh, User: &user}, nil
}

// VerificationToken returns the pending e-mail verification token of email.
func (s *Server) VerificationToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acc := s.accountByEmailLocked(email); acc != nil {
		return acc.verificationToken
	}
	return ""
}

// Task returns a stored task.
func (s *Server) Task(id int64) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, false
	}
	return *t, true
}

// RefreshCalls returns how many times the refresh endpoint was called.
func (s *Server) RefreshCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCalls
}

// Requests returns a copy of every recorded request in arrival order.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// RequestsTo returns the recorded requests of method and path.
func (s *Server) RequestsTo(method, path string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// FailRefresh makes the refresh endpoint answer status. Zero restores the
// normal behaviour.
func (s *Server) FailRefresh(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshStatus = status
}

// DelayRefresh makes the refresh endpoint wait d before answering so that
// concurrent requests pile up behind it.
func (s *Server) DelayRefresh(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshDelay = d
}

// ForceStatus makes every request to method and path answer status before
// authentication. Zero removes the override.
func (s *Server) ForceStatus(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := method + " " + path
	if status == 0 {
		delete(s.forced, key)
		return
	}
	s.forced[key] = status
}

func (s *Server) accountByEmailLocked(email string) *account {
	for _, acc := range s.accounts {
		if acc.user.Email == email {
			return acc
		}
	}
	return nil
}
