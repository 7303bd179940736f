// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-client/internal/config"
	"github.com/MKhiriev/go-task-client/internal/fakeapi"
	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory TokenStore.
type memStore struct {
	mu      sync.Mutex
	session models.Session
	saves   int
}

func (m *memStore) AccessToken(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.AccessToken, nil
}

func (m *memStore) RefreshToken(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.RefreshToken, nil
}

func (m *memStore) LoadSession(context.Context) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *memStore) SaveSession(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.saves++
	return nil
}

func (m *memStore) SaveUser(_ context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.AccessToken != "" {
		m.session.User = &u
	}
	return nil
}

func (m *memStore) ClearSession(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = models.Session{}
	return nil
}

type recordingObserver struct {
	mu        sync.Mutex
	refreshed int
	expired   []error
}

func (o *recordingObserver) SessionRefreshed(models.Session) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.refreshed++
}

func (o *recordingObserver) SessionExpired(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.expired = append(o.expired, err)
}

type testEnv struct {
	api      *fakeapi.Server
	srv      *httptest.Server
	store    *memStore
	observer *recordingObserver
	client   *AuthClient
	user     models.User
}

// newTestEnv starts a fake backend with one user and an AuthClient whose
// store holds a session issued with accessTTL.
func newTestEnv(t *testing.T, accessTTL time.Duration) *testEnv {
	t.Helper()

	api := fakeapi.New()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	user, err := api.AddUser(models.User{Email: "alice@example.com", FullName: "Alice Smith"}, "secret")
	require.NoError(t, err)
	session, err := api.IssueSession(user.UserID, accessTTL)
	require.NoError(t, err)

	store := &memStore{session: session}
	observer := &recordingObserver{}
	client, err := NewAuthClient(config.ClientAdapter{
		HTTPAddress:    srv.URL + "/api",
		RequestTimeout: 5 * time.Second,
	}, store, observer, logger.Nop())
	require.NoError(t, err)

	return &testEnv{api: api, srv: srv, store: store, observer: observer, client: client, user: user}
}

// ── Valid token ─────────────────────────────────────────────────────────────

func TestAuthClient_ValidTokenNeverRefreshes(t *testing.T) {
	env := newTestEnv(t, time.Hour)
	token := env.store.session.AccessToken

	for iter := 0; iter < 5; iter++ {
		var out models.Envelope[models.User]
		resp, err := env.client.Get(context.Background(), "/auth/current", WithResult(&out))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, env.user.Email, out.Payload.Email)
	}

	assert.Zero(t, env.api.RefreshCalls())
	assert.Zero(t, env.store.saves)
	for _, r := range env.api.RequestsTo(http.MethodGet, "/api/auth/current") {
		assert.Equal(t, token, r.Token)
		assert.NotEmpty(t, r.RequestID)
	}
}

func TestAuthClient_NoAuthNeverCarriesToken(t *testing.T) {
	env := newTestEnv(t, time.Hour)

	_, err := env.client.PostNoAuth(context.Background(), "/auth/login",
		WithBody(models.Credentials{Email: "alice@example.com", Password: "secret"}))
	require.NoError(t, err)

	reqs := env.api.RequestsTo(http.MethodPost, "/api/auth/login")
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Token)
}

// ── Refresh ─────────────────────────────────────────────────────────────────

func TestAuthClient_ConcurrentExpiredRequestsShareOneRefresh(t *testing.T) {
	for _, n := range []int{1, 3, 20} {
		n := n
		t.Run("", func(t *testing.T) {
			env := newTestEnv(t, -time.Minute)
			env.api.DelayRefresh(50 * time.Millisecond)
			expired := env.store.session.AccessToken
			storedUser := env.store.session.User

			var wg sync.WaitGroup
			errs := make([]error, n)
			for i := 0; i < n; i++ {
				i := i
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, errs[i] = env.client.Get(context.Background(), "/auth/current")
				}()
			}
			wg.Wait()

			for _, err := range errs {
				assert.NoError(t, err)
			}
			assert.Equal(t, 1, env.api.RefreshCalls())
			assert.Equal(t, 1, env.observer.refreshed)

			renewed := env.store.session.AccessToken
			require.NotEqual(t, expired, renewed)
			assert.Equal(t, storedUser, env.store.session.User)

			var replayed int
			for _, r := range env.api.RequestsTo(http.MethodGet, "/api/auth/current") {
				if r.Token == renewed {
					replayed++
				}
			}
			assert.Equal(t, n, replayed)
		})
	}
}

func TestAuthClient_RefreshFailureRejectsEveryRequest(t *testing.T) {
	env := newTestEnv(t, -time.Minute)
	env.store.session.RefreshToken = "revoked"
	env.api.DelayRefresh(50 * time.Millisecond)

	const n = 3
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = env.client.Get(context.Background(), "/tasks")
		}()
	}
	wg.Wait()

	var expired int
	for _, err := range errs {
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnauthorized)

		f, ok := AsFailure(err)
		require.True(t, ok)
		if f.Kind == FailureSessionExpired {
			expired++
			assert.ErrorIs(t, err, ErrSessionExpired)
		} else {
			assert.Equal(t, FailureStatus, f.Kind)
			assert.Equal(t, http.StatusUnauthorized, f.Status)
		}
	}

	assert.Equal(t, 1, expired)
	assert.Equal(t, 1, env.api.RefreshCalls())
	assert.Equal(t, models.Session{}, env.store.session)
	assert.Len(t, env.observer.expired, 1)
	assert.Zero(t, env.observer.refreshed)
}

func TestAuthClient_RefreshServerError(t *testing.T) {
	env := newTestEnv(t, -time.Minute)
	env.api.FailRefresh(http.StatusInternalServerError)

	_, err := env.client.Get(context.Background(), "/tasks")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.ErrorIs(t, err, ErrInternalServerError)
	assert.Empty(t, env.store.session.AccessToken)
	assert.Empty(t, env.store.session.RefreshToken)
	assert.Nil(t, env.store.session.User)
}

func TestAuthClient_SecondUnauthorizedIsPropagated(t *testing.T) {
	env := newTestEnv(t, time.Hour)
	env.api.ForceStatus(http.MethodGet, "/api/tasks", http.StatusUnauthorized)

	_, err := env.client.Get(context.Background(), "/tasks")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, env.api.RefreshCalls())
	assert.Len(t, env.api.RequestsTo(http.MethodGet, "/api/tasks"), 2)
	assert.NotEmpty(t, env.store.session.AccessToken)
}

func TestAuthClient_NoRefreshTokenPropagates(t *testing.T) {
	env := newTestEnv(t, -time.Minute)
	env.store.session.RefreshToken = ""
	expired := env.store.session.AccessToken

	_, err := env.client.Get(context.Background(), "/tasks")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, env.api.RefreshCalls())
	assert.Equal(t, expired, env.store.session.AccessToken)
	assert.Empty(t, env.observer.expired)
}

func TestAuthClient_StaleTokenReplaysWithoutRefresh(t *testing.T) {
	env := newTestEnv(t, -time.Minute)
	fresh, err := env.api.IssueSession(env.user.UserID, time.Hour)
	require.NoError(t, err)

	// another request renewed the session after this one was sent
	call := Call{Method: http.MethodGet, Path: "/auth/current"}
	sentWith := env.store.session.AccessToken
	_, err = env.client.send(context.Background(), call, sentWith)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.NoError(t, env.store.SaveSession(context.Background(), fresh))

	token, err := env.client.renew(context.Background(), sentWith)
	require.NoError(t, err)
	assert.Equal(t, fresh.AccessToken, token)
	assert.Zero(t, env.api.RefreshCalls())
}

// ── Non-401 failures ────────────────────────────────────────────────────────

func TestAuthClient_ForbiddenNeverRefreshes(t *testing.T) {
	env := newTestEnv(t, time.Hour)

	_, err := env.client.Get(context.Background(), "/users")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
	assert.Zero(t, env.api.RefreshCalls())
	assert.Len(t, env.api.Requests(), 1)
}

func TestAuthClient_NotFoundMessage(t *testing.T) {
	env := newTestEnv(t, time.Hour)

	_, err := env.client.Get(context.Background(), "/tasks/999")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "Task not found", f.Message())
}

func TestAuthClient_TransportFailure(t *testing.T) {
	env := newTestEnv(t, time.Hour)
	env.srv.Close()

	_, err := env.client.Get(context.Background(), "/tasks")

	require.Error(t, err)
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureTransport, f.Kind)
	assert.Zero(t, f.Status)
}

func TestAuthClient_PerCallTimeout(t *testing.T) {
	env := newTestEnv(t, time.Hour)

	_, err := env.client.Get(context.Background(), "/tasks", WithTimeout(time.Nanosecond))

	require.Error(t, err)
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureTransport, f.Kind)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestNewAuthClient_InvalidAddress(t *testing.T) {
	_, err := NewAuthClient(config.ClientAdapter{HTTPAddress: "  "}, &memStore{}, nil, logger.Nop())
	assert.Error(t, err)

	_, err = NewAuthClient(config.ClientAdapter{HTTPAddress: "localhost:9002"}, nil, nil, logger.Nop())
	assert.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"localhost:9002/api", "http://localhost:9002/api"},
		{"https://tasks.example.com/api/", "https://tasks.example.com/api"},
	}
	for _, tt := range tests {
		got, err := normalizeBaseURL(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := normalizeBaseURL("http://")
	assert.Error(t, err)
}
