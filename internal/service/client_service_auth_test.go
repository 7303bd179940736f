// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-task-client/internal/adapter"
	"github.com/MKhiriev/go-task-client/internal/app"
	"github.com/MKhiriev/go-task-client/internal/config"
	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/internal/mock"
	"github.com/MKhiriev/go-task-client/internal/store"
	"github.com/MKhiriev/go-task-client/internal/validators"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestAuthSvc builds a clientAuthService over mocks.
func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*clientAuthService, *mock.MockServerAdapter, *mock.MockTokenStore) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockSessions := mock.NewMockTokenStore(ctrl)

	svc := NewClientAuthService(mockAdapter, mockSessions, validators.NewStructValidator(), logger.Nop()).(*clientAuthService)
	return svc, mockAdapter, mockSessions
}

var alice = models.User{UserID: 7, Email: "alice@example.com", Name: "Alice Smith", Role: models.RoleUser}

// ── Login ────────────────────────────────────────────────────────────────────

func TestClientAuthService_Login_PersistsWholeSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	creds := models.Credentials{Email: alice.Email, Password: "secret"}
	user := alice

	gomock.InOrder(
		mockAdapter.EXPECT().Login(ctx, creds).Return(models.AuthResponse{
			AccessToken:  "access",
			RefreshToken: "refresh",
			CurrentUser:  &user,
		}, nil),
		mockSessions.EXPECT().SaveSession(ctx, models.Session{
			AccessToken:  "access",
			RefreshToken: "refresh",
			User:         &user,
		}).Return(nil),
	)

	got, err := svc.Login(ctx, creds)

	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestClientAuthService_Login_IncompleteResponseClearsSession(t *testing.T) {
	tests := []struct {
		name string
		resp models.AuthResponse
	}{
		{"no access token", models.AuthResponse{RefreshToken: "r", CurrentUser: &alice}},
		{"no user", models.AuthResponse{AccessToken: "a", RefreshToken: "r"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, mockAdapter, mockSessions := newTestAuthSvc(t, ctrl)
			ctx := context.Background()

			mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(tt.resp, nil)
			mockSessions.EXPECT().ClearSession(ctx).Return(nil)

			_, err := svc.Login(ctx, models.Credentials{Email: alice.Email, Password: "secret"})

			assert.ErrorIs(t, err, ErrIncompleteAuthResponse)
		})
	}
}

func TestClientAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.AuthResponse{},
		statusFailure(http.StatusUnauthorized, adapter.ErrUnauthorized, app.MsgInvalidEmailOrPassword))

	_, err := svc.Login(ctx, models.Credentials{Email: alice.Email, Password: "bad"})

	assert.ErrorIs(t, err, ErrWrongCredentials)
}

func TestClientAuthService_Login_InvalidInputNeverCallsBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.Login(context.Background(), models.Credentials{Email: "not-an-email"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrInvalidField)
}

func TestClientAuthService_Login_SaveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	user := alice

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.AuthResponse{AccessToken: "a", CurrentUser: &user}, nil)
	mockSessions.EXPECT().SaveSession(ctx, gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.Login(ctx, models.Credentials{Email: alice.Email, Password: "secret"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save session")
}

// ── Signup / verification ───────────────────────────────────────────────────

func TestClientAuthService_Signup(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	req := models.SignupRequest{FullName: "Bobby Tables", Email: "bob@example.com", Username: "bob", Contact: "123", Password: "secret"}

	mockAdapter.EXPECT().Signup(ctx, req).Return(nil)
	require.NoError(t, svc.Signup(ctx, req))

	mockAdapter.EXPECT().Signup(ctx, req).Return(statusFailure(http.StatusConflict, adapter.ErrConflict, app.MsgEmailAlreadyExists))
	assert.ErrorIs(t, svc.Signup(ctx, req), ErrEmailTaken)
}

func TestClientAuthService_Signup_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestAuthSvc(t, ctrl)

	err := svc.Signup(context.Background(), models.SignupRequest{Email: "bob@example.com"})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestClientAuthService_VerifyAndResend(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	req := models.VerifyTokenRequest{Email: "bob@example.com", Token: "abc"}

	mockAdapter.EXPECT().VerifyToken(ctx, req).Return(
		statusFailure(http.StatusBadRequest, adapter.ErrBadRequest, app.MsgInvalidVerificationToken))
	assert.ErrorIs(t, svc.VerifyToken(ctx, req), ErrInvalidVerificationToken)

	mockAdapter.EXPECT().ResendToken(ctx, models.ResendTokenRequest{Email: req.Email}).Return(nil)
	assert.NoError(t, svc.ResendToken(ctx, req.Email))

	assert.ErrorIs(t, svc.ResendToken(ctx, ""), ErrValidation)
}

// ── Session ─────────────────────────────────────────────────────────────────

func TestClientAuthService_RestoreSession(t *testing.T) {
	user := alice

	tests := []struct {
		name    string
		session models.Session
		loadErr error
		clear   bool
		want    models.User
		wantErr error
	}{
		{
			name:    "complete session",
			session: models.Session{AccessToken: "a", RefreshToken: "r", User: &user},
			want:    alice,
		},
		{
			name:    "no token",
			session: models.Session{User: &user},
			wantErr: ErrNotLoggedIn,
		},
		{
			name:    "no user",
			session: models.Session{AccessToken: "a"},
			wantErr: ErrNotLoggedIn,
		},
		{
			name:    "undecodable user",
			session: models.Session{AccessToken: "a"},
			loadErr: store.ErrInvalidStoredUser,
			clear:   true,
			wantErr: ErrNotLoggedIn,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, _, mockSessions := newTestAuthSvc(t, ctrl)
			ctx := context.Background()

			mockSessions.EXPECT().LoadSession(ctx).Return(tt.session, tt.loadErr)
			if tt.clear {
				mockSessions.EXPECT().ClearSession(ctx).Return(nil)
			}

			got, err := svc.RestoreSession(ctx)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockSessions.EXPECT().ClearSession(ctx).Return(nil)
	require.NoError(t, svc.Logout(ctx))

	mockSessions.EXPECT().ClearSession(ctx).Return(errors.New("locked"))
	assert.Error(t, svc.Logout(ctx))
}

func TestClientAuthService_CurrentUser_UpdatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	fresh := models.User{UserID: 7, Email: alice.Email, FullName: "Alice Smith", Roles: []string{models.RoleUser}}

	gomock.InOrder(
		mockAdapter.EXPECT().CurrentUser(ctx).Return(fresh, nil),
		mockSessions.EXPECT().SaveUser(ctx, fresh).Return(nil),
	)

	got, err := svc.CurrentUser(ctx)

	require.NoError(t, err)
	assert.Equal(t, fresh, got)
}

// newSQLiteAuthSvc builds a clientAuthService over a mocked adapter and a
// real session store.
func newSQLiteAuthSvc(t *testing.T) (*clientAuthService, *mock.MockServerAdapter, *store.SessionStore) {
	t.Helper()
	cfg := config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "tasks.db")}}
	storages, err := store.NewClientStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	mockAdapter := mock.NewMockServerAdapter(gomock.NewController(t))
	svc := NewClientAuthService(mockAdapter, storages.Sessions, validators.NewStructValidator(), logger.Nop()).(*clientAuthService)
	return svc, mockAdapter, storages.Sessions
}

func TestClientAuthService_CurrentUser_DoesNotRestorePurgedSession(t *testing.T) {
	svc, mockAdapter, sessions := newSQLiteAuthSvc(t)
	ctx := context.Background()
	require.NoError(t, sessions.SaveSession(ctx, models.Session{AccessToken: "old", RefreshToken: "oldR", User: &alice}))

	// a concurrent refresh fails and purges the session while the
	// profile request is in flight
	mockAdapter.EXPECT().CurrentUser(ctx).DoAndReturn(func(ctx context.Context) (models.User, error) {
		require.NoError(t, sessions.ClearSession(ctx))
		return alice, nil
	})

	_, err := svc.CurrentUser(ctx)
	require.NoError(t, err)

	stored, err := sessions.LoadSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored.AccessToken)
	assert.Empty(t, stored.RefreshToken)
	assert.Nil(t, stored.User)
}

func TestClientAuthService_CurrentUser_KeepsRotatedTokens(t *testing.T) {
	svc, mockAdapter, sessions := newSQLiteAuthSvc(t)
	ctx := context.Background()
	require.NoError(t, sessions.SaveSession(ctx, models.Session{AccessToken: "old", RefreshToken: "oldR", User: &alice}))
	fresh := alice
	fresh.FullName = "Alice Jones"

	// a concurrent refresh rotates the token pair while the profile
	// request is in flight
	mockAdapter.EXPECT().CurrentUser(ctx).DoAndReturn(func(ctx context.Context) (models.User, error) {
		require.NoError(t, sessions.SaveSession(ctx, models.Session{AccessToken: "new", RefreshToken: "newR", User: &alice}))
		return fresh, nil
	})

	_, err := svc.CurrentUser(ctx)
	require.NoError(t, err)

	stored, err := sessions.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Session{AccessToken: "new", RefreshToken: "newR", User: &fresh}, stored)
}

func TestClientAuthService_CurrentUser_SessionExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().CurrentUser(ctx).Return(models.User{},
		&adapter.Failure{Kind: adapter.FailureSessionExpired, Err: adapter.ErrSessionExpired})

	_, err := svc.CurrentUser(ctx)

	assert.ErrorIs(t, err, ErrSessionExpired)
}

// ── Profile ─────────────────────────────────────────────────────────────────

func TestClientAuthService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	session := models.Session{AccessToken: "a", RefreshToken: "r", User: &alice}
	updated := alice
	updated.FullName = "Alice Jones"

	gomock.InOrder(
		mockSessions.EXPECT().LoadSession(ctx).Return(session, nil),
		mockAdapter.EXPECT().UpdateUser(ctx, alice.UserID, models.UpdateUserRequest{FullName: "Alice Jones"}).Return(updated, nil),
		mockSessions.EXPECT().SaveUser(ctx, updated).Return(nil),
	)

	// the role is dropped from self-service edits
	got, err := svc.UpdateProfile(ctx, models.UpdateUserRequest{FullName: "Alice Jones", Role: models.RoleAdmin})

	require.NoError(t, err)
	assert.Equal(t, "Alice Jones", got.FullName)
}

func TestClientAuthService_UpdateProfile_NotLoggedIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockSessions.EXPECT().LoadSession(ctx).Return(models.Session{}, nil)

	_, err := svc.UpdateProfile(ctx, models.UpdateUserRequest{FullName: "Alice Jones"})

	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestClientAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	req := models.ChangePasswordRequest{CurrentPassword: "secret", NewPassword: "secret2"}

	mockAdapter.EXPECT().ChangePassword(ctx, req).Return(
		statusFailure(http.StatusBadRequest, adapter.ErrBadRequest, app.MsgCurrentPasswordIncorrect))
	assert.ErrorIs(t, svc.ChangePassword(ctx, req), ErrWrongCurrentPassword)

	same := models.ChangePasswordRequest{CurrentPassword: "secret", NewPassword: "secret"}
	assert.ErrorIs(t, svc.ChangePassword(ctx, same), ErrValidation)
}

func TestClientAuthService_Preferences(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()
	notifications := models.NotificationPreferences{EmailNotifications: true}
	privacy := models.PrivacyPreferences{ShowEmail: true}

	mockAdapter.EXPECT().UpdateNotificationPreferences(ctx, notifications).Return(nil)
	mockAdapter.EXPECT().UpdatePrivacyPreferences(ctx, privacy).Return(
		&adapter.Failure{Kind: adapter.FailureTransport, Err: errors.New("connection refused")})

	assert.NoError(t, svc.UpdateNotificationPreferences(ctx, notifications))
	assert.ErrorIs(t, svc.UpdatePrivacyPreferences(ctx, privacy), ErrServerUnreached)
}
