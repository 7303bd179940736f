// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-task-client/internal/config"
	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/internal/mock"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMockSessionStore(t *testing.T) (*SessionStore, *mock.MockKeyValueRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKeyValueRepository(ctrl)
	return NewSessionStore(kv, logger.Nop()), kv
}

// ── Tokens ──────────────────────────────────────────────────────────────────

func TestSessionStore_AccessToken(t *testing.T) {
	s, kv := newMockSessionStore(t)
	ctx := context.Background()

	kv.EXPECT().Get(ctx, models.SessionKeyToken).Return(map[string]string{"token": "abc"}, nil)
	kv.EXPECT().Get(ctx, models.SessionKeyRefreshToken).Return(map[string]string{}, nil)

	token, err := s.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	refresh, err := s.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, refresh)
}

func TestSessionStore_AccessToken_Error(t *testing.T) {
	s, kv := newMockSessionStore(t)
	boom := errors.New("boom")

	kv.EXPECT().Get(gomock.Any(), models.SessionKeyToken).Return(nil, boom)

	_, err := s.AccessToken(context.Background())
	assert.ErrorIs(t, err, boom)
}

// ── Save ────────────────────────────────────────────────────────────────────

func TestSessionStore_SaveSession_WritesAllKeysAtOnce(t *testing.T) {
	s, kv := newMockSessionStore(t)
	session := models.Session{
		AccessToken:  "a",
		RefreshToken: "r",
		User:         &models.User{UserID: 7, Email: "a@b.c"},
	}

	kv.EXPECT().Replace(gomock.Any(), map[string]string{
		"token":        "a",
		"refreshToken": "r",
		"user":         `{"userId":7,"email":"a@b.c"}`,
	}).Return(nil)

	require.NoError(t, s.SaveSession(context.Background(), session))
}

func TestSessionStore_SaveSession_EmptyFieldsAreDeleted(t *testing.T) {
	s, kv := newMockSessionStore(t)

	kv.EXPECT().Replace(gomock.Any(), map[string]string{"token": "a"}, "refreshToken", "user").Return(nil)

	require.NoError(t, s.SaveSession(context.Background(), models.Session{AccessToken: "a"}))
}

// ── Load ────────────────────────────────────────────────────────────────────

func TestSessionStore_LoadSession(t *testing.T) {
	s, kv := newMockSessionStore(t)

	kv.EXPECT().Get(gomock.Any(), "token", "refreshToken", "user").Return(map[string]string{
		"token":        "a",
		"refreshToken": "r",
		"user":         `{"userId":7,"email":"a@b.c","roles":["ROLE_ADMIN"]}`,
	}, nil)

	session, err := s.LoadSession(context.Background())

	require.NoError(t, err)
	assert.True(t, session.IsLoggedIn())
	assert.Equal(t, "r", session.RefreshToken)
	assert.True(t, session.User.IsAdmin())
}

func TestSessionStore_LoadSession_InvalidUser(t *testing.T) {
	s, kv := newMockSessionStore(t)

	kv.EXPECT().Get(gomock.Any(), "token", "refreshToken", "user").Return(map[string]string{
		"token": "a",
		"user":  "{not json",
	}, nil)

	session, err := s.LoadSession(context.Background())

	assert.ErrorIs(t, err, ErrInvalidStoredUser)
	assert.Equal(t, "a", session.AccessToken)
	assert.Nil(t, session.User)
}

func TestSessionStore_ClearSession(t *testing.T) {
	s, kv := newMockSessionStore(t)

	kv.EXPECT().Delete(gomock.Any(), "token", "refreshToken", "user").Return(nil)

	require.NoError(t, s.ClearSession(context.Background()))
}

// ── SQLite ──────────────────────────────────────────────────────────────────

func TestClientStorages_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "nested", "tasks.db")}}

	storages, err := NewClientStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	s := storages.Sessions
	empty, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.False(t, empty.IsLoggedIn())

	want := models.Session{AccessToken: "a", RefreshToken: "r", User: &models.User{UserID: 1, Email: "a@b.c"}}
	require.NoError(t, s.SaveSession(ctx, want))

	// overwrite wholesale
	want.AccessToken = "a2"
	require.NoError(t, s.SaveSession(ctx, want))

	got, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, s.ClearSession(ctx))
	values, err := storages.KeyValueRepository.Get(ctx, models.SessionKeys...)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestSessionStore_SaveUser_OnlyWhileLoggedIn(t *testing.T) {
	ctx := context.Background()
	cfg := config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "tasks.db")}}

	storages, err := NewClientStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })
	s := storages.Sessions

	// no session: the profile is not cached
	require.NoError(t, s.SaveUser(ctx, models.User{UserID: 1, Email: "a@b.c"}))
	values, err := storages.KeyValueRepository.Get(ctx, models.SessionKeys...)
	require.NoError(t, err)
	assert.Empty(t, values)

	// a stored session keeps its tokens and gets the new profile
	require.NoError(t, s.SaveSession(ctx, models.Session{AccessToken: "a", RefreshToken: "r", User: &models.User{UserID: 1}}))
	fresh := models.User{UserID: 1, Email: "a@b.c", FullName: "Alice Jones"}
	require.NoError(t, s.SaveUser(ctx, fresh))

	got, err := s.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Session{AccessToken: "a", RefreshToken: "r", User: &fresh}, got)

	// a purged session stays purged
	require.NoError(t, s.ClearSession(ctx))
	require.NoError(t, s.SaveUser(ctx, fresh))
	values, err = storages.KeyValueRepository.Get(ctx, models.SessionKeys...)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestSessionStore_SaveUser_GuardedByToken(t *testing.T) {
	s, kv := newMockSessionStore(t)

	kv.EXPECT().ReplaceIfExists(gomock.Any(), "user", `{"userId":3,"email":"c@d.e"}`, "token").Return(false, nil)
	require.NoError(t, s.SaveUser(context.Background(), models.User{UserID: 3, Email: "c@d.e"}))

	kv.EXPECT().ReplaceIfExists(gomock.Any(), "user", gomock.Any(), "token").Return(false, errors.New("database is locked"))
	assert.Error(t, s.SaveUser(context.Background(), models.User{UserID: 3}))
}
