// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/models"
)

// SessionStore keeps the session under the keys [models.SessionKeys]. It
// satisfies adapter.TokenStore.
type SessionStore struct {
	kv     KeyValueRepository
	logger *logger.Logger
}

// NewSessionStore builds a [SessionStore] over kv.
func NewSessionStore(kv KeyValueRepository, logger *logger.Logger) *SessionStore {
	return &SessionStore{kv: kv, logger: logger}
}

func (s *SessionStore) AccessToken(ctx context.Context) (string, error) {
	return s.value(ctx, models.SessionKeyToken)
}

func (s *SessionStore) RefreshToken(ctx context.Context) (string, error) {
	return s.value(ctx, models.SessionKeyRefreshToken)
}

func (s *SessionStore) value(ctx context.Context, key string) (string, error) {
	values, err := s.kv.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return values[key], nil
}

// LoadSession returns the stored session. When the profile cannot be
// decoded the tokens are still returned together with
// [ErrInvalidStoredUser].
func (s *SessionStore) LoadSession(ctx context.Context) (models.Session, error) {
	values, err := s.kv.Get(ctx, models.SessionKeys...)
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}

	session := models.Session{
		AccessToken:  values[models.SessionKeyToken],
		RefreshToken: values[models.SessionKeyRefreshToken],
	}

	raw, ok := values[models.SessionKeyUser]
	if !ok || raw == "" {
		return session, nil
	}

	var user models.User
	if err = json.Unmarshal([]byte(raw), &user); err != nil {
		return session, fmt.Errorf("%w: %w", ErrInvalidStoredUser, err)
	}
	session.User = &user

	return session, nil
}

// SaveSession overwrites all session keys in one transaction. Keys whose
// field is empty are deleted.
func (s *SessionStore) SaveSession(ctx context.Context, session models.Session) error {
	values := make(map[string]string, len(models.SessionKeys))
	var remove []string

	put := func(key, value string) {
		if value == "" {
			remove = append(remove, key)
			return
		}
		values[key] = value
	}

	put(models.SessionKeyToken, session.AccessToken)
	put(models.SessionKeyRefreshToken, session.RefreshToken)

	if session.User == nil {
		remove = append(remove, models.SessionKeyUser)
	} else {
		raw, err := json.Marshal(session.User)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		values[models.SessionKeyUser] = string(raw)
	}

	if err := s.kv.Replace(ctx, values, remove...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.logger.Debug().Bool("logged_in", session.IsLoggedIn()).Msg("session saved")
	return nil
}

// SaveUser replaces the cached profile while a session is stored. Tokens
// are never touched, and nothing is written once the session is gone.
func (s *SessionStore) SaveUser(ctx context.Context, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	written, err := s.kv.ReplaceIfExists(ctx, models.SessionKeyUser, string(raw), models.SessionKeyToken)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if !written {
		s.logger.Debug().Msg("no stored session, profile not cached")
	}
	return nil
}

// ClearSession deletes every session key.
func (s *SessionStore) ClearSession(ctx context.Context) error {
	if err := s.kv.Delete(ctx, models.SessionKeys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.logger.Debug().Msg("session cleared")
	return nil
}
