package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-client/internal/adapter"
	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/internal/store"
	"github.com/MKhiriev/go-task-client/internal/validators"
	"github.com/MKhiriev/go-task-client/models"
)

type clientAuthService struct {
	adapter   adapter.ServerAdapter
	sessions  adapter.TokenStore
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.ServerAdapter, sessions adapter.TokenStore, validator validators.Validator, logger *logger.Logger) AuthService {
	return &clientAuthService{adapter: serverAdapter, sessions: sessions, validator: validator, logger: logger}
}

func (a *clientAuthService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	if err := a.validate(ctx, credentials); err != nil {
		return models.User{}, err
	}

	auth, err := a.adapter.Login(ctx, credentials)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}

	if auth.AccessToken == "" || auth.CurrentUser == nil {
		if clearErr := a.sessions.ClearSession(ctx); clearErr != nil {
			a.logger.Warn().Err(clearErr).Msg("failed to clear session after incomplete login response")
		}
		return models.User{}, ErrIncompleteAuthResponse
	}

	session := models.Session{
		AccessToken:  auth.AccessToken,
		RefreshToken: auth.RefreshToken,
		User:         auth.CurrentUser,
	}
	if err = a.sessions.SaveSession(ctx, session); err != nil {
		return models.User{}, fmt.Errorf("save session: %w", err)
	}

	a.logger.Info().Int64("user_id", auth.CurrentUser.UserID).Msg("logged in")
	return *auth.CurrentUser, nil
}

func (a *clientAuthService) Signup(ctx context.Context, req models.SignupRequest) error {
	if err := a.validate(ctx, req); err != nil {
		return err
	}
	return mapAdapterError(a.adapter.Signup(ctx, req))
}

func (a *clientAuthService) VerifyToken(ctx context.Context, req models.VerifyTokenRequest) error {
	if err := a.validate(ctx, req); err != nil {
		return err
	}
	return mapAdapterError(a.adapter.VerifyToken(ctx, req))
}

func (a *clientAuthService) ResendToken(ctx context.Context, email string) error {
	req := models.ResendTokenRequest{Email: email}
	if err := a.validate(ctx, req); err != nil {
		return err
	}
	return mapAdapterError(a.adapter.ResendToken(ctx, req))
}

func (a *clientAuthService) CurrentUser(ctx context.Context) (models.User, error) {
	user, err := a.adapter.CurrentUser(ctx)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}
	if err = a.cacheUser(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (a *clientAuthService) RestoreSession(ctx context.Context) (models.User, error) {
	session, err := a.sessions.LoadSession(ctx)
	if errors.Is(err, store.ErrInvalidStoredUser) {
		a.logger.Warn().Err(err).Msg("clearing session with undecodable profile")
		if clearErr := a.sessions.ClearSession(ctx); clearErr != nil {
			return models.User{}, fmt.Errorf("clear session: %w", clearErr)
		}
		return models.User{}, ErrNotLoggedIn
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load session: %w", err)
	}

	if !session.IsLoggedIn() {
		return models.User{}, ErrNotLoggedIn
	}
	return *session.User, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	if err := a.sessions.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.logger.Info().Msg("logged out")
	return nil
}

func (a *clientAuthService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if err := a.validate(ctx, req); err != nil {
		return err
	}
	return mapAdapterError(a.adapter.ChangePassword(ctx, req))
}

func (a *clientAuthService) UpdateProfile(ctx context.Context, req models.UpdateUserRequest) (models.User, error) {
	// roles are managed by admins only
	req.Role = ""
	if err := a.validate(ctx, req); err != nil {
		return models.User{}, err
	}

	session, err := a.sessions.LoadSession(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("load session: %w", err)
	}
	if session.User == nil || session.User.UserID == 0 {
		return models.User{}, ErrNotLoggedIn
	}

	user, err := a.adapter.UpdateUser(ctx, session.User.UserID, req)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}
	if err = a.cacheUser(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (a *clientAuthService) UpdateNotificationPreferences(ctx context.Context, prefs models.NotificationPreferences) error {
	return mapAdapterError(a.adapter.UpdateNotificationPreferences(ctx, prefs))
}

func (a *clientAuthService) UpdatePrivacyPreferences(ctx context.Context, prefs models.PrivacyPreferences) error {
	return mapAdapterError(a.adapter.UpdatePrivacyPreferences(ctx, prefs))
}

// cacheUser replaces the cached profile of the current session.
func (a *clientAuthService) cacheUser(ctx context.Context, user models.User) error {
	if err := a.sessions.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("cache user: %w", err)
	}
	return nil
}

func (a *clientAuthService) validate(ctx context.Context, obj any) error {
	if err := a.validator.Validate(ctx, obj); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
