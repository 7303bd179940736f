package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/internal/service"
	"github.com/MKhiriev/go-task-client/internal/tui"
	"github.com/MKhiriev/go-task-client/models"
)

const (
	noticeSessionExpired = "Your session has expired, please log in again"
	noticeLoggedOut      = "You have been logged out"
)

type App struct {
	auth   service.AuthService
	ui     UI
	logger *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, logger *logger.Logger) (*App, error) {
	if services == nil || services.AuthService == nil {
		return nil, errors.New("client app: auth service is required")
	}
	if ui == nil {
		return nil, errors.New("client app: ui is required")
	}
	return &App{auth: services.AuthService, ui: ui, logger: logger}, nil
}

// Run alternates between the login flow and the main loop until the user
// quits.
func (a *App) Run(ctx context.Context) error {
	notice := ""
	for {
		user, err := a.authenticate(ctx, notice)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		exit, err := a.ui.MainLoop(ctx, user)
		if err != nil {
			return fmt.Errorf("main loop: %w", err)
		}

		switch exit {
		case tui.ExitLogout:
			notice = noticeLoggedOut
		case tui.ExitSessionExpired:
			notice = noticeSessionExpired
		default:
			return nil
		}
	}
}

// authenticate resumes the persisted session or runs the login flow.
func (a *App) authenticate(ctx context.Context, notice string) (models.User, error) {
	user, err := a.auth.RestoreSession(ctx)
	switch {
	case err == nil:
		a.logger.Debug().Int64("user_id", user.UserID).Msg("session restored")
		return a.refreshProfile(ctx, user)
	case errors.Is(err, service.ErrNotLoggedIn):
		return a.ui.LoginFlow(ctx, notice)
	default:
		return models.User{}, fmt.Errorf("restore session: %w", err)
	}
}

// refreshProfile reloads the restored user from the backend. The request
// renews an expired access token; a session that cannot be renewed sends the
// user to the login flow, while an unreachable backend keeps the cached
// profile.
func (a *App) refreshProfile(ctx context.Context, cached models.User) (models.User, error) {
	user, err := a.auth.CurrentUser(ctx)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, service.ErrSessionExpired), errors.Is(err, service.ErrNotLoggedIn):
		a.logger.Info().Err(err).Msg("restored session is no longer valid")
		if err := a.auth.Logout(ctx); err != nil {
			return models.User{}, fmt.Errorf("clear stale session: %w", err)
		}
		return a.ui.LoginFlow(ctx, noticeSessionExpired)
	default:
		a.logger.Warn().Err(err).Msg("profile refresh failed, using cached profile")
		return cached, nil
	}
}
