// Package tui implements the terminal interface of the task client: the
// login flow (menu, login, signup and e-mail verification) and the main
// loop (task board, task editor, filters and the admin users panel).
package tui

import (
	"context"
	"time"

	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/internal/service"
	"github.com/MKhiriev/go-task-client/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Options tune the main loop.
type Options struct {
	PageSize        int
	RefreshInterval time.Duration
	BuildInfo       models.AppBuildInfo
}

// Exit tells why the main loop ended.
type Exit int

const (
	// ExitQuit means the user closed the program.
	ExitQuit Exit = iota
	// ExitLogout means the user logged out.
	ExitLogout
	// ExitSessionExpired means the session could not be renewed.
	ExitSessionExpired
)

type TUI struct {
	services *service.ClientServices
	notifier *SessionNotifier
	opts     Options
	logger   *logger.Logger

	// programOptions are appended to every program; tests use them to
	// run without a terminal.
	programOptions []tea.ProgramOption
}

func New(services *service.ClientServices, notifier *SessionNotifier, opts Options, logger *logger.Logger) *TUI {
	return &TUI{
		services:       services,
		notifier:       notifier,
		opts:           opts,
		logger:         logger,
		programOptions: []tea.ProgramOption{tea.WithAltScreen()},
	}
}

// LoginFlow runs the menu until the user logs in. notice, when set, is shown
// on the menu, e.g. after a session expiry. ErrUserQuit is returned when the
// user leaves the program.
func (t *TUI) LoginFlow(ctx context.Context, notice string) (models.User, error) {
	pages := map[string]tea.Model{
		pageMenu:   NewMenuModel(),
		pageLogin:  NewLoginModel(ctx, t.services.AuthService),
		pageSignup: NewSignupModel(ctx, t.services.AuthService),
		pageVerify: NewVerifyModel(ctx, t.services.AuthService),
	}
	if notice != "" {
		pages[pageMenu].Update(menuNotice(notice))
	}

	root := NewRootModel(pages, pageMenu, t.opts.BuildInfo)
	finalModel, runErr := tea.NewProgram(root, t.programOptions...).Run()
	if runErr != nil {
		return models.User{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.User{}, tea.ErrProgramKilled
	}
	if result.quitByUser || result.user.Email == "" {
		return models.User{}, ErrUserQuit
	}

	t.logger.Info().Int64("user_id", result.user.UserID).Msg("logged in")
	return result.user, nil
}

// MainLoop shows the task board of user until the user quits, logs out or
// the session expires.
func (t *TUI) MainLoop(ctx context.Context, user models.User) (Exit, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer t.services.BoardRefreshJob.Stop()

	model := newMainLoopModel(ctx, t.services, user, t.opts)
	program := tea.NewProgram(model, t.programOptions...)

	if t.notifier != nil {
		t.notifier.attach(program)
		defer t.notifier.detach()
	}

	finalModel, runErr := program.Run()
	if runErr != nil {
		return ExitQuit, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return ExitQuit, tea.ErrProgramKilled
	}

	switch {
	case result.expired || (t.notifier != nil && t.notifier.Expired()):
		t.logger.Info().Int64("user_id", user.UserID).Msg("session expired")
		return ExitSessionExpired, nil
	case result.logout:
		t.logger.Info().Int64("user_id", user.UserID).Msg("logged out")
		return ExitLogout, nil
	}
	return ExitQuit, nil
}
