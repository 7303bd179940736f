package client

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/MKhiriev/go-task-client/internal/mock"
	"github.com/MKhiriev/go-task-client/internal/service"
	"github.com/MKhiriev/go-task-client/internal/tui"
	"github.com/MKhiriev/go-task-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var alice = models.User{UserID: 7, Email: "alice@example.com", FullName: "Alice Smith"}

func newTestApp(t *testing.T) (*App, *mock.MockAuthService, *MockUI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)
	ui := NewMockUI(ctrl)

	app, err := NewApp(&service.ClientServices{AuthService: auth}, ui, logger.Nop())
	require.NoError(t, err)
	return app, auth, ui
}

func TestNewApp_RequiresDependencies(t *testing.T) {
	_, err := NewApp(nil, NewMockUI(gomock.NewController(t)), logger.Nop())
	assert.Error(t, err)

	_, err = NewApp(&service.ClientServices{AuthService: mock.NewMockAuthService(gomock.NewController(t))}, nil, logger.Nop())
	assert.Error(t, err)
}

func TestApp_RestoredSessionSkipsLogin(t *testing.T) {
	app, auth, ui := newTestApp(t)
	fresh := alice
	fresh.FullName = "Alice Jones"

	gomock.InOrder(
		auth.EXPECT().RestoreSession(gomock.Any()).Return(alice, nil),
		auth.EXPECT().CurrentUser(gomock.Any()).Return(fresh, nil),
		ui.EXPECT().MainLoop(gomock.Any(), fresh).Return(tui.ExitQuit, nil),
	)

	require.NoError(t, app.Run(context.Background()))
}

func TestApp_OfflineKeepsCachedProfile(t *testing.T) {
	app, auth, ui := newTestApp(t)

	gomock.InOrder(
		auth.EXPECT().RestoreSession(gomock.Any()).Return(alice, nil),
		auth.EXPECT().CurrentUser(gomock.Any()).Return(models.User{}, service.ErrServerUnreached),
		ui.EXPECT().MainLoop(gomock.Any(), alice).Return(tui.ExitQuit, nil),
	)

	require.NoError(t, app.Run(context.Background()))
}

func TestApp_StaleRestoredSessionGoesToLogin(t *testing.T) {
	app, auth, ui := newTestApp(t)

	gomock.InOrder(
		auth.EXPECT().RestoreSession(gomock.Any()).Return(alice, nil),
		auth.EXPECT().CurrentUser(gomock.Any()).Return(models.User{}, service.ErrSessionExpired),
		auth.EXPECT().Logout(gomock.Any()).Return(nil),
		ui.EXPECT().LoginFlow(gomock.Any(), noticeSessionExpired).Return(alice, nil),
		ui.EXPECT().MainLoop(gomock.Any(), alice).Return(tui.ExitQuit, nil),
	)

	require.NoError(t, app.Run(context.Background()))
}

func TestApp_NoSessionRunsLogin(t *testing.T) {
	app, auth, ui := newTestApp(t)

	gomock.InOrder(
		auth.EXPECT().RestoreSession(gomock.Any()).Return(models.User{}, service.ErrNotLoggedIn),
		ui.EXPECT().LoginFlow(gomock.Any(), "").Return(alice, nil),
		ui.EXPECT().MainLoop(gomock.Any(), alice).Return(tui.ExitQuit, nil),
	)

	require.NoError(t, app.Run(context.Background()))
}

func TestApp_QuitFromLogin(t *testing.T) {
	app, auth, ui := newTestApp(t)

	auth.EXPECT().RestoreSession(gomock.Any()).Return(models.User{}, service.ErrNotLoggedIn)
	ui.EXPECT().LoginFlow(gomock.Any(), "").Return(models.User{}, tui.ErrUserQuit)

	assert.NoError(t, app.Run(context.Background()))
}

func TestApp_ExpiryReturnsToLogin(t *testing.T) {
	app, auth, ui := newTestApp(t)
	bob := models.User{UserID: 8, Email: "bob@example.com"}

	gomock.InOrder(
		auth.EXPECT().RestoreSession(gomock.Any()).Return(models.User{}, service.ErrNotLoggedIn),
		ui.EXPECT().LoginFlow(gomock.Any(), "").Return(alice, nil),
		ui.EXPECT().MainLoop(gomock.Any(), alice).Return(tui.ExitSessionExpired, nil),
		auth.EXPECT().RestoreSession(gomock.Any()).Return(models.User{}, service.ErrNotLoggedIn),
		ui.EXPECT().LoginFlow(gomock.Any(), noticeSessionExpired).Return(bob, nil),
		ui.EXPECT().MainLoop(gomock.Any(), bob).Return(tui.ExitLogout, nil),
		auth.EXPECT().RestoreSession(gomock.Any()).Return(models.User{}, service.ErrNotLoggedIn),
		ui.EXPECT().LoginFlow(gomock.Any(), noticeLoggedOut).Return(models.User{}, tui.ErrUserQuit),
	)

	assert.NoError(t, app.Run(context.Background()))
}

func TestApp_Errors(t *testing.T) {
	storageErr := errors.New("disk I/O error")

	t.Run("restore", func(t *testing.T) {
		app, auth, _ := newTestApp(t)
		auth.EXPECT().RestoreSession(gomock.Any()).Return(models.User{}, storageErr)

		err := app.Run(context.Background())

		assert.ErrorIs(t, err, storageErr)
		assert.ErrorContains(t, err, "restore session")
	})

	t.Run("main loop", func(t *testing.T) {
		app, auth, ui := newTestApp(t)
		auth.EXPECT().RestoreSession(gomock.Any()).Return(models.User{}, service.ErrNotLoggedIn)
		ui.EXPECT().LoginFlow(gomock.Any(), "").Return(alice, nil)
		ui.EXPECT().MainLoop(gomock.Any(), alice).Return(tui.ExitQuit, storageErr)

		err := app.Run(context.Background())

		assert.ErrorIs(t, err, storageErr)
	})
}
