// Package service implements the client-side business logic of the task
// client: authentication and session lifecycle, task management, admin user
// management and the periodic board refresh. Services validate their input,
// call the backend through the [adapter.ServerAdapter] and translate adapter
// failures into the business errors declared in errors.go.
package service

//go:generate mockgen -source=client_interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-task-client/models"
)

// AuthService defines the client-side contract for account and session
// management. The session (tokens and profile) is persisted in the local
// token store so it survives restarts.
type AuthService interface {
	// Login authenticates with the given credentials and persists the whole
	// session returned by the backend. When the response lacks the access
	// token or the profile the local session is cleared and
	// ErrIncompleteAuthResponse is returned.
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)

	// Signup registers a new, unverified account. The backend e-mails a
	// verification token to the address.
	Signup(ctx context.Context, req models.SignupRequest) error

	// VerifyToken confirms the e-mail address of an account.
	VerifyToken(ctx context.Context, req models.VerifyTokenRequest) error

	// ResendToken asks the backend to send a new verification token.
	ResendToken(ctx context.Context, email string) error

	// CurrentUser fetches the profile of the logged-in user and updates the
	// cached copy.
	CurrentUser(ctx context.Context) (models.User, error)

	// RestoreSession reports the user of a previously persisted session.
	// It returns ErrNotLoggedIn when no complete session exists. A cached
	// profile that cannot be decoded clears the session.
	RestoreSession(ctx context.Context) (models.User, error)

	// Logout removes the local session.
	Logout(ctx context.Context) error

	// ChangePassword replaces the password of the current user.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// UpdateProfile edits the current user's own profile and refreshes the
	// cached copy.
	UpdateProfile(ctx context.Context, req models.UpdateUserRequest) (models.User, error)

	UpdateNotificationPreferences(ctx context.Context, prefs models.NotificationPreferences) error
	UpdatePrivacyPreferences(ctx context.Context, prefs models.PrivacyPreferences) error
}

// TaskService defines the contract for task management.
type TaskService interface {
	// List returns one page of tasks matching filter.
	List(ctx context.Context, filter models.TaskFilter) (models.Page[models.Task], error)

	Get(ctx context.Context, taskID int64) (models.Task, error)

	// Create validates and creates a task.
	Create(ctx context.Context, task models.NewTask) (models.Task, error)

	// Update applies the non-nil fields of update.
	Update(ctx context.Context, taskID int64, update models.UpdateTask) (models.Task, error)

	// UpdateStatus moves a task to another board column.
	UpdateStatus(ctx context.Context, taskID int64, status models.TaskStatus) (models.Task, error)

	Delete(ctx context.Context, taskID int64) error

	// Board loads one page of tasks grouped by status. When withUsers is set
	// the assignable users are loaded concurrently.
	Board(ctx context.Context, filter models.TaskFilter, withUsers bool) (models.Board, error)
}

// UserService defines the contract for the admin user panel.
type UserService interface {
	List(ctx context.Context, query models.UserQuery) (models.Page[models.User], error)
	Get(ctx context.Context, userID int64) (models.User, error)
	Update(ctx context.Context, userID int64, req models.UpdateUserRequest) (models.User, error)
	Delete(ctx context.Context, userID int64) error
	Roles(ctx context.Context) ([]models.Role, error)
}

// BoardRefreshJob defines the contract for a background worker that
// periodically reloads the task board.
type BoardRefreshJob interface {
	// Start launches the background refresh. Every interval (one minute if
	// zero or negative) the board is loaded with filter and passed to
	// onLoaded together with the load error. Any previously running job is
	// stopped before the new one begins.
	Start(ctx context.Context, filter models.TaskFilter, withUsers bool, interval time.Duration, onLoaded func(models.Board, error))

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
