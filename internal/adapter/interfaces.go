// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the task-management backend.
//
// [AuthClient] is the authenticated HTTP client: it attaches the stored
// bearer token to every request and, when the backend answers 401,
// renews the session with a single refresh call shared by every request
// that failed meanwhile, then replays them. [ServerAdapter] is the REST
// binding of every backend endpoint built on top of it
// ([NewHTTPServerAdapter]).
//
// Every call returns either a [*Response] or a [*Failure]. Failures unwrap to
// the sentinels in errors.go so that callers can use [errors.Is] (e.g.
// [ErrForbidden] for 403, [ErrSessionExpired] after a failed refresh).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-task-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// TokenStore is the durable session storage the [AuthClient] reads tokens
// from and writes renewed sessions to.
type TokenStore interface {
	// AccessToken returns the stored access token or "" when there is none.
	AccessToken(ctx context.Context) (string, error)

	// RefreshToken returns the stored refresh token or "" when there is none.
	RefreshToken(ctx context.Context) (string, error)

	// LoadSession returns everything stored under the session keys.
	LoadSession(ctx context.Context) (models.Session, error)

	// SaveSession replaces the stored session as a whole. Empty fields are
	// removed rather than kept.
	SaveSession(ctx context.Context, session models.Session) error

	// SaveUser replaces the cached profile of the stored session and leaves
	// the tokens alone. It writes nothing when no session is stored.
	SaveUser(ctx context.Context, user models.User) error

	// ClearSession removes every session key.
	ClearSession(ctx context.Context) error
}

// SessionObserver is notified about session renewals and terminal session
// loss. Implementations must not block.
type SessionObserver interface {
	// SessionRefreshed is called after a renewed session has been stored.
	SessionRefreshed(session models.Session)

	// SessionExpired is called after the session has been purged because it
	// could not be renewed. The user has to log in again.
	SessionExpired(err error)
}

// ServerAdapter defines communication with the task-management backend.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// Login exchanges credentials for a token pair and the user profile. It
	// does not store anything.
	Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)

	// Signup creates an account. The account has to be verified with the
	// token e-mailed to it before it can log in.
	Signup(ctx context.Context, req models.SignupRequest) error

	// VerifyToken confirms the e-mail address of a new account.
	VerifyToken(ctx context.Context, req models.VerifyTokenRequest) error

	// ResendToken asks for a new verification e-mail.
	ResendToken(ctx context.Context, req models.ResendTokenRequest) error

	// CurrentUser returns the profile of the authenticated user.
	CurrentUser(ctx context.Context) (models.User, error)

	// ChangePassword replaces the password of the authenticated user.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// UpdateNotificationPreferences stores the notification switches of the
	// authenticated user.
	UpdateNotificationPreferences(ctx context.Context, prefs models.NotificationPreferences) error

	// UpdatePrivacyPreferences stores the privacy switches of the
	// authenticated user.
	UpdatePrivacyPreferences(ctx context.Context, prefs models.PrivacyPreferences) error

	// ListTasks returns one page of tasks matching filter.
	ListTasks(ctx context.Context, filter models.TaskFilter) (models.Page[models.Task], error)

	// GetTask returns a single task.
	GetTask(ctx context.Context, taskID int64) (models.Task, error)

	// CreateTask creates a task and returns it as stored by the backend.
	CreateTask(ctx context.Context, task models.NewTask) (models.Task, error)

	// UpdateTask applies the non-nil fields of update to a task.
	UpdateTask(ctx context.Context, taskID int64, update models.UpdateTask) (models.Task, error)

	// UpdateTaskStatus moves a task to another workflow state.
	UpdateTaskStatus(ctx context.Context, taskID int64, status models.TaskStatus) (models.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, taskID int64) error

	// ListUsers returns one page of users. Admin only.
	ListUsers(ctx context.Context, query models.UserQuery) (models.Page[models.User], error)

	// GetUser returns one user.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// UpdateUser edits a user. It serves both profile editing and admin
	// user management.
	UpdateUser(ctx context.Context, userID int64, req models.UpdateUserRequest) (models.User, error)

	// DeleteUser removes a user. Admin only.
	DeleteUser(ctx context.Context, userID int64) error

	// Roles returns the role catalogue.
	Roles(ctx context.Context) ([]models.Role, error)
}
