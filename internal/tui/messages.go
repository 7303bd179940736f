package tui

import (
	"github.com/MKhiriev/go-task-client/models"
)

// NavigateTo switches the active page of [RootModel]. Payload, when set, is
// delivered to the new page as its first message.
type NavigateTo struct {
	Page    string
	Payload any
}

// LoginResult is produced by the login page.
type LoginResult struct {
	User models.User
	Err  error
}

// SignupResult is produced by the signup page.
type SignupResult struct {
	Email string
	Err   error
}

// VerifyPrefill opens the verification page for an e-mail address.
type VerifyPrefill struct {
	Email  string
	Notice string
}

// VerifyResult is produced by the verification page.
type VerifyResult struct {
	Email  string
	Resent bool
	Err    error
}

// VerifiedNotice is shown by the login page after a successful
// verification.
type VerifiedNotice struct {
	Email string
}

type boardLoadedMsg struct {
	board models.Board
	err   error
	// background is set for reloads of the refresh job.
	background bool
}

type taskSavedMsg struct {
	task    models.Task
	created bool
	err     error
}

type taskDeletedMsg struct {
	err error
}

type detailLoadedMsg struct {
	task models.Task
	err  error
}

type usersLoadedMsg struct {
	page  models.Page[models.User]
	roles []models.Role
	err   error
}

type userSavedMsg struct {
	user models.User
	err  error
}

type profileSavedMsg struct {
	user models.User
	err  error
}

type userDeletedMsg struct {
	err error
}

type statusChangedMsg struct {
	task models.Task
	err  error
}

type logoutDoneMsg struct {
	err error
}

type passwordChangedMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type sessionExpiredMsg struct {
	err error
}

// menuNotice is a one-line confirmation shown by the menu page.
type menuNotice string
