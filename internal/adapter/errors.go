package adapter

import "errors"

// Status sentinels. A [*Failure] of kind [FailureStatus] unwraps to the one
// matching its HTTP status.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

var (
	// ErrSessionExpired is returned when the session could not be renewed
	// and has been purged locally.
	ErrSessionExpired = errors.New("session expired")

	// ErrIncompleteRefresh is returned when the refresh endpoint answers 2xx
	// without an access token.
	ErrIncompleteRefresh = errors.New("refresh response has no access token")
)
