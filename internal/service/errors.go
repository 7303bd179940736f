package service

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	ErrWrongCredentials       = errors.New("invalid email or password")
	ErrAccountNotVerified     = errors.New("account is not verified")
	ErrAccountAlreadyVerified = errors.New("account is already verified")
	ErrIncompleteAuthResponse = errors.New("incomplete authentication response")
	ErrWrongCurrentPassword   = errors.New("current password is incorrect")

	ErrInvalidVerificationToken = errors.New("invalid verification token")
	ErrVerificationTokenExpired = errors.New("verification token has expired")

	ErrSessionExpired  = errors.New("session expired, please log in again")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("access denied")
	ErrEmailTaken      = errors.New("email already exists")
	ErrServerFailure   = errors.New("server error")
	ErrServerUnreached = errors.New("server is unreachable")
)
