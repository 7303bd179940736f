// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the message strings the task backend writes into the
// "message" field of its error responses.
//
// The client service layer matches on them to tell apart failures that share
// one HTTP status (e.g. a wrong password and an unverified account), and the
// in-memory fake backend used by tests writes the very same strings.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "malformed request body"

	// MsgInvalidID is returned when a path identifier is not a number.
	MsgInvalidID = "invalid id"

	// MsgCredentialsRequired is returned by login when the e-mail or the
	// password is empty.
	MsgCredentialsRequired = "Email and password are required"

	// MsgInvalidEmailOrPassword is returned when the supplied e-mail and
	// password do not match any verified account.
	MsgInvalidEmailOrPassword = "Invalid email or password"

	// MsgAccountNotVerified is returned by login for an account whose e-mail
	// has not been confirmed yet.
	MsgAccountNotVerified = "Account is not verified"

	// MsgAccountAlreadyVerified is returned by verification and resend
	// requests for a confirmed account.
	MsgAccountAlreadyVerified = "Account is already verified"

	// MsgInvalidVerificationToken is returned when the verification token
	// does not match the one sent to the e-mail address.
	MsgInvalidVerificationToken = "Invalid verification token"

	// MsgVerificationTokenExpired is returned when the verification token
	// matched but is no longer valid.
	MsgVerificationTokenExpired = "Verification token has expired"

	// MsgInvalidRefreshToken is returned by the refresh endpoint for an
	// unknown, spent or revoked refresh token.
	MsgInvalidRefreshToken = "Invalid refresh token"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is missing,
	// expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is invalid or expired"

	// MsgEmailAlreadyExists is returned by signup and user updates when the
	// e-mail address belongs to another account.
	MsgEmailAlreadyExists = "Email already exists"

	// MsgCurrentPasswordIncorrect is returned by the password change endpoint
	// when the current password does not match.
	MsgCurrentPasswordIncorrect = "Current password is incorrect"

	// MsgAccessDenied is returned when the authenticated user lacks the role
	// or ownership required by the endpoint.
	MsgAccessDenied = "Access denied"

	MsgTaskNotFound     = "Task not found"
	MsgUserNotFound     = "User not found"
	MsgAssigneeNotFound = "Assignee not found"
	MsgTitleRequired    = "Title is required"
	MsgInvalidStatus    = "Invalid status"
)
