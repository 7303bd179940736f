// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"strings"
)

// Role names as issued by the backend.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User is the account profile returned by the backend and cached locally
// under the "user" session key.
type User struct {
	// UserID is the backend identifier of the account.
	UserID int64 `json:"userId,omitempty"`

	// Email is the unique login of the account.
	Email string `json:"email"`

	// Username is the short handle chosen at signup.
	Username string `json:"username,omitempty"`

	// FullName is the display name shown in the UI.
	FullName string `json:"fullName,omitempty"`

	// Name is the display name as returned by the login endpoint
	// (currentUser.name). It mirrors FullName for other endpoints.
	Name string `json:"name,omitempty"`

	// Role is the single role string returned by the login endpoint.
	Role string `json:"role,omitempty"`

	// Roles is the role set returned by the user endpoints.
	Roles []string `json:"roles,omitempty"`

	Contact          string `json:"contact,omitempty"`
	Gender           string `json:"gender,omitempty"`
	ProfileImagePath string `json:"profileImagePath,omitempty"`

	// FirstLogin is set by the backend until the user changes the initial
	// password.
	FirstLogin bool `json:"firstLogin,omitempty"`
}

// IsAdmin reports whether the user holds the admin role in either the
// single-role or the role-set representation.
func (u User) IsAdmin() bool {
	if strings.EqualFold(u.Role, RoleAdmin) || strings.EqualFold(u.Role, "ADMIN") {
		return true
	}
	return slices.ContainsFunc(u.Roles, func(r string) bool {
		return strings.EqualFold(r, RoleAdmin) || strings.EqualFold(r, "ADMIN")
	})
}

// DisplayName returns the best available human-readable name.
func (u User) DisplayName() string {
	switch {
	case u.FullName != "":
		return u.FullName
	case u.Name != "":
		return u.Name
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

// FormatRole turns "ROLE_SUPER_ADMIN" into "Super Admin".
func FormatRole(role string) string {
	return humanize(strings.TrimPrefix(role, "ROLE_"))
}

// Credentials are submitted to the login endpoint.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest is submitted to the signup endpoint. Constraints mirror the
// backend's SignUpRequestDto.
type SignupRequest struct {
	FullName string `json:"fullName" validate:"required,min=4,max=40"`
	Email    string `json:"email" validate:"required,email,max=40"`
	Username string `json:"username" validate:"required,max=20"`
	Contact  string `json:"contact" validate:"required,max=13"`
	Password string `json:"password" validate:"required,min=6,max=20"`
	Gender   string `json:"gender,omitempty"`
	Role     string `json:"role,omitempty"`
}

// VerifyTokenRequest confirms an e-mail address with the token sent to it.
type VerifyTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required"`
}

// ResendTokenRequest asks the backend to send a new verification token.
type ResendTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest replaces the password of the current user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=20,nefield=CurrentPassword"`
}

// UpdateUserRequest edits a profile. It is used both for the current user's
// own profile and by admins editing any user.
type UpdateUserRequest struct {
	FullName string `json:"fullName,omitempty" validate:"omitempty,min=4,max=40"`
	Email    string `json:"email,omitempty" validate:"omitempty,email,max=40"`
	Contact  string `json:"contact,omitempty" validate:"omitempty,max=13"`
	Gender   string `json:"gender,omitempty"`
	Role     string `json:"role,omitempty"`
}

// NotificationPreferences are the per-user notification switches.
type NotificationPreferences struct {
	EmailNotifications bool `json:"emailNotifications"`
	PushNotifications  bool `json:"pushNotifications"`
	TaskReminders      bool `json:"taskReminders"`
}

// PrivacyPreferences are the per-user privacy switches.
type PrivacyPreferences struct {
	ProfileVisible bool `json:"profileVisible"`
	ShowEmail      bool `json:"showEmail"`
}

// Role is an entry of the backend role catalogue.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
