// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Session keys of the durable key-value storage. They are the only keys the
// client ever reads or writes.
const (
	SessionKeyToken        = "token"
	SessionKeyRefreshToken = "refreshToken"
	SessionKeyUser         = "user"
)

// SessionKeys lists every session key.
var SessionKeys = []string{SessionKeyToken, SessionKeyRefreshToken, SessionKeyUser}

// Session is the locally persisted authentication state.
type Session struct {
	AccessToken  string
	RefreshToken string
	// User is nil when the profile is unknown.
	User *User
}

// IsLoggedIn reports whether the session carries an access token and a
// profile.
func (s Session) IsLoggedIn() bool {
	return s.AccessToken != "" && s.User != nil
}

// AuthResponse is returned by the login and refresh endpoints.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType,omitempty"`
	CurrentUser  *User  `json:"currentUser,omitempty"`
}

// RefreshRequest is the payload of the refresh endpoint.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
