// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It restores a persisted session or runs the login flow, then shows the
// task board, and returns to the login flow after a logout or a session
// expiry.
package client
