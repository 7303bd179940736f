// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-task-client/internal/service"
)

var ErrUserQuit = errors.New("user quit the program")

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, service.ErrServerUnreached) {
		return "Network is down or the server is unavailable"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Network is down or the server is unavailable"
	}

	return err.Error()
}

// isSessionExpired reports whether err ends the main loop.
func isSessionExpired(err error) bool {
	return errors.Is(err, service.ErrSessionExpired)
}
