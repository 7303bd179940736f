// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

//go:generate mockgen -source=interfaces.go -destination=ui_mock_test.go -package=client

import (
	"context"

	"github.com/MKhiriev/go-task-client/internal/tui"
	"github.com/MKhiriev/go-task-client/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive part of the application.
type UI interface {
	// LoginFlow blocks until the user logs in. notice is shown on the first
	// screen. It returns tui.ErrUserQuit when the user leaves instead.
	LoginFlow(ctx context.Context, notice string) (models.User, error)

	// MainLoop shows the task board until the user quits, logs out or the
	// session expires.
	MainLoop(ctx context.Context, user models.User) (tui.Exit, error)
}
