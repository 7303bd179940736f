// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-client/internal/adapter"
	"github.com/MKhiriev/go-task-client/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	f, ok := adapter.AsFailure(err)
	if !ok {
		return err
	}
	msg := f.Message()

	switch f.Kind {
	case adapter.FailureSessionExpired:
		return fmt.Errorf("%w: %w", ErrSessionExpired, err)
	case adapter.FailureTransport:
		return fmt.Errorf("%w: %w", ErrServerUnreached, err)
	case adapter.FailureStorage:
		return err
	}

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgInvalidVerificationToken:
			return ErrInvalidVerificationToken
		case app.MsgVerificationTokenExpired:
			return ErrVerificationTokenExpired
		case app.MsgAccountAlreadyVerified:
			return ErrAccountAlreadyVerified
		case app.MsgCurrentPasswordIncorrect:
			return ErrWrongCurrentPassword
		}
		return withMessage(ErrValidation, msg)

	case errors.Is(err, adapter.ErrUnauthorized):
		if msg == app.MsgInvalidEmailOrPassword {
			return ErrWrongCredentials
		}
		return withMessage(ErrNotLoggedIn, msg)

	case errors.Is(err, adapter.ErrForbidden):
		if msg == app.MsgAccountNotVerified {
			return ErrAccountNotVerified
		}
		return withMessage(ErrForbidden, msg)

	case errors.Is(err, adapter.ErrNotFound):
		return withMessage(ErrNotFound, msg)

	case errors.Is(err, adapter.ErrConflict):
		if msg == app.MsgEmailAlreadyExists {
			return ErrEmailTaken
		}

	case errors.Is(err, adapter.ErrInternalServerError), errors.Is(err, adapter.ErrBadGateway):
		return withMessage(ErrServerFailure, msg)
	}

	return err
}

// withMessage attaches the backend message to a business error.
func withMessage(sentinel error, msg string) error {
	if msg == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}
