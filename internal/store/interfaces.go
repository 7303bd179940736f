// Package store implements the durable local storage of the client: a
// key-value table in an SQLite file holding the session under the keys
// "token", "refreshToken" and "user".
package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KeyValueRepository is the low-level key-value table.
type KeyValueRepository interface {
	// Get returns the values of the keys that exist. Missing keys are
	// absent from the map.
	Get(ctx context.Context, keys ...string) (map[string]string, error)

	// Replace upserts values and deletes remove in one transaction.
	Replace(ctx context.Context, values map[string]string, remove ...string) error

	// ReplaceIfExists upserts key only when guard exists and reports
	// whether it wrote.
	ReplaceIfExists(ctx context.Context, key, value, guard string) (bool, error)

	// Delete removes keys in one transaction. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
