package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-client/internal/config"
	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/jonboulle/clockwork"
)

// ClientStorages groups the client-side storage layer into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// KeyValueRepository is the SQLite-backed key-value table.
	KeyValueRepository KeyValueRepository

	// Sessions stores the authentication session on top of
	// KeyValueRepository.
	Sessions *SessionStore

	db *DB
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs the key-value repository and the session store on it.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	kv := NewKeyValueRepository(db, clockwork.NewRealClock(), logger)
	return &ClientStorages{
		KeyValueRepository: kv,
		Sessions:           NewSessionStore(kv, logger),
		db:                 db,
	}, nil
}

// Close closes the underlying database.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
