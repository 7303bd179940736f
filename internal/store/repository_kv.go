package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-task-client/internal/logger"
	"github.com/jonboulle/clockwork"
)

type keyValueRepository struct {
	*DB
	clock  clockwork.Clock
	logger *logger.Logger
}

// NewKeyValueRepository returns the SQLite implementation of
// [KeyValueRepository]. clock stamps updated_at.
func NewKeyValueRepository(db *DB, clock clockwork.Clock, logger *logger.Logger) KeyValueRepository {
	return &keyValueRepository{
		DB:     db,
		clock:  clock,
		logger: logger,
	}
}

func (r *keyValueRepository) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	log := logger.FromContext(ctx)

	query, args, err := buildSelectKeysQuery(keys)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "keyValueRepository.Get").Strs("keys", keys).Msg("failed to select keys")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	values := make(map[string]string, len(keys))
	for rows.Next() {
		var name, value string
		if err = rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		values[name] = value
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return values, nil
}

func (r *keyValueRepository) Replace(ctx context.Context, values map[string]string, remove ...string) error {
	if len(values) == 0 && len(remove) == 0 {
		return ErrNoKeys
	}

	return r.inTx(ctx, "keyValueRepository.Replace", func(tx *sql.Tx) error {
		if len(values) > 0 {
			query, args, err := buildUpsertQuery(values, r.clock.Now().UTC())
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: upsert: %w", ErrExecutingStatement, err)
			}
		}

		if len(remove) > 0 {
			query, args, err := buildDeleteKeysQuery(remove)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: delete: %w", ErrExecutingStatement, err)
			}
		}

		return nil
	})
}

func (r *keyValueRepository) ReplaceIfExists(ctx context.Context, key, value, guard string) (bool, error) {
	var written bool
	err := r.inTx(ctx, "keyValueRepository.ReplaceIfExists", func(tx *sql.Tx) error {
		query, args, err := buildUpsertIfExistsQuery(key, value, guard, r.clock.Now().UTC())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: upsert: %w", ErrExecutingStatement, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: rows affected: %w", ErrExecutingStatement, err)
		}
		written = n > 0
		return nil
	})
	return written, err
}

func (r *keyValueRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return ErrNoKeys
	}

	return r.inTx(ctx, "keyValueRepository.Delete", func(tx *sql.Tx) error {
		query, args, err := buildDeleteKeysQuery(keys)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: delete: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

// inTx runs fn in a transaction that is committed when fn succeeds and
// rolled back otherwise.
func (r *keyValueRepository) inTx(ctx context.Context, funcName string, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		log.Err(err).Str("func", funcName).Msg("rolling back transaction")
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
