package store

import (
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	kvTable     = "kv"
	kvName      = "name"
	kvValue     = "value"
	kvUpdatedAt = "updated_at"

	kvUpsertSuffix = "ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"
)

var sqlb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// buildSelectKeysQuery selects name and value of keys.
func buildSelectKeysQuery(keys []string) (string, []any, error) {
	return sqlb.
		Select(kvName, kvValue).
		From(kvTable).
		Where(sq.Eq{kvName: keys}).
		OrderBy(kvName).
		ToSql()
}

// buildUpsertQuery inserts or overwrites every entry of values. Entries are
// sorted by key so that the statement is deterministic.
func buildUpsertQuery(values map[string]string, now time.Time) (string, []any, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	q := sqlb.Insert(kvTable).Columns(kvName, kvValue, kvUpdatedAt)
	for _, k := range keys {
		q = q.Values(k, values[k], now)
	}

	return q.Suffix(kvUpsertSuffix).ToSql()
}

// buildUpsertIfExistsQuery writes key only while guard is stored. The
// check and the write are one statement.
func buildUpsertIfExistsQuery(key, value, guard string, now time.Time) (string, []any, error) {
	row := sqlb.
		Select().
		Column(sq.Expr("?, ?, ?", key, value, now)).
		Where(sq.Expr("EXISTS (SELECT 1 FROM "+kvTable+" WHERE "+kvName+" = ?)", guard))

	return sqlb.
		Insert(kvTable).
		Columns(kvName, kvValue, kvUpdatedAt).
		Select(row).
		Suffix(kvUpsertSuffix).
		ToSql()
}

// buildDeleteKeysQuery deletes keys.
func buildDeleteKeysQuery(keys []string) (string, []any, error) {
	return sqlb.
		Delete(kvTable).
		Where(sq.Eq{kvName: keys}).
		ToSql()
}
