// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildSelectKeysQuery(t *testing.T) {
	query, args, err := buildSelectKeysQuery([]string{"token", "user"})
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "select name, value from kv")
	assert.Contains(t, q, "where name in (?,?)")
	assert.Equal(t, []any{"token", "user"}, args)
}

func Test_buildUpsertQuery_SortedAndParameterised(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	query, args, err := buildUpsertQuery(map[string]string{
		"user":  "{}",
		"token": "t",
	}, now)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.True(t, strings.HasPrefix(q, "insert into kv (name,value,updated_at) values (?,?,?),(?,?,?)"), q)
	assert.Contains(t, q, "on conflict(name) do update set value = excluded.value")
	assert.Equal(t, []any{"token", "t", now, "user", "{}", now}, args)
	assert.NotContains(t, query, "$1")
}

func Test_buildDeleteKeysQuery(t *testing.T) {
	query, args, err := buildDeleteKeysQuery([]string{"token", "refreshToken", "user"})
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM kv WHERE name IN (?,?,?)", query)
	assert.Equal(t, []any{"token", "refreshToken", "user"}, args)
}

func Test_buildUpsertIfExistsQuery(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	query, args, err := buildUpsertIfExistsQuery("user", "{}", "token", now)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.True(t, strings.HasPrefix(q, "insert into kv (name,value,updated_at) select ?, ?, ? where exists (select 1 from kv where name = ?)"), q)
	assert.Contains(t, q, "on conflict(name) do update set value = excluded.value")
	assert.Equal(t, []any{"user", "{}", now, "token"}, args)
}
