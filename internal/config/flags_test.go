package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "http://127.0.0.1:9002/api",
		"-d", "session.db",
		"-config", "cfg.json",
		"-request-timeout", "10s",
		"-refresh-interval", "30s",
		"-page-size", "50",
	})

	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9002/api", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "session.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.Workers.BoardRefreshInterval)
	assert.Equal(t, 50, cfg.App.PageSize)
}

func TestParseFlags_ShortConfigAlias(t *testing.T) {
	cfg, err := parseFlags([]string{"-c", "short.json"})
	require.NoError(t, err)
	assert.Equal(t, "short.json", cfg.JSONFilePath)
}

func TestParseFlags_Empty(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_BadDuration(t *testing.T) {
	_, err := parseFlags([]string{"-request-timeout", "forever"})
	require.Error(t, err)
}
