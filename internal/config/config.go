// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the task
// client. It aggregates all sub-configurations and is populated by merging
// defaults, environment variables, command-line flags, and an optional JSON
// file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds presentation-level settings of the client.
	App App `envPrefix:"APP_"`

	// Storage holds configuration of the local session database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the REST backend address and outbound timeouts.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds presentation-level settings.
type App struct {
	// PageSize is the number of tasks and users requested per page.
	// Env: APP_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`
}

// Storage groups the configuration of the local storage backends.
type Storage struct {
	// DB holds the session database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings of the local SQLite database.
type DB struct {
	// DSN is the SQLite file path or DSN (e.g. "tasks.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds settings of the REST backend connection.
type Adapter struct {
	// HTTPAddress is the base URL of the REST API including the "/api"
	// prefix (e.g. "http://localhost:9002/api"). A missing scheme defaults
	// to http.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request, including the token
	// refresh call (e.g. "45s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// BoardRefreshInterval is how often the task board reloads itself.
	// Env: WORKERS_BOARD_REFRESH_INTERVAL
	BoardRefreshInterval time.Duration `env:"BOARD_REFRESH_INTERVAL"`
}

// Default values applied beneath every other source.
const (
	DefaultHTTPAddress          = "http://localhost:9002/api"
	DefaultRequestTimeout       = 45 * time.Second
	DefaultDSN                  = "tasks.db"
	DefaultBoardRefreshInterval = time.Minute
	DefaultPageSize             = 10
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{PageSize: DefaultPageSize},
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
		Adapter: Adapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{BoardRefreshInterval: DefaultBoardRefreshInterval},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  0. Built-in defaults
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
