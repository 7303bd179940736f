// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks the merged [StructuredConfig]. Group-level rules live in
// [ClientConfig.validate]; here only values that no later view can repair
// are rejected.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.PageSize < 0 {
		return ErrInvalidAppConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.BoardRefreshInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.PageSize < 1 || cfg.App.PageSize > 100 {
		return ErrInvalidAppConfigs
	}

	return nil
}
