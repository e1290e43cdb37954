// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

// validate checks the merged [StructuredConfig] for values that no view can
// accept, regardless of which binary consumes it.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.BatchSize < 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Sync.MaxRetries < 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RemoteURL == "" || cfg.Adapter.ProbeTimeout <= 0 || cfg.Adapter.BatchTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if u, err := url.Parse(cfg.Adapter.RemoteURL); err != nil || u.Host == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.BatchSize <= 0 || cfg.Sync.MaxRetries < 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.DSN == "" || !isPostgresDSN(cfg.DSN) {
		return ErrInvalidStorageConfigs
	}

	if cfg.HTTPAddress == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}
