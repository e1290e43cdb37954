// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Default values applied to fields that no source has set.
const (
	DefaultBatchSize    = 10
	DefaultMaxRetries   = 3
	DefaultProbeTimeout = 5 * time.Second
	DefaultBatchTimeout = 8 * time.Second
	DefaultSyncInterval = time.Minute

	DefaultClientAddress   = "localhost:8081"
	DefaultServerAddress   = "localhost:8080"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultClientDSN       = "todo-sync.db"
	DefaultRemoteAuthority = "http://localhost:8080"
)

// StructuredConfig is the top-level configuration container shared by the
// client and the server binaries. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the integrity hash key.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address of the HTTP API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the location of the remote authority and the per-call
	// timeouts used when talking to it.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds the synchronization engine tunables.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds log output settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// HashKey is the HMAC key used to sign and verify batch request bodies
	// (HashSHA256 header). Signing is disabled when empty.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is a SQLite file path on the client or a PostgreSQL connection
	// string on the server.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds configuration of the remote authority client.
type Adapter struct {
	// RemoteURL is the base URL of the remote authority.
	// Env: ADAPTER_REMOTE_URL
	RemoteURL string `env:"REMOTE_URL"`

	// ProbeTimeout bounds a single connectivity probe (GET /health).
	// Env: ADAPTER_PROBE_TIMEOUT
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`

	// BatchTimeout bounds a single POST /sync/batch call.
	// Env: ADAPTER_BATCH_TIMEOUT
	BatchTimeout time.Duration `env:"BATCH_TIMEOUT"`
}

// Sync holds the synchronization engine tunables.
type Sync struct {
	// BatchSize is the maximum number of queue entries per remote call.
	// Env: SYNC_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`

	// MaxRetries is the number of failed attempts an entry may accumulate
	// before it is taken out of the queue.
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// DeadLetter moves expired entries to the dead-entry set instead of
	// deleting them.
	// Env: SYNC_DEAD_LETTER
	DeadLetter *bool `env:"DEAD_LETTER"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the background sync cycle runs.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Log holds log output settings.
type Log struct {
	// File is the path of the rotated log file. Logs go to stdout when empty.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

func defaultConfig() *StructuredConfig {
	deadLetter := true

	return &StructuredConfig{
		Storage: Storage{DB: DB{DSN: DefaultClientDSN}},
		Server: Server{
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			RemoteURL:    DefaultRemoteAuthority,
			ProbeTimeout: DefaultProbeTimeout,
			BatchTimeout: DefaultBatchTimeout,
		},
		Sync: Sync{
			BatchSize:  DefaultBatchSize,
			MaxRetries: DefaultMaxRetries,
			DeadLetter: &deadLetter,
		},
		Workers: Workers{SyncInterval: DefaultSyncInterval},
	}
}
