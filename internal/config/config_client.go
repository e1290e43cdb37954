package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// HashKey signs outgoing batch bodies when non-empty.
	HashKey string
}

// ClientAdapter holds the settings of the remote authority client.
type ClientAdapter struct {
	// RemoteURL is the base URL of the remote authority.
	RemoteURL string
	// ProbeTimeout bounds the connectivity probe.
	ProbeTimeout time.Duration
	// BatchTimeout bounds a single batch dispatch.
	BatchTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite database file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientServer holds the local HTTP API settings.
type ClientServer struct {
	// HTTPAddress is the listen address of the local API.
	HTTPAddress string
	// RequestTimeout bounds a single inbound request.
	RequestTimeout time.Duration
}

// ClientSync holds the synchronization engine tunables.
type ClientSync struct {
	// BatchSize is the maximum number of entries per dispatch.
	BatchSize int
	// MaxRetries is the retry budget of a single queue entry.
	MaxRetries int
	// DeadLetter keeps expired entries in the dead-entry set.
	DeadLetter bool
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background sync cycle runs.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Server  ClientServer
	Sync    ClientSync
	Workers ClientWorkers
	// LogFile is the rotated log file path; empty means stdout.
	LogFile string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	httpAddress := cfg.Server.HTTPAddress
	if httpAddress == "" {
		httpAddress = DefaultClientAddress
	}

	deadLetter := true
	if cfg.Sync.DeadLetter != nil {
		deadLetter = *cfg.Sync.DeadLetter
	}

	return &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
		},
		Adapter: ClientAdapter{
			RemoteURL:    cfg.Adapter.RemoteURL,
			ProbeTimeout: cfg.Adapter.ProbeTimeout,
			BatchTimeout: cfg.Adapter.BatchTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Server: ClientServer{
			HTTPAddress:    httpAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		Sync: ClientSync{
			BatchSize:  cfg.Sync.BatchSize,
			MaxRetries: cfg.Sync.MaxRetries,
			DeadLetter: deadLetter,
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		LogFile: cfg.Log.File,
	}
}
