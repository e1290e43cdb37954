// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ServerConfig is the configuration view of the remote authority server.
type ServerConfig struct {
	// HashKey verifies the HashSHA256 header of batch requests when non-empty.
	HashKey string
	// HTTPAddress is the listen address.
	HTTPAddress string
	// RequestTimeout bounds a single inbound request.
	RequestTimeout time.Duration
	// DSN is the PostgreSQL connection string.
	DSN string
}

// GetServerConfig builds and validates the server config view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)

	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	httpAddress := cfg.Server.HTTPAddress
	if httpAddress == "" {
		httpAddress = DefaultServerAddress
	}

	return &ServerConfig{
		HashKey:        cfg.App.HashKey,
		HTTPAddress:    httpAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		DSN:            cfg.Storage.DB.DSN,
	}
}
