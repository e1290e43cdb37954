package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		host        string
		port        int
	}{
		{name: "localhost", input: "localhost:8080", host: "localhost", port: 8080},
		{name: "ipv4", input: "10.0.0.1:443", host: "10.0.0.1", port: 443},
		{name: "all interfaces", input: ":8081", host: "", port: 8081},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non numeric port", input: "localhost:abc", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "port out of range", input: "localhost:70000", expectError: true},
		{name: "hostname that is not an ip", input: "example.com:80", expectError: true},
		{name: "too many colons", input: "a:b:c", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := &NetAddress{}
			err := addr.Set(tt.input)
			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, NetAddress{}, *addr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.host, addr.Host)
			assert.Equal(t, tt.port, addr.Port)
		})
	}
}

// TestParseFlags tests flag parsing over explicit argument lists
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-a", "localhost:8081",
				"-d", "todo.db",
				"-r", "http://authority:8080",
				"-c", "/path/to/config.json",
				"-hash-key", "security_hash",
				"-batch-size", "4",
				"-max-retries", "2",
				"-probe-timeout", "1s",
				"-batch-timeout", "3s",
				"-request-timeout", "30s",
				"-sync-interval", "10s",
				"-log-file", "client.log",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
				assert.Equal(t, "todo.db", cfg.Storage.DB.DSN)
				assert.Equal(t, "http://authority:8080", cfg.Adapter.RemoteURL)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
				assert.Equal(t, "security_hash", cfg.App.HashKey)
				assert.Equal(t, 4, cfg.Sync.BatchSize)
				assert.Equal(t, 2, cfg.Sync.MaxRetries)
				assert.Nil(t, cfg.Sync.DeadLetter)
				assert.Equal(t, time.Second, cfg.Adapter.ProbeTimeout)
				assert.Equal(t, 3*time.Second, cfg.Adapter.BatchTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
				assert.Equal(t, 10*time.Second, cfg.Workers.SyncInterval)
				assert.Equal(t, "client.log", cfg.Log.File)
			},
		},
		{
			name: "config alias flag",
			args: []string{"-config", "/path/to/config.json"},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, &StructuredConfig{}, cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(tt.args)
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

// TestParseFlags_Invalid verifies that malformed values are reported instead
// of terminating the process.
func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "invalid address format", args: []string{"-a", "invalid"}},
		{name: "invalid port in address", args: []string{"-a", "localhost:abc"}},
		{name: "invalid batch size", args: []string{"-batch-size", "many"}},
		{name: "invalid duration", args: []string{"-probe-timeout", "soon"}},
		{name: "unknown flag", args: []string{"-grpc-address", "localhost:9090"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(tt.args)
			require.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
