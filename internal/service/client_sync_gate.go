package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
)

// DefaultProbeTimeout bounds a single health probe.
const DefaultProbeTimeout = 5 * time.Second

type connectivityGate struct {
	remote  adapter.RemoteAdapter
	timeout time.Duration
}

// NewConnectivityGate returns a gate that probes the authority's health
// endpoint. A non-positive timeout falls back to DefaultProbeTimeout.
func NewConnectivityGate(remote adapter.RemoteAdapter, timeout time.Duration) ConnectivityGate {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	return &connectivityGate{remote: remote, timeout: timeout}
}

// Probe reports true only when the authority answered 2xx within the timeout.
func (g *connectivityGate) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.remote.Health(ctx); err != nil {
		logger.FromContext(ctx).Debug().Err(err).
			Str("func", "connectivityGate.Probe").
			Msg("remote authority is not reachable")
		return false
	}

	return true
}
