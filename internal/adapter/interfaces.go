// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote authority.
//
// The primary abstraction is [RemoteAdapter], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrServiceUnavailable] for 503, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-todo-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_adapter_mock.go -package=mock

// RemoteAdapter defines transport-agnostic communication with the remote
// authority. Implementations are responsible for serialisation, integrity
// headers and mapping transport-level errors to the sentinel values defined in
// this package. Deadlines come from ctx.
type RemoteAdapter interface {
	// Health probes the authority. A nil error means it answered with 2xx.
	Health(ctx context.Context) error

	// SendBatch submits one batch of queue entries and returns the decoded
	// per-entry verdicts. Any network failure, non-2xx status or undecodable
	// body is returned as an error.
	SendBatch(ctx context.Context, req models.BatchRequest) (models.BatchResponse, error)
}
