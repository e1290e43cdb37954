// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the client
// and authority HTTP handlers.
//
// All Msg* constants are human-readable message strings written into HTTP
// error bodies when the underlying error must not leak to callers.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInternalServerError is returned when an unexpected failure occurs
	// that the caller cannot resolve, such as a storage error.
	MsgInternalServerError = "internal server error"

	// MsgRemoteUnavailable is returned by the client when the remote
	// authority cannot be reached.
	MsgRemoteUnavailable = "remote authority is unavailable"

	// MsgStorageUnavailable is returned by the authority health check when
	// its database does not answer.
	MsgStorageUnavailable = "storage is unavailable"
)
