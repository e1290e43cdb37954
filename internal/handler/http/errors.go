// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Errors reported to callers of the HTTP API.
var (
	// ErrMissingHash is returned when the authority expects a HashSHA256
	// header and the request carries none.
	ErrMissingHash = errors.New("request hash is missing")

	// ErrIntegrityCheckFailed is returned when the HashSHA256 header does not
	// match the request body.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")
)
