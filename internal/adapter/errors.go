package adapter

import "errors"

// Transport errors. HTTP status codes are mapped onto these by mapHTTPError.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("request integrity check failed")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("remote internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("remote service unavailable")
	ErrGatewayTimeout      = errors.New("gateway timeout")

	// ErrUnreachable wraps network-level failures: refused connections, DNS
	// errors and deadlines.
	ErrUnreachable = errors.New("remote authority unreachable")

	// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed response from remote authority")
)
