package service

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectivity aborts a sync cycle before any queue entry is read.
	ErrConnectivity = errors.New("remote authority is unreachable")

	// ErrTransport matches every *TransportError.
	ErrTransport = errors.New("batch transport failure")

	ErrInvalidBatchSize  = errors.New("batch size must be positive")
	ErrMissingOutcome    = errors.New("no outcome returned for entry")
	ErrUnknownOutcome    = errors.New("unknown outcome status")
	ErrCycleAborted      = errors.New("sync cycle aborted")
	ErrStaleWrite        = errors.New("remote copy is newer than the submitted change")
	ErrUnsupportedChange = errors.New("unsupported change operation")

	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)

// TransportError reports that a whole batch could not be delivered or its
// response could not be read. Every entry of the batch is treated as failed.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
