// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Markers of a cycle error that is not tied to a single record.
const (
	GlobalErrorRecordID                = "global"
	GlobalErrorOperation OperationKind = "sync"
)

// OutcomeStatus is the result kind of dispatching one queue entry.
type OutcomeStatus string

const (
	OutcomeSuccess  OutcomeStatus = "success"
	OutcomeConflict OutcomeStatus = "conflict"
	OutcomeError    OutcomeStatus = "error"
)

// Outcome is the remote authority's verdict on one submitted queue entry.
type Outcome struct {
	// ID echoes the submitted queue entry identifier.
	ID string `json:"id"`

	// Status is the verdict.
	Status OutcomeStatus `json:"status"`

	// Data carries the authority's version of the record: the assigned
	// remote identifier on success, the conflicting server copy on conflict.
	Data *RemoteRecord `json:"data,omitempty"`

	// Error is the failure text for the error status.
	Error string `json:"error,omitempty"`
}

// BatchRequest is the body of POST /sync/batch.
type BatchRequest struct {
	Items           []QueueEntry `json:"items"`
	ClientTimestamp time.Time    `json:"client_timestamp"`
}

// BatchResponse is the authority's answer to a [BatchRequest]. Every
// processed item corresponds 1:1 to a submitted entry identifier.
type BatchResponse struct {
	ProcessedItems  []Outcome `json:"processed_items"`
	ServerTimestamp time.Time `json:"server_timestamp"`
}

// CycleError describes one failure accumulated during a sync cycle.
type CycleError struct {
	RecordID  string        `json:"record_id"`
	Operation OperationKind `json:"operation"`
	Error     string        `json:"error"`
	Timestamp time.Time     `json:"timestamp"`
}

// CycleResult aggregates a single sync invocation. It is returned to the
// caller and never persisted.
type CycleResult struct {
	Success     bool         `json:"success"`
	SyncedItems int          `json:"synced_items"`
	FailedItems int          `json:"failed_items"`
	Errors      []CycleError `json:"errors"`

	// Offline is set when the cycle was aborted because the remote authority
	// was unreachable.
	Offline bool `json:"-"`
}

// Side names the winner of a conflict resolution.
type Side string

const (
	SideLocal  Side = "local"
	SideRemote Side = "remote"
)

// ConflictEvent describes one resolved conflict.
type ConflictEvent struct {
	RecordID        string
	Winner          Side
	LocalUpdatedAt  time.Time
	RemoteUpdatedAt time.Time
}
