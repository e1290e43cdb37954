// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// OperationKind is the kind of mutation captured by a queue entry.
type OperationKind string

const (
	OperationCreate OperationKind = "create"
	OperationUpdate OperationKind = "update"
	OperationDelete OperationKind = "delete"
)

// IsValid reports whether k is one of the known operation kinds.
func (k OperationKind) IsValid() bool {
	switch k {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// RecordPayload is a partial snapshot of record fields relevant to one
// mutation. Nil fields were not touched by the mutation.
//
// The payload is persisted as a JSON document in the queue table, hence the
// [driver.Valuer] and [sql.Scanner] implementations.
type RecordPayload struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	Deleted     *bool      `json:"deleted,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Value implements driver.Valuer.
func (p RecordPayload) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal record payload: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (p *RecordPayload) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = RecordPayload{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return errors.New("unsupported record payload source type")
	}

	if err := json.Unmarshal(raw, p); err != nil {
		return fmt.Errorf("unmarshal record payload: %w", err)
	}
	return nil
}

// QueueEntry is one pending mutation awaiting reconciliation with the remote
// authority.
type QueueEntry struct {
	// ID is the unique entry identifier.
	ID string `json:"id"`

	// RecordID identifies the mutated record.
	RecordID string `json:"record_id"`

	// Operation is the mutation kind.
	Operation OperationKind `json:"operation"`

	// Payload is the partial record snapshot for the mutation.
	Payload RecordPayload `json:"data"`

	// EnqueuedAt orders entries in the queue (FIFO).
	EnqueuedAt time.Time `json:"timestamp"`

	// RetryCount is the number of failed dispatch attempts so far.
	RetryCount int `json:"retry_count"`

	// LastError holds the error text of the most recent failed attempt.
	LastError *string `json:"last_error,omitempty"`
}

// Batch is an ordered, bounded slice of queue entries taken from a single
// snapshot. Batches are never persisted.
type Batch []QueueEntry

// DeadEntry is a queue entry that exceeded the retry budget and was moved out
// of the queue for manual inspection.
type DeadEntry struct {
	QueueEntry
	FinalError string    `json:"final_error"`
	DeadAt     time.Time `json:"dead_at"`
}
