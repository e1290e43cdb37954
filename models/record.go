// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncStatus describes how far a record is from being reconciled with the
// remote authority.
type SyncStatus string

const (
	// SyncStatusPending marks a record with local changes not yet confirmed
	// by the remote authority.
	SyncStatusPending SyncStatus = "pending"
	// SyncStatusSynced marks a record whose latest state was accepted (or
	// resolved) by the remote authority.
	SyncStatusSynced SyncStatus = "synced"
	// SyncStatusError marks a record whose pending mutation was dropped after
	// exhausting the retry budget.
	SyncStatusError SyncStatus = "error"
)

// Record is the synchronized domain entity: a single to-do item.
//
// Records are never physically deleted by the client. A soft-deleted record
// is hidden from the active read paths but stays addressable until the
// deletion has been reconciled with the remote authority.
type Record struct {
	// ID is the stable, client-assigned identifier (UUIDv7).
	ID string `json:"id"`

	// Title is the short human-readable summary of the item.
	Title string `json:"title"`

	// Description holds optional free-form details.
	Description string `json:"description"`

	// Completed reports whether the item is done.
	Completed bool `json:"completed"`

	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is re-stamped by every mutating operation and drives
	// last-write-wins conflict resolution.
	UpdatedAt time.Time `json:"updated_at"`

	// Deleted is the soft-delete flag.
	Deleted bool `json:"deleted"`

	// SyncStatus is the synchronization state of the record.
	SyncStatus SyncStatus `json:"sync_status"`

	// RemoteID is the identifier assigned by the remote authority, if any.
	RemoteID *string `json:"remote_id,omitempty"`

	// LastSyncedAt is the moment the record was last settled.
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
}

// Payload returns a full snapshot of the record's user-visible fields in the
// shape carried by queue entries.
func (r Record) Payload() RecordPayload {
	title := r.Title
	description := r.Description
	completed := r.Completed
	deleted := r.Deleted
	createdAt := r.CreatedAt

	return RecordPayload{
		Title:       &title,
		Description: &description,
		Completed:   &completed,
		Deleted:     &deleted,
		CreatedAt:   &createdAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// RemoteRecord is the authority's view of a record as returned inside a batch
// outcome. Fields are optional because the authority may answer with a
// partial document; see [Record] for the materialized form.
type RemoteRecord struct {
	ID          string     `json:"id,omitempty"`
	RemoteID    *string    `json:"server_id,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	Deleted     *bool      `json:"deleted,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
