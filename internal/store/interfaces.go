// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// RecordRepository is the client-side record store. Get returns soft-deleted
// records too; List does not. The version arguments are the updated_at a
// settlement was computed for: rows edited after it are not touched.
type RecordRepository interface {
	Create(ctx context.Context, record models.Record) error
	Get(ctx context.Context, id string) (models.Record, error)
	List(ctx context.Context) ([]models.Record, error)
	Save(ctx context.Context, record models.Record) error
	SaveSettled(ctx context.Context, record models.Record, version time.Time) error
	MarkSynced(ctx context.Context, id string, remoteID *string, version, at time.Time) error
	MarkError(ctx context.Context, id string, version time.Time) error
	CountNeedingSync(ctx context.Context) (int, error)
	LatestSyncedAt(ctx context.Context) (*time.Time, error)
}

// QueueRepository is the durable, append-ordered mutation queue.
type QueueRepository interface {
	Enqueue(ctx context.Context, recordID string, op models.OperationKind, payload models.RecordPayload) error
	Snapshot(ctx context.Context) ([]models.QueueEntry, error)
	Remove(ctx context.Context, entryID string) error
	IncrementRetry(ctx context.Context, entryID string, errText string) (int, error)
	RemoveThrough(ctx context.Context, recordID, entryID string) error
	Bury(ctx context.Context, entry models.QueueEntry, errText string) error
	DeadEntries(ctx context.Context) ([]models.DeadEntry, error)
	Count(ctx context.Context) (int, error)
}

// AuthorityRepository stores the authoritative copy of records on the server.
type AuthorityRepository interface {
	Find(ctx context.Context, recordID string) (models.RemoteRecord, error)
	Upsert(ctx context.Context, record models.RemoteRecord) error
	MarkDeleted(ctx context.Context, recordID string, at time.Time) error
	Ping(ctx context.Context) error
}

// IDGenerator issues identifiers for new queue entries.
type IDGenerator interface {
	Generate() string
}
