package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-sync/models"
)

// RecordService defines the client-side contract for managing records. Every
// mutating call writes the local record store first and then appends exactly
// one entry to the mutation queue.
type RecordService interface {
	// Create assigns a new identifier, stores the record as pending and
	// enqueues a create entry carrying the full snapshot.
	Create(ctx context.Context, req models.CreateRecordRequest) (models.Record, error)

	// Get returns an active record. Soft-deleted records are reported as not
	// found.
	Get(ctx context.Context, id string) (models.Record, error)

	// List returns every active record.
	List(ctx context.Context) ([]models.Record, error)

	// Update applies the non-nil fields of req and enqueues an update entry
	// carrying only those fields.
	Update(ctx context.Context, req models.UpdateRecordRequest) (models.Record, error)

	// Delete soft-deletes the record and enqueues a delete entry.
	Delete(ctx context.Context, id string) error
}

// RecordServiceWrapper defines middleware composition for RecordService.
// Implementations wrap an existing RecordService to add behavior such as
// validation.
type RecordServiceWrapper interface {
	Wrap(RecordService) RecordService
}

// SyncService runs synchronization cycles against the remote authority.
type SyncService interface {
	// Run executes one cycle. It never returns an error: every failure is
	// folded into the returned result. Concurrent calls are serialized.
	Run(ctx context.Context) models.CycleResult

	// DeadEntries lists queue entries dropped after exhausting retries.
	DeadEntries(ctx context.Context) ([]models.DeadEntry, error)
}

// StatusService reports the derived synchronization state of the client.
type StatusService interface {
	Status(ctx context.Context) (models.StatusReport, error)
}

// ClientSyncJob defines the contract for a background worker that
// periodically runs a sync cycle.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every interval,
	// defaulting to 1 minute if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

// ConnectivityGate decides whether a cycle may contact the remote authority.
type ConnectivityGate interface {
	Probe(ctx context.Context) bool
}

// Dispatcher sends one batch to the remote authority and returns exactly one
// outcome per submitted entry, keyed by entry id. A non-nil error is always a
// *TransportError and means no outcome is usable.
type Dispatcher interface {
	Dispatch(ctx context.Context, batch models.Batch) (map[string]models.Outcome, error)
}

// SyncObserver receives engine events. Implementations must be safe for
// concurrent use and must not block.
type SyncObserver interface {
	ConflictResolved(ctx context.Context, event models.ConflictEvent)
	EntryDropped(ctx context.Context, entry models.QueueEntry, finalError string)
	CycleCompleted(ctx context.Context, result models.CycleResult, elapsed time.Duration)
}

// RecordSyncStore is the part of the record store the sync engine may touch.
// Writes carry the updated_at of the dispatched payload as version; a record
// edited after it keeps its local state.
type RecordSyncStore interface {
	Get(ctx context.Context, id string) (models.Record, error)
	SaveSettled(ctx context.Context, record models.Record, version time.Time) error
	MarkSynced(ctx context.Context, id string, remoteID *string, version, at time.Time) error
	MarkError(ctx context.Context, id string, version time.Time) error
	CountNeedingSync(ctx context.Context) (int, error)
	LatestSyncedAt(ctx context.Context) (*time.Time, error)
}

// SyncQueue is the part of the mutation queue the sync engine consumes.
type SyncQueue interface {
	Snapshot(ctx context.Context) ([]models.QueueEntry, error)
	Remove(ctx context.Context, entryID string) error
	IncrementRetry(ctx context.Context, entryID string, errText string) (int, error)
	RemoveThrough(ctx context.Context, recordID, entryID string) error
	Bury(ctx context.Context, entry models.QueueEntry, errText string) error
	DeadEntries(ctx context.Context) ([]models.DeadEntry, error)
}

// QueueCounter reports the depth of the mutation queue.
type QueueCounter interface {
	Count(ctx context.Context) (int, error)
}

// QueueAppender is the only queue capability record mutations need.
type QueueAppender interface {
	Enqueue(ctx context.Context, recordID string, op models.OperationKind, payload models.RecordPayload) error
}

// RecordStore is the record persistence used by [RecordService].
type RecordStore interface {
	Create(ctx context.Context, record models.Record) error
	Get(ctx context.Context, id string) (models.Record, error)
	List(ctx context.Context) ([]models.Record, error)
	Save(ctx context.Context, record models.Record) error
}
