package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/models"
)

// statusReconciler applies one outcome to the record store and the queue.
type statusReconciler struct {
	records  RecordSyncStore
	queue    SyncQueue
	ledger   *retryLedger
	observer SyncObserver
	now      func() time.Time
}

func newStatusReconciler(records RecordSyncStore, queue SyncQueue, ledger *retryLedger, observer SyncObserver) *statusReconciler {
	return &statusReconciler{
		records:  records,
		queue:    queue,
		ledger:   ledger,
		observer: observer,
		now:      time.Now,
	}
}

// Settle routes outcome by status. Settlement only covers what was sent: the
// entry and the older entries of its record leave the queue, and the record
// is written only if it was not edited after the entry's payload. Settling
// the same success twice is harmless.
func (r *statusReconciler) Settle(ctx context.Context, entry models.QueueEntry, outcome models.Outcome) error {
	switch outcome.Status {
	case models.OutcomeSuccess:
		return r.settleSuccess(ctx, entry, outcome)
	case models.OutcomeConflict:
		return r.settleConflict(ctx, entry, outcome)
	default:
		_, err := r.ledger.RecordFailure(ctx, entry, outcome.Error)
		return err
	}
}

func (r *statusReconciler) settleSuccess(ctx context.Context, entry models.QueueEntry, outcome models.Outcome) error {
	var remoteID *string
	if outcome.Data != nil && outcome.Data.RemoteID != nil && *outcome.Data.RemoteID != "" {
		remoteID = outcome.Data.RemoteID
	}

	err := r.records.MarkSynced(ctx, entry.RecordID, remoteID, entry.Payload.UpdatedAt, r.now().UTC())
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return fmt.Errorf("mark record %s as synced: %w", entry.RecordID, err)
	}

	return r.cleanup(ctx, entry)
}

func (r *statusReconciler) settleConflict(ctx context.Context, entry models.QueueEntry, outcome models.Outcome) error {
	local, err := r.records.Get(ctx, entry.RecordID)
	if errors.Is(err, store.ErrRecordNotFound) {
		local = recordFromEntry(entry)
	} else if err != nil {
		return fmt.Errorf("load record %s for conflict: %w", entry.RecordID, err)
	}

	remote, err := materializeRemote(local, outcome.Data)
	if err != nil {
		return fmt.Errorf("materialize remote record %s: %w", entry.RecordID, err)
	}

	winner, side := Resolve(local, remote)

	now := r.now().UTC()
	winner.SyncStatus = models.SyncStatusSynced
	winner.LastSyncedAt = &now
	if remote.RemoteID != nil {
		winner.RemoteID = remote.RemoteID
	}

	err = r.records.SaveSettled(ctx, winner, entry.Payload.UpdatedAt)
	if errors.Is(err, store.ErrRecordNotFound) {
		logger.FromContext(ctx).Debug().
			Str("func", "statusReconciler.settleConflict").
			Str("record_id", entry.RecordID).
			Msg("record missing or edited since dispatch, winner not stored")
	} else if err != nil {
		return fmt.Errorf("persist conflict winner %s: %w", entry.RecordID, err)
	}

	event := models.ConflictEvent{
		RecordID:        entry.RecordID,
		Winner:          side,
		LocalUpdatedAt:  local.UpdatedAt,
		RemoteUpdatedAt: remote.UpdatedAt,
	}
	logger.FromContext(ctx).Info().
		Str("func", "statusReconciler.settleConflict").
		Str("record_id", event.RecordID).
		Str("winner", string(event.Winner)).
		Time("local_updated_at", event.LocalUpdatedAt).
		Time("remote_updated_at", event.RemoteUpdatedAt).
		Msg("conflict resolved")
	r.observer.ConflictResolved(ctx, event)

	return r.cleanup(ctx, entry)
}

func (r *statusReconciler) cleanup(ctx context.Context, entry models.QueueEntry) error {
	if err := r.queue.RemoveThrough(ctx, entry.RecordID, entry.ID); err != nil {
		return fmt.Errorf("remove queue entries of record %s: %w", entry.RecordID, err)
	}

	return nil
}

// materializeRemote completes the authority's partial document with the
// local record so the resolver always compares whole records. Only nil
// fields are filled: a remote false or empty string is kept as is.
func materializeRemote(local models.Record, data *models.RemoteRecord) (models.Record, error) {
	doc := models.RemoteRecord{}
	if data != nil {
		doc = *data
	}

	if err := mergo.Merge(&doc, toRemoteRecord(local), mergo.WithoutDereference); err != nil {
		return models.Record{}, err
	}

	return models.Record{
		ID:           local.ID,
		Title:        *doc.Title,
		Description:  *doc.Description,
		Completed:    *doc.Completed,
		Deleted:      *doc.Deleted,
		CreatedAt:    *doc.CreatedAt,
		UpdatedAt:    *doc.UpdatedAt,
		SyncStatus:   local.SyncStatus,
		RemoteID:     doc.RemoteID,
		LastSyncedAt: local.LastSyncedAt,
	}, nil
}

func toRemoteRecord(r models.Record) models.RemoteRecord {
	p := r.Payload()
	updatedAt := p.UpdatedAt

	return models.RemoteRecord{
		ID:          r.ID,
		RemoteID:    r.RemoteID,
		Title:       p.Title,
		Description: p.Description,
		Completed:   p.Completed,
		Deleted:     p.Deleted,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   &updatedAt,
	}
}

// recordFromEntry rebuilds a record from a queue entry when the local copy is
// gone. Missing fields stay zero.
func recordFromEntry(entry models.QueueEntry) models.Record {
	rec := models.Record{
		ID:         entry.RecordID,
		UpdatedAt:  entry.Payload.UpdatedAt,
		SyncStatus: models.SyncStatusPending,
	}
	if p := entry.Payload; p.Title != nil {
		rec.Title = *p.Title
	}
	if p := entry.Payload; p.Description != nil {
		rec.Description = *p.Description
	}
	if p := entry.Payload; p.Completed != nil {
		rec.Completed = *p.Completed
	}
	if p := entry.Payload; p.Deleted != nil {
		rec.Deleted = *p.Deleted
	}
	if p := entry.Payload; p.CreatedAt != nil {
		rec.CreatedAt = *p.CreatedAt
	}

	return rec
}
