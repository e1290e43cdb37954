package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/models"
)

type logObserver struct {
	logger *logger.Logger
}

// NewLogObserver reports engine events as structured log lines.
func NewLogObserver(logger *logger.Logger) SyncObserver {
	return &logObserver{logger: logger}
}

func (o *logObserver) ConflictResolved(_ context.Context, event models.ConflictEvent) {
	o.logger.Info().
		Str("event", "conflict_resolved").
		Str("record_id", event.RecordID).
		Str("winner", string(event.Winner)).
		Time("local_updated_at", event.LocalUpdatedAt).
		Time("remote_updated_at", event.RemoteUpdatedAt).
		Send()
}

func (o *logObserver) EntryDropped(_ context.Context, entry models.QueueEntry, finalError string) {
	o.logger.Warn().
		Str("event", "entry_dropped").
		Str("record_id", entry.RecordID).
		Str("entry_id", entry.ID).
		Str("operation", string(entry.Operation)).
		Str("final_error", finalError).
		Send()
}

func (o *logObserver) CycleCompleted(_ context.Context, result models.CycleResult, elapsed time.Duration) {
	o.logger.Info().
		Str("event", "cycle_completed").
		Bool("success", result.Success).
		Bool("offline", result.Offline).
		Int("synced_items", result.SyncedItems).
		Int("failed_items", result.FailedItems).
		Int("errors", len(result.Errors)).
		Dur("elapsed", elapsed).
		Send()
}

type multiObserver []SyncObserver

// NewMultiObserver fans every event out to observers in order. Nil entries
// are skipped.
func NewMultiObserver(observers ...SyncObserver) SyncObserver {
	m := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

func (m multiObserver) ConflictResolved(ctx context.Context, event models.ConflictEvent) {
	for _, o := range m {
		o.ConflictResolved(ctx, event)
	}
}

func (m multiObserver) EntryDropped(ctx context.Context, entry models.QueueEntry, finalError string) {
	for _, o := range m {
		o.EntryDropped(ctx, entry, finalError)
	}
}

func (m multiObserver) CycleCompleted(ctx context.Context, result models.CycleResult, elapsed time.Duration) {
	for _, o := range m {
		o.CycleCompleted(ctx, result, elapsed)
	}
}
