package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/models"
)

// DefaultMaxRetries is the number of failed attempts an entry may accumulate
// before it leaves the queue.
const DefaultMaxRetries = 3

// retryLedger counts failed attempts per queue entry and drops entries that
// exceed maxRetries. With deadLetter set, dropped entries are kept in the
// dead-entry table, otherwise they are deleted.
type retryLedger struct {
	queue      SyncQueue
	records    RecordSyncStore
	observer   SyncObserver
	maxRetries int
	deadLetter bool
}

func newRetryLedger(queue SyncQueue, records RecordSyncStore, observer SyncObserver, maxRetries int, deadLetter bool) *retryLedger {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}

	return &retryLedger{
		queue:      queue,
		records:    records,
		observer:   observer,
		maxRetries: maxRetries,
		deadLetter: deadLetter,
	}
}

// RecordFailure stores errText on the entry and bumps its retry count. It
// reports expired when the entry was dropped. An entry that is no longer
// queued, because a later entry of the same record already settled it, is
// ignored.
func (l *retryLedger) RecordFailure(ctx context.Context, entry models.QueueEntry, errText string) (bool, error) {
	count, err := l.queue.IncrementRetry(ctx, entry.ID, errText)
	if errors.Is(err, store.ErrQueueEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("record failure of entry %s: %w", entry.ID, err)
	}
	if count <= l.maxRetries {
		return false, nil
	}

	entry.RetryCount = count
	entry.LastError = &errText

	if l.deadLetter {
		err = l.queue.Bury(ctx, entry, errText)
	} else {
		err = l.queue.Remove(ctx, entry.ID)
	}
	if err != nil && !errors.Is(err, store.ErrQueueEntryNotFound) {
		return false, fmt.Errorf("drop entry %s: %w", entry.ID, err)
	}

	// A record edited after this entry still has newer entries queued and
	// stays pending.
	if err = l.records.MarkError(ctx, entry.RecordID, entry.Payload.UpdatedAt); err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return true, fmt.Errorf("mark record %s as failed: %w", entry.RecordID, err)
	}

	logger.FromContext(ctx).Warn().
		Str("func", "retryLedger.RecordFailure").
		Str("entry_id", entry.ID).
		Str("record_id", entry.RecordID).
		Int("retry_count", count).
		Bool("dead_letter", l.deadLetter).
		Str("final_error", errText).
		Msg("queue entry dropped after exhausting retries")
	l.observer.EntryDropped(ctx, entry, errText)

	return true, nil
}
