// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/models"
)

// queueRepository is the SQLite-backed implementation of [QueueRepository].
// Every method is a single statement, except Bury which moves the entry in
// one transaction.
type queueRepository struct {
	*DB
	ids    IDGenerator
	now    func() time.Time
	logger *logger.Logger
}

// NewQueueRepository constructs a [QueueRepository]. ids issues entry
// identifiers.
func NewQueueRepository(db *DB, ids IDGenerator, logger *logger.Logger) QueueRepository {
	return &queueRepository{
		DB:     db,
		ids:    ids,
		now:    time.Now,
		logger: logger,
	}
}

func (q *queueRepository) Enqueue(ctx context.Context, recordID string, op models.OperationKind, payload models.RecordPayload) error {
	log := logger.FromContext(ctx)

	entry := models.QueueEntry{
		ID:         q.ids.Generate(),
		RecordID:   recordID,
		Operation:  op,
		Payload:    payload,
		EnqueuedAt: q.now().UTC(),
	}

	query, args, err := buildEnqueueQuery(q.builder, entry)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Enqueue").
			Str("record_id", recordID).
			Str("operation", string(op)).
			Msg("failed to append queue entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrQueueEntryNotSaved
	}

	log.Debug().
		Str("func", "queueRepository.Enqueue").
		Str("entry_id", entry.ID).
		Str("record_id", recordID).
		Str("operation", string(op)).
		Msg("queue entry appended")

	return nil
}

func scanQueueEntry(row rowScanner) (models.QueueEntry, error) {
	var (
		e         models.QueueEntry
		operation string
		lastError sql.NullString
	)

	if err := row.Scan(
		&e.ID,
		&e.RecordID,
		&operation,
		&e.Payload,
		&e.EnqueuedAt,
		&e.RetryCount,
		&lastError,
	); err != nil {
		return models.QueueEntry{}, err
	}

	e.Operation = models.OperationKind(operation)
	if lastError.Valid {
		e.LastError = &lastError.String
	}

	return e, nil
}

func (q *queueRepository) Snapshot(ctx context.Context) ([]models.QueueEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSnapshotQuery(q.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Snapshot").
			Msg("failed to read queue snapshot")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.QueueEntry, 0, 32)
	for rows.Next() {
		entry, scanErr := scanQueueEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "queueRepository.Snapshot").
				Msg("failed to scan queue row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// Remove deletes a single entry. Removing an entry that is already gone is
// not an error.
func (q *queueRepository) Remove(ctx context.Context, entryID string) error {
	query, args, err := buildRemoveEntryQuery(q.builder, entryID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := q.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "queueRepository.Remove").
			Str("entry_id", entryID).
			Msg("failed to remove queue entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (q *queueRepository) IncrementRetry(ctx context.Context, entryID string, errText string) (int, error) {
	query, args, err := buildIncrementRetryQuery(q.builder, entryID, errText)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var retryCount int
	err = q.DB.QueryRowContext(ctx, query, args...).Scan(&retryCount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrQueueEntryNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "queueRepository.IncrementRetry").
			Str("entry_id", entryID).
			Msg("failed to increment retry count")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return retryCount, nil
}

// RemoveThrough deletes entryID together with the older entries of the same
// record. Entries queued after it stay.
func (q *queueRepository) RemoveThrough(ctx context.Context, recordID, entryID string) error {
	query, args, err := buildRemoveThroughQuery(q.builder, recordID, entryID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := q.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "queueRepository.RemoveThrough").
			Str("record_id", recordID).
			Str("entry_id", entryID).
			Msg("failed to remove queue entries of record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Bury moves entry into the dead-entry table and deletes it from the queue
// in one transaction.
func (q *queueRepository) Bury(ctx context.Context, entry models.QueueEntry, errText string) error {
	dead := models.DeadEntry{
		QueueEntry: entry,
		FinalError: errText,
		DeadAt:     q.now().UTC(),
	}

	insertQuery, insertArgs, err := buildInsertDeadEntryQuery(q.builder, dead)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	deleteQuery, deleteArgs, err := buildRemoveEntryQuery(q.builder, entry.ID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = q.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		res, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrQueueEntryNotFound
		}

		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "queueRepository.Bury").
			Str("entry_id", entry.ID).
			Str("record_id", entry.RecordID).
			Msg("failed to move queue entry to dead entries")
		return err
	}

	return nil
}

func (q *queueRepository) DeadEntries(ctx context.Context) ([]models.DeadEntry, error) {
	query, args, err := buildDeadEntriesQuery(q.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var dead []models.DeadEntry
	for rows.Next() {
		var (
			d         models.DeadEntry
			operation string
		)
		if err := rows.Scan(
			&d.ID,
			&d.RecordID,
			&operation,
			&d.Payload,
			&d.EnqueuedAt,
			&d.RetryCount,
			&d.FinalError,
			&d.DeadAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		d.Operation = models.OperationKind(operation)
		dead = append(dead, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return dead, nil
}

func (q *queueRepository) Count(ctx context.Context) (int, error) {
	query, args, err := buildCountQueueQuery(q.builder)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err := q.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}
