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

// recordRepository is the SQLite-backed implementation of [RecordRepository].
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var (
		r            models.Record
		syncStatus   string
		remoteID     sql.NullString
		lastSyncedAt sql.NullTime
	)

	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.Description,
		&r.Completed,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.Deleted,
		&syncStatus,
		&remoteID,
		&lastSyncedAt,
	)
	if err != nil {
		return models.Record{}, err
	}

	r.SyncStatus = models.SyncStatus(syncStatus)
	if remoteID.Valid {
		r.RemoteID = &remoteID.String
	}
	if lastSyncedAt.Valid {
		t := lastSyncedAt.Time
		r.LastSyncedAt = &t
	}

	return r, nil
}

func (r *recordRepository) Create(ctx context.Context, record models.Record) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertRecordQuery(r.builder, record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrRecordAlreadyExists, record.ID)
		}
		log.Err(err).
			Str("func", "recordRepository.Create").
			Str("record_id", record.ID).
			Msg("failed to insert record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRecordNotSaved
	}

	return nil
}

func (r *recordRepository) Get(ctx context.Context, id string) (models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRecordQuery(r.builder, id)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := scanRecord(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Get").
			Str("record_id", id).
			Msg("failed to scan record row")
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

func (r *recordRepository) List(ctx context.Context) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecordsQuery(r.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.List").
			Msg("failed to execute query for listing records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 16)
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.List").
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *recordRepository) Save(ctx context.Context, record models.Record) error {
	query, args, err := buildSaveRecordQuery(r.builder, record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingRecord(ctx, "recordRepository.Save", record.ID, query, args)
}

// SaveSettled overwrites the record unless its updated_at has moved past
// version. A skipped write reports [ErrRecordNotFound], the same as a
// missing row.
func (r *recordRepository) SaveSettled(ctx context.Context, record models.Record, version time.Time) error {
	query, args, err := buildSaveSettledQuery(r.builder, record, version)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingRecord(ctx, "recordRepository.SaveSettled", record.ID, query, args)
}

// MarkSynced stores the sync time and remote id. The status becomes synced
// only if the record was not edited after version.
func (r *recordRepository) MarkSynced(ctx context.Context, id string, remoteID *string, version, at time.Time) error {
	query, args, err := buildMarkSyncedQuery(r.builder, id, remoteID, version, at)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingRecord(ctx, "recordRepository.MarkSynced", id, query, args)
}

// MarkError is a no-op, reported as [ErrRecordNotFound], for a record edited
// after version.
func (r *recordRepository) MarkError(ctx context.Context, id string, version time.Time) error {
	query, args, err := buildMarkErrorQuery(r.builder, id, version)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingRecord(ctx, "recordRepository.MarkError", id, query, args)
}

func (r *recordRepository) CountNeedingSync(ctx context.Context) (int, error) {
	query, args, err := buildCountNeedingSyncQuery(r.builder)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordRepository.CountNeedingSync").
			Msg("failed to count records needing sync")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *recordRepository) LatestSyncedAt(ctx context.Context) (*time.Time, error) {
	query, args, err := buildLatestSyncedAtQuery(r.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var at time.Time
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordRepository.LatestSyncedAt").
			Msg("failed to read latest sync time")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return &at, nil
}

// execAffectingRecord executes a single-row UPDATE and maps "no rows" to
// [ErrRecordNotFound].
func (r *recordRepository) execAffectingRecord(ctx context.Context, fn, id, query string, args []any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", fn).
			Str("record_id", id).
			Msg("failed to execute record update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrRecordNotFound
	}

	return nil
}
