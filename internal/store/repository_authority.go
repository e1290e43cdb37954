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

// authorityRepository is the PostgreSQL-backed implementation of
// [AuthorityRepository].
type authorityRepository struct {
	*DB
	logger *logger.Logger
}

// NewAuthorityRepository constructs an [AuthorityRepository] backed by db.
func NewAuthorityRepository(db *DB, logger *logger.Logger) AuthorityRepository {
	return &authorityRepository{
		DB:     db,
		logger: logger,
	}
}

func (a *authorityRepository) Find(ctx context.Context, recordID string) (models.RemoteRecord, error) {
	query, args, err := buildFindAuthorityQuery(a.builder, recordID)
	if err != nil {
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		r                    models.RemoteRecord
		serverID             string
		title, description   string
		completed, deleted   bool
		createdAt, updatedAt time.Time
	)
	err = a.DB.QueryRowContext(ctx, query, args...).Scan(
		&r.ID,
		&serverID,
		&title,
		&description,
		&completed,
		&deleted,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RemoteRecord{}, ErrRecordNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "authorityRepository.Find").
			Str("record_id", recordID).
			Bool("retryable", a.IsRetryable(err)).
			Msg("failed to read authority record")
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	r.RemoteID = &serverID
	r.Title = &title
	r.Description = &description
	r.Completed = &completed
	r.Deleted = &deleted
	r.CreatedAt = &createdAt
	r.UpdatedAt = &updatedAt

	return r, nil
}

func (a *authorityRepository) Upsert(ctx context.Context, record models.RemoteRecord) error {
	query, args, err := buildUpsertAuthorityQuery(a.builder, record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := a.DB.ExecContext(ctx, query, args...); err != nil {
		if isPgUniqueViolation(err) {
			return fmt.Errorf("%w: %w", ErrRecordAlreadyExists, err)
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "authorityRepository.Upsert").
			Str("record_id", record.ID).
			Bool("retryable", a.IsRetryable(err)).
			Msg("failed to upsert authority record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (a *authorityRepository) MarkDeleted(ctx context.Context, recordID string, at time.Time) error {
	query, args, err := buildMarkDeletedAuthorityQuery(a.builder, recordID, at)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := a.DB.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "authorityRepository.MarkDeleted").
			Str("record_id", recordID).
			Msg("failed to mark authority record deleted")
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

func (a *authorityRepository) Ping(ctx context.Context) error {
	return a.DB.PingContext(ctx)
}
