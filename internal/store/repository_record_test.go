package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/models"
)

func newTestRecordRepo(t *testing.T) (RecordRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewRecordRepository(newSQLiteDBFromSQL(db), logger.Nop()), mock
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows(recordColumns)
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestRecordRepository_Create(t *testing.T) {
	now := time.Now().UTC()
	rec := models.Record{
		ID:         "r1",
		Title:      "buy milk",
		CreatedAt:  now,
		UpdatedAt:  now,
		SyncStatus: models.SyncStatusPending,
	}

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO records`).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "duplicate id",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO records`).
					WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey})
			},
			wantErr: ErrRecordAlreadyExists,
		},
		{
			name: "driver failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO records`).WillReturnError(errors.New("disk full"))
			},
			wantErr: ErrExecutingStatement,
		},
		{
			name: "nothing inserted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO records`).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrRecordNotSaved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRecordRepo(t)
			tt.setup(mock)

			err := repo.Create(testContext(), rec)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// ── Get ───────────────────────────────────────────────────────────────────────

func TestRecordRepository_Get(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	synced := created.Add(time.Hour)

	t.Run("success with sync fields", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)
		mock.ExpectQuery(`SELECT (.+) FROM records WHERE id = \?`).
			WithArgs("r1").
			WillReturnRows(recordRows().AddRow(
				"r1", "title", "desc", true, created, created, false, "synced", "srv-1", synced,
			))

		rec, err := repo.Get(testContext(), "r1")
		require.NoError(t, err)
		assert.Equal(t, "title", rec.Title)
		assert.True(t, rec.Completed)
		assert.Equal(t, models.SyncStatusSynced, rec.SyncStatus)
		require.NotNil(t, rec.RemoteID)
		assert.Equal(t, "srv-1", *rec.RemoteID)
		require.NotNil(t, rec.LastSyncedAt)
		assert.True(t, synced.Equal(*rec.LastSyncedAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("soft-deleted record is still returned", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)
		mock.ExpectQuery(`FROM records WHERE id = \?`).
			WithArgs("r2").
			WillReturnRows(recordRows().AddRow(
				"r2", "t", "", false, created, created, true, "pending", nil, nil,
			))

		rec, err := repo.Get(testContext(), "r2")
		require.NoError(t, err)
		assert.True(t, rec.Deleted)
		assert.Nil(t, rec.RemoteID)
		assert.Nil(t, rec.LastSyncedAt)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)
		mock.ExpectQuery(`FROM records WHERE id = \?`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(testContext(), "missing")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

// ── List ──────────────────────────────────────────────────────────────────────

func TestRecordRepository_List(t *testing.T) {
	now := time.Now().UTC()

	t.Run("returns active rows", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)
		mock.ExpectQuery(`FROM records WHERE deleted = \? ORDER BY created_at ASC, id ASC`).
			WithArgs(false).
			WillReturnRows(recordRows().
				AddRow("a", "A", "", false, now, now, false, "pending", nil, nil).
				AddRow("b", "B", "", true, now, now, false, "synced", "srv", now))

		records, err := repo.List(testContext())
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "a", records[0].ID)
		assert.Equal(t, "b", records[1].ID)
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)
		mock.ExpectQuery(`FROM records`).WillReturnRows(recordRows())

		records, err := repo.List(testContext())
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("query failure", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)
		mock.ExpectQuery(`FROM records`).WillReturnError(errors.New("io"))

		_, err := repo.List(testContext())
		assert.ErrorIs(t, err, ErrExecutingQuery)
	})
}

// ── Save / MarkSynced / MarkError ─────────────────────────────────────────────

func TestRecordRepository_Save_NotFound(t *testing.T) {
	repo, mock := newTestRecordRepo(t)
	mock.ExpectExec(`UPDATE records SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Save(testContext(), models.Record{ID: "ghost"})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordRepository_SaveSettled(t *testing.T) {
	version := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "written", affected: 1},
		{name: "edited since version", affected: 0, wantErr: ErrRecordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRecordRepo(t)
			mock.ExpectExec(`UPDATE records SET (.+) WHERE id = \? AND updated_at <= \?`).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.SaveSettled(testContext(), models.Record{ID: "r1", Title: "winner"}, version)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRecordRepository_MarkSynced(t *testing.T) {
	version := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo, mock := newTestRecordRepo(t)
	mock.ExpectExec(`UPDATE records SET sync_status = CASE WHEN updated_at <= \? THEN \? ELSE sync_status END, last_synced_at = \?, remote_id = \? WHERE id = \?`).
		WithArgs(version, "synced", at, "srv-9", "r1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkSynced(testContext(), "r1", ptr("srv-9"), version, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_MarkError(t *testing.T) {
	version := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo, mock := newTestRecordRepo(t)
	mock.ExpectExec(`UPDATE records SET sync_status = \? WHERE id = \? AND updated_at <= \?`).
		WithArgs("error", "r1", version).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkError(testContext(), "r1", version))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── status queries ────────────────────────────────────────────────────────────

func TestRecordRepository_CountNeedingSync(t *testing.T) {
	repo, mock := newTestRecordRepo(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM records WHERE sync_status IN \(\?,\?\)`).
		WithArgs("pending", "error").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.CountNeedingSync(testContext())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestRecordRepository_LatestSyncedAt(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("present", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)
		mock.ExpectQuery(`SELECT last_synced_at FROM records`).
			WillReturnRows(sqlmock.NewRows([]string{"last_synced_at"}).AddRow(at))

		got, err := repo.LatestSyncedAt(testContext())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, at.Equal(*got))
	})

	t.Run("never synced", func(t *testing.T) {
		repo, mock := newTestRecordRepo(t)
		mock.ExpectQuery(`SELECT last_synced_at FROM records`).
			WillReturnRows(sqlmock.NewRows([]string{"last_synced_at"}))

		got, err := repo.LatestSyncedAt(testContext())
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
