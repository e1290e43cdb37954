package store

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newSQLiteDBFromSQL wraps an existing *sql.DB with the SQLite dialect.
func newSQLiteDBFromSQL(db *sql.DB) *DB {
	return newSQLiteDB(db, logger.Nop())
}

// newPostgresDBFromSQL wraps an existing *sql.DB with the PostgreSQL dialect.
func newPostgresDBFromSQL(db *sql.DB) *DB {
	return newPostgresDB(db, logger.Nop())
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

type fixedIDs struct {
	ids []string
	i   int
}

func (f *fixedIDs) Generate() string {
	id := f.ids[f.i%len(f.ids)]
	f.i++
	return id
}
