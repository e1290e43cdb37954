package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/migrations"
)

// ClientStorages groups the client-side repositories that share one SQLite
// connection.
type ClientStorages struct {
	// Records is the local record store.
	Records RecordRepository
	// Queue is the durable mutation queue.
	Queue QueueRepository

	db *DB
}

// NewClientStorages opens the SQLite database at cfg.DB.DSN, applies pending
// migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, ids IDGenerator, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := migrations.MigrateClient(ctx, db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Records: NewRecordRepository(db, log),
		Queue:   NewQueueRepository(db, ids, log),
		db:      db,
	}, nil
}

// Close releases the database connection.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}

// ServerStorages groups the authority repositories.
type ServerStorages struct {
	// Authority stores the authoritative record copies.
	Authority AuthorityRepository

	db *DB
}

// NewServerStorages opens the PostgreSQL database, applies pending migrations
// and wires the repositories.
func NewServerStorages(ctx context.Context, dsn string, log *logger.Logger) (*ServerStorages, error) {
	log.Info().Msg("creating server storages...")

	db, err := NewConnectPostgres(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := migrations.MigrateServer(ctx, db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ServerStorages{
		Authority: NewAuthorityRepository(db, log),
		db:        db,
	}, nil
}

// Close releases the database connection.
func (s *ServerStorages) Close() error {
	return s.db.Close()
}
