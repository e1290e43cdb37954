package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/models"
)

type recordService struct {
	records RecordStore
	queue   QueueAppender
	ids     store.IDGenerator
	now     func() time.Time

	logger *logger.Logger
}

// NewRecordService returns the local record service. It only appends to the
// queue and never reads it.
func NewRecordService(records RecordStore, queue QueueAppender, ids store.IDGenerator, logger *logger.Logger) RecordService {
	return &recordService{
		records: records,
		queue:   queue,
		ids:     ids,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *recordService) Create(ctx context.Context, req models.CreateRecordRequest) (models.Record, error) {
	now := s.now().UTC()
	record := models.Record{
		ID:          s.ids.Generate(),
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
		SyncStatus:  models.SyncStatusPending,
	}

	if err := s.records.Create(ctx, record); err != nil {
		return models.Record{}, fmt.Errorf("create record: %w", err)
	}
	if err := s.enqueue(ctx, record.ID, models.OperationCreate, record.Payload()); err != nil {
		return models.Record{}, err
	}

	return record, nil
}

func (s *recordService) Get(ctx context.Context, id string) (models.Record, error) {
	record, err := s.records.Get(ctx, id)
	if err != nil {
		return models.Record{}, err
	}
	if record.Deleted {
		return models.Record{}, store.ErrRecordNotFound
	}

	return record, nil
}

func (s *recordService) List(ctx context.Context) ([]models.Record, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.Record{}
	}

	return records, nil
}

func (s *recordService) Update(ctx context.Context, req models.UpdateRecordRequest) (models.Record, error) {
	record, err := s.Get(ctx, req.ID)
	if err != nil {
		return models.Record{}, err
	}

	record.UpdatedAt = s.now().UTC()
	record.SyncStatus = models.SyncStatusPending
	payload := models.RecordPayload{UpdatedAt: record.UpdatedAt}

	if req.Title != nil {
		record.Title = *req.Title
		payload.Title = req.Title
	}
	if req.Description != nil {
		record.Description = *req.Description
		payload.Description = req.Description
	}
	if req.Completed != nil {
		record.Completed = *req.Completed
		payload.Completed = req.Completed
	}

	if err = s.records.Save(ctx, record); err != nil {
		return models.Record{}, fmt.Errorf("update record: %w", err)
	}
	if err = s.enqueue(ctx, record.ID, models.OperationUpdate, payload); err != nil {
		return models.Record{}, err
	}

	return record, nil
}

func (s *recordService) Delete(ctx context.Context, id string) error {
	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	deleted := true
	record.Deleted = deleted
	record.UpdatedAt = s.now().UTC()
	record.SyncStatus = models.SyncStatusPending

	if err = s.records.Save(ctx, record); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	return s.enqueue(ctx, record.ID, models.OperationDelete, models.RecordPayload{
		Deleted:   &deleted,
		UpdatedAt: record.UpdatedAt,
	})
}

// enqueue runs after the record write. There is no shared transaction, so a
// failure here leaves a pending record without a queue entry; it is logged
// and returned.
func (s *recordService) enqueue(ctx context.Context, recordID string, op models.OperationKind, payload models.RecordPayload) error {
	if err := s.queue.Enqueue(ctx, recordID, op, payload); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordService.enqueue").
			Str("record_id", recordID).
			Str("operation", string(op)).
			Msg("record saved but mutation was not queued")
		return fmt.Errorf("enqueue %s of record %s: %w", op, recordID, err)
	}

	return nil
}
