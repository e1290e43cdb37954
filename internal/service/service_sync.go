package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/internal/validators"
	"github.com/MKhiriev/go-todo-sync/models"
)

// authoritySyncService is the remote authority's side of a batch. Each item
// is checked against the stored copy: a change older than what the authority
// already holds is answered with a conflict carrying the stored copy, any
// other change is applied.
type authoritySyncService struct {
	repository store.AuthorityRepository
	ids        store.IDGenerator
	validator  validators.Validator
	now        func() time.Time

	logger *logger.Logger
}

func NewAuthoritySyncService(repository store.AuthorityRepository, ids store.IDGenerator, logger *logger.Logger) AuthoritySyncService {
	return &authoritySyncService{
		repository: repository,
		ids:        ids,
		validator:  validators.NewRecordValidator(),
		now:        time.Now,
		logger:     logger,
	}
}

// ApplyBatch implements AuthoritySyncService. Items are applied in
// submission order so several entries of one record replay correctly.
func (s *authoritySyncService) ApplyBatch(ctx context.Context, req models.BatchRequest) (models.BatchResponse, error) {
	outcomes := make([]models.Outcome, 0, len(req.Items))
	for _, item := range req.Items {
		if err := ctx.Err(); err != nil {
			return models.BatchResponse{}, err
		}
		outcomes = append(outcomes, s.apply(ctx, item))
	}

	return models.BatchResponse{
		ProcessedItems:  outcomes,
		ServerTimestamp: s.now().UTC(),
	}, nil
}

// Ping implements AuthoritySyncService.
func (s *authoritySyncService) Ping(ctx context.Context) error {
	return s.repository.Ping(ctx)
}

func (s *authoritySyncService) apply(ctx context.Context, item models.QueueEntry) models.Outcome {
	if err := s.validator.Validate(ctx, item); err != nil {
		return failed(item, err)
	}

	current, err := s.repository.Find(ctx, item.RecordID)
	exists := err == nil
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return failed(item, err)
	}

	if exists && current.UpdatedAt != nil && current.UpdatedAt.After(item.Payload.UpdatedAt) {
		logger.FromContext(ctx).Debug().
			Str("func", "authoritySyncService.apply").
			Str("record_id", item.RecordID).
			Time("stored_updated_at", *current.UpdatedAt).
			Time("submitted_updated_at", item.Payload.UpdatedAt).
			Msg(ErrStaleWrite.Error())
		return models.Outcome{ID: item.ID, Status: models.OutcomeConflict, Data: &current}
	}

	switch item.Operation {
	case models.OperationCreate, models.OperationUpdate:
		return s.upsert(ctx, item, current, exists)
	case models.OperationDelete:
		return s.delete(ctx, item, current, exists)
	default:
		return failed(item, fmt.Errorf("%w: %s", ErrUnsupportedChange, item.Operation))
	}
}

func (s *authoritySyncService) upsert(ctx context.Context, item models.QueueEntry, current models.RemoteRecord, exists bool) models.Outcome {
	updatedAt := item.Payload.UpdatedAt.UTC()
	doc := models.RemoteRecord{
		ID:          item.RecordID,
		Title:       item.Payload.Title,
		Description: item.Payload.Description,
		Completed:   item.Payload.Completed,
		Deleted:     item.Payload.Deleted,
		CreatedAt:   item.Payload.CreatedAt,
		UpdatedAt:   &updatedAt,
	}

	if exists {
		if err := mergo.Merge(&doc, current, mergo.WithoutDereference); err != nil {
			return failed(item, err)
		}
	} else {
		remoteID := s.ids.Generate()
		doc.RemoteID = &remoteID
		if doc.CreatedAt == nil {
			doc.CreatedAt = &updatedAt
		}
	}

	if err := s.repository.Upsert(ctx, doc); err != nil {
		return failed(item, err)
	}

	return models.Outcome{
		ID:     item.ID,
		Status: models.OutcomeSuccess,
		Data:   &models.RemoteRecord{ID: doc.ID, RemoteID: doc.RemoteID},
	}
}

// delete of a record the authority never stored succeeds without effect.
func (s *authoritySyncService) delete(ctx context.Context, item models.QueueEntry, current models.RemoteRecord, exists bool) models.Outcome {
	if !exists {
		return models.Outcome{ID: item.ID, Status: models.OutcomeSuccess}
	}

	err := s.repository.MarkDeleted(ctx, item.RecordID, item.Payload.UpdatedAt)
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return failed(item, err)
	}

	return models.Outcome{
		ID:     item.ID,
		Status: models.OutcomeSuccess,
		Data:   &models.RemoteRecord{ID: item.RecordID, RemoteID: current.RemoteID},
	}
}

func failed(item models.QueueEntry, err error) models.Outcome {
	return models.Outcome{ID: item.ID, Status: models.OutcomeError, Error: err.Error()}
}
