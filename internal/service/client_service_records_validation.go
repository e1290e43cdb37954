package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/MKhiriev/go-todo-sync/internal/validators"
	"github.com/MKhiriev/go-todo-sync/models"
)

type RecordValidationService struct {
	inner     RecordService
	validator validators.Validator
}

func NewRecordValidationService() RecordServiceWrapper {
	return &RecordValidationService{
		validator: validators.NewRecordValidator(),
	}
}

func (v *RecordValidationService) Create(ctx context.Context, req models.CreateRecordRequest) (models.Record, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Create(ctx, req)
}

// Get treats a malformed id as a missing record.
func (v *RecordValidationService) Get(ctx context.Context, id string) (models.Record, error) {
	if !utils.IsValidUUID(id) {
		return models.Record{}, store.ErrRecordNotFound
	}

	return v.inner.Get(ctx, id)
}

func (v *RecordValidationService) List(ctx context.Context) ([]models.Record, error) {
	return v.inner.List(ctx)
}

func (v *RecordValidationService) Update(ctx context.Context, req models.UpdateRecordRequest) (models.Record, error) {
	if !utils.IsValidUUID(req.ID) {
		return models.Record{}, store.ErrRecordNotFound
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Update(ctx, req)
}

func (v *RecordValidationService) Delete(ctx context.Context, id string) error {
	if !utils.IsValidUUID(id) {
		return store.ErrRecordNotFound
	}

	return v.inner.Delete(ctx, id)
}

func (v *RecordValidationService) Wrap(wrapped RecordService) RecordService {
	v.inner = wrapped
	return v
}
