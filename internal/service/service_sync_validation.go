package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-sync/internal/validators"
	"github.com/MKhiriev/go-todo-sync/models"
)

type AuthoritySyncValidationService struct {
	inner     AuthoritySyncService
	validator validators.Validator
}

func NewAuthoritySyncValidationService() AuthoritySyncServiceWrapper {
	return &AuthoritySyncValidationService{
		validator: validators.NewRecordValidator(),
	}
}

// ApplyBatch rejects malformed envelopes. Item-level problems are left to the
// wrapped service, which reports them as error outcomes.
func (v *AuthoritySyncValidationService) ApplyBatch(ctx context.Context, req models.BatchRequest) (models.BatchResponse, error) {
	if err := v.validator.Validate(ctx, req, validators.FieldItems); err != nil {
		return models.BatchResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.ApplyBatch(ctx, req)
}

func (v *AuthoritySyncValidationService) Ping(ctx context.Context) error {
	return v.inner.Ping(ctx)
}

func (v *AuthoritySyncValidationService) Wrap(wrapped AuthoritySyncService) AuthoritySyncService {
	v.inner = wrapped
	return v
}
