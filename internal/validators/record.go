package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/MKhiriev/go-todo-sync/models"
)

// Field name constants used to specify which fields should be validated.
const (
	// FieldID targets the record identifier.
	FieldID = "id"
	// FieldTitle targets the record title.
	FieldTitle = "title"
	// FieldUpdateFields requires at least one field of a partial update.
	FieldUpdateFields = "update_fields"
	// FieldEntryID targets the queue entry identifier.
	FieldEntryID = "entry_id"
	// FieldRecordID targets the record identifier carried by a queue entry.
	FieldRecordID = "record_id"
	// FieldOperation targets the mutation kind of a queue entry.
	FieldOperation = "operation"
	// FieldUpdatedAt targets the payload timestamp used for last-write-wins.
	FieldUpdatedAt = "updated_at"
	// FieldItems targets the items of a batch request.
	FieldItems = "items"
)

// MaxTitleLength bounds the title in runes.
const MaxTitleLength = 255

// MaxBatchItems bounds the number of entries the authority accepts per batch.
const MaxBatchItems = 1000

// RecordValidator implements the Validator interface for record requests
// received by the client API and for batches received by the authority.
type RecordValidator struct {
}

// NewRecordValidator constructs a new RecordValidator and returns it as the
// Validator interface.
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate dispatches validation based on the dynamic type of obj. Both value
// and pointer forms are accepted.
//
// Supported types:
//   - models.CreateRecordRequest / *models.CreateRecordRequest
//   - models.UpdateRecordRequest / *models.UpdateRecordRequest
//   - models.QueueEntry / *models.QueueEntry
//   - models.BatchRequest / *models.BatchRequest
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateRecordRequest:
		return v.validateCreate(ctx, value, fields...)
	case *models.CreateRecordRequest:
		return v.validateCreate(ctx, *value, fields...)
	case models.UpdateRecordRequest:
		return v.validateUpdate(ctx, value, fields...)
	case *models.UpdateRecordRequest:
		return v.validateUpdate(ctx, *value, fields...)
	case models.QueueEntry:
		return v.validateEntry(ctx, value, fields...)
	case *models.QueueEntry:
		return v.validateEntry(ctx, *value, fields...)
	case models.BatchRequest:
		return v.validateBatch(ctx, value, fields...)
	case *models.BatchRequest:
		return v.validateBatch(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateCreate(_ context.Context, req models.CreateRecordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle}
	}

	for _, field := range fields {
		switch field {
		case FieldTitle:
			if err := validateTitle(req.Title); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *RecordValidator) validateUpdate(_ context.Context, req models.UpdateRecordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldUpdateFields, FieldTitle}
	}

	for _, field := range fields {
		switch field {
		case FieldID:
			if !utils.IsValidUUID(req.ID) {
				return ErrInvalidRecordID
			}
		case FieldUpdateFields:
			if req.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldTitle:
			if req.Title != nil {
				if err := validateTitle(*req.Title); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *RecordValidator) validateEntry(_ context.Context, entry models.QueueEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntryID, FieldRecordID, FieldOperation, FieldUpdatedAt}
	}

	for _, field := range fields {
		switch field {
		case FieldEntryID:
			if strings.TrimSpace(entry.ID) == "" {
				return ErrInvalidEntryID
			}
		case FieldRecordID:
			if !utils.IsValidUUID(entry.RecordID) {
				return ErrInvalidRecordID
			}
		case FieldOperation:
			if !entry.Operation.IsValid() {
				return fmt.Errorf("%w: %q", ErrInvalidOperation, entry.Operation)
			}
		case FieldUpdatedAt:
			if entry.Payload.UpdatedAt.IsZero() {
				return ErrMissingUpdatedAt
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

// validateBatch checks the batch envelope only. Per-entry problems are
// reported as error outcomes by the authority rather than failing the whole
// batch.
func (v *RecordValidator) validateBatch(_ context.Context, req models.BatchRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldItems}
	}

	for _, field := range fields {
		switch field {
		case FieldItems:
			if len(req.Items) == 0 {
				return ErrEmptyItems
			}
			if len(req.Items) > MaxBatchItems {
				return fmt.Errorf("%w: %d > %d", ErrTooManyItems, len(req.Items), MaxBatchItems)
			}
			seen := make(map[string]struct{}, len(req.Items))
			for _, item := range req.Items {
				if _, dup := seen[item.ID]; dup {
					return fmt.Errorf("%w: %s", ErrDuplicateEntryIDs, item.ID)
				}
				seen[item.ID] = struct{}{}
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
