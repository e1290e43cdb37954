package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidRecordID   = errors.New("invalid record id")
	ErrInvalidEntryID    = errors.New("invalid queue entry id")
	ErrEmptyTitle        = errors.New("title is required")
	ErrTitleTooLong      = errors.New("title is too long")
	ErrNoFieldsToUpdate  = errors.New("at least one field must be provided for update")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrEmptyItems        = errors.New("items list cannot be empty")
	ErrTooManyItems      = errors.New("too many items in batch")
	ErrMissingUpdatedAt  = errors.New("updated_at is required")
	ErrDuplicateEntryIDs = errors.New("duplicate queue entry ids in batch")
)
