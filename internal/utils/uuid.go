package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered identifiers for records and queue entries.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7, falling back to a random v4 if the clock source
// fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// IsValidUUID reports whether id parses as a UUID.
func IsValidUUID(id string) bool {
	return uuid.Validate(id) == nil
}
