package service

import (
	"fmt"

	"github.com/MKhiriev/go-todo-sync/models"
)

// DefaultBatchSize is the number of entries sent per remote call.
const DefaultBatchSize = 10

// Partition splits entries into contiguous batches of at most batchSize,
// preserving order. The last batch holds the remainder. Concatenating the
// result yields entries again.
func Partition(entries []models.QueueEntry, batchSize int) ([]models.Batch, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, batchSize)
	}

	batches := make([]models.Batch, 0, (len(entries)+batchSize-1)/batchSize)
	for start := 0; start < len(entries); start += batchSize {
		end := min(start+batchSize, len(entries))
		batches = append(batches, models.Batch(entries[start:end:end]))
	}

	return batches, nil
}
