package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/models"
)

// DefaultBatchTimeout bounds a single batch round-trip.
const DefaultBatchTimeout = 8 * time.Second

type remoteDispatcher struct {
	remote  adapter.RemoteAdapter
	timeout time.Duration
	now     func() time.Time
}

// NewRemoteDispatcher returns a Dispatcher issuing one remote call per batch.
// A non-positive timeout falls back to DefaultBatchTimeout.
func NewRemoteDispatcher(remote adapter.RemoteAdapter, timeout time.Duration) Dispatcher {
	if timeout <= 0 {
		timeout = DefaultBatchTimeout
	}

	return &remoteDispatcher{
		remote:  remote,
		timeout: timeout,
		now:     time.Now,
	}
}

func (d *remoteDispatcher) Dispatch(ctx context.Context, batch models.Batch) (map[string]models.Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resp, err := d.remote.SendBatch(ctx, models.BatchRequest{
		Items:           batch,
		ClientTimestamp: d.now().UTC(),
	})
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	received := make(map[string]models.Outcome, len(resp.ProcessedItems))
	for _, o := range resp.ProcessedItems {
		received[o.ID] = o
	}

	outcomes := make(map[string]models.Outcome, len(batch))
	for _, entry := range batch {
		o, ok := received[entry.ID]
		switch {
		case !ok:
			o = models.Outcome{ID: entry.ID, Status: models.OutcomeError, Error: ErrMissingOutcome.Error()}
		case o.Status != models.OutcomeSuccess && o.Status != models.OutcomeConflict && o.Status != models.OutcomeError:
			o = models.Outcome{ID: entry.ID, Status: models.OutcomeError, Error: fmt.Sprintf("%s: %q", ErrUnknownOutcome, o.Status)}
		case o.Status == models.OutcomeError && o.Error == "":
			o.Error = "remote rejected entry"
		}
		outcomes[entry.ID] = o
	}

	if extra := len(received) - countKnown(received, batch); extra > 0 {
		logger.FromContext(ctx).Warn().
			Str("func", "remoteDispatcher.Dispatch").
			Int("unknown_outcomes", extra).
			Msg("remote authority returned outcomes for entries that were not sent")
	}

	return outcomes, nil
}

func countKnown(received map[string]models.Outcome, batch models.Batch) int {
	n := 0
	for _, entry := range batch {
		if _, ok := received[entry.ID]; ok {
			n++
		}
	}
	return n
}
