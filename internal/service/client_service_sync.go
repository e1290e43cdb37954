package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/models"
)

// clientSyncService is the cycle orchestrator. It owns the gate, the
// dispatcher and the settlement components and serializes cycles with mu.
type clientSyncService struct {
	gate       ConnectivityGate
	queue      SyncQueue
	dispatcher Dispatcher
	reconciler *statusReconciler
	ledger     *retryLedger
	observer   SyncObserver
	batchSize  int
	now        func() time.Time

	mu sync.Mutex

	logger *logger.Logger
}

// NewClientSyncService wires the sync engine. A nil observer is replaced by
// a log observer.
func NewClientSyncService(
	records RecordSyncStore,
	queue SyncQueue,
	gate ConnectivityGate,
	dispatcher Dispatcher,
	observer SyncObserver,
	cfg config.ClientSync,
	logger *logger.Logger,
) SyncService {
	if observer == nil {
		observer = NewLogObserver(logger)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	ledger := newRetryLedger(queue, records, observer, cfg.MaxRetries, cfg.DeadLetter)

	return &clientSyncService{
		gate:       gate,
		queue:      queue,
		dispatcher: dispatcher,
		reconciler: newStatusReconciler(records, queue, ledger, observer),
		ledger:     ledger,
		observer:   observer,
		batchSize:  batchSize,
		now:        time.Now,
		logger:     logger,
	}
}

// Run implements SyncService.
func (s *clientSyncService) Run(ctx context.Context) (result models.CycleResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := s.now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("func", "clientSyncService.Run").
				Interface("panic", r).
				Msg("sync cycle panicked")
			result = s.abort(result, fmt.Errorf("%w: %v", ErrCycleAborted, r))
		}
		s.observer.CycleCompleted(ctx, result, s.now().Sub(started))
	}()

	result, err := s.cycle(ctx)
	if err == nil {
		return result
	}

	if errors.Is(err, ErrConnectivity) {
		return models.CycleResult{
			Success: false,
			Offline: true,
			Errors:  []models.CycleError{s.globalError(err)},
		}
	}

	logger.FromContext(ctx).Err(err).
		Str("func", "clientSyncService.Run").
		Int("synced_items", result.SyncedItems).
		Int("failed_items", result.FailedItems).
		Msg("sync cycle aborted")

	return s.abort(result, err)
}

// cycle performs one pass over the queue snapshot. On error the partially
// filled result is returned alongside it. ctx is only cancelled on shutdown;
// request handlers detach from the caller before calling Run.
func (s *clientSyncService) cycle(ctx context.Context) (models.CycleResult, error) {
	result := models.CycleResult{Errors: []models.CycleError{}}

	if !s.gate.Probe(ctx) {
		return result, ErrConnectivity
	}

	entries, err := s.queue.Snapshot(ctx)
	if err != nil {
		return result, fmt.Errorf("snapshot queue: %w", err)
	}
	if len(entries) == 0 {
		result.Success = true
		return result, nil
	}

	batches, err := Partition(entries, s.batchSize)
	if err != nil {
		return result, err
	}

	for _, batch := range batches {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		outcomes, err := s.dispatcher.Dispatch(ctx, batch)
		if err != nil {
			// A cancelled cycle is not the batch's fault: nothing is charged
			// and the entries go out again next cycle.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			if err = s.failBatch(ctx, &result, batch, err); err != nil {
				return result, err
			}
			continue
		}

		for _, entry := range batch {
			outcome := outcomes[entry.ID]
			if err = s.reconciler.Settle(ctx, entry, outcome); err != nil {
				return result, err
			}

			switch outcome.Status {
			case models.OutcomeSuccess, models.OutcomeConflict:
				result.SyncedItems++
			default:
				result.FailedItems++
				result.Errors = append(result.Errors, s.entryError(entry, outcome.Error))
			}
		}
	}

	result.Success = result.FailedItems == 0
	return result, nil
}

// failBatch turns a transport failure into one failed item per entry.
func (s *clientSyncService) failBatch(ctx context.Context, result *models.CycleResult, batch models.Batch, cause error) error {
	errText := cause.Error()

	logger.FromContext(ctx).Warn().Err(cause).
		Str("func", "clientSyncService.failBatch").
		Int("batch_size", len(batch)).
		Msg("batch dispatch failed")

	for _, entry := range batch {
		result.FailedItems++
		result.Errors = append(result.Errors, s.entryError(entry, errText))

		if _, err := s.ledger.RecordFailure(ctx, entry, errText); err != nil {
			return err
		}
	}

	return nil
}

// DeadEntries implements SyncService.
func (s *clientSyncService) DeadEntries(ctx context.Context) ([]models.DeadEntry, error) {
	return s.queue.DeadEntries(ctx)
}

func (s *clientSyncService) entryError(entry models.QueueEntry, errText string) models.CycleError {
	return models.CycleError{
		RecordID:  entry.RecordID,
		Operation: entry.Operation,
		Error:     errText,
		Timestamp: s.now().UTC(),
	}
}

func (s *clientSyncService) globalError(err error) models.CycleError {
	return models.CycleError{
		RecordID:  models.GlobalErrorRecordID,
		Operation: models.GlobalErrorOperation,
		Error:     err.Error(),
		Timestamp: s.now().UTC(),
	}
}

// abort keeps the counts reached so far and replaces the item errors with a
// single global error.
func (s *clientSyncService) abort(partial models.CycleResult, err error) models.CycleResult {
	return models.CycleResult{
		Success:     false,
		SyncedItems: partial.SyncedItems,
		FailedItems: partial.FailedItems,
		Errors:      []models.CycleError{s.globalError(err)},
	}
}
