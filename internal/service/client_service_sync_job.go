package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
)

// DefaultSyncInterval is used when the job is started without an interval.
const DefaultSyncInterval = time.Minute

type clientSyncJob struct {
	syncService SyncService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClientSyncJob creates a clientSyncJob that calls syncService.Run on a
// ticker. The job is idle until Start is called.
func NewClientSyncJob(syncService SyncService, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{syncService: syncService, logger: logger}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that runs a cycle every interval. The
// goroutine exits when ctx is cancelled or Stop is called. Cycles share the
// service mutex with POST /sync, so a tick never overlaps a manual run.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				result := j.syncService.Run(jobCtx)
				if !result.Success && !result.Offline {
					j.logger.Warn().
						Int("failed_items", result.FailedItems).
						Msg("background sync finished with failures")
				}
			}
		}
	}()
}

// Stop implements ClientSyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
