package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-sync/models"
)

type statusService struct {
	gate    ConnectivityGate
	records RecordSyncStore
	queue   QueueCounter
}

func NewStatusService(gate ConnectivityGate, records RecordSyncStore, queue QueueCounter) StatusService {
	return &statusService{gate: gate, records: records, queue: queue}
}

// Status derives the client state. An unreachable authority reports offline
// regardless of pending work.
func (s *statusService) Status(ctx context.Context) (models.StatusReport, error) {
	pending, err := s.records.CountNeedingSync(ctx)
	if err != nil {
		return models.StatusReport{}, fmt.Errorf("count records needing sync: %w", err)
	}

	lastSyncedAt, err := s.records.LatestSyncedAt(ctx)
	if err != nil {
		return models.StatusReport{}, fmt.Errorf("read last sync time: %w", err)
	}

	queued, err := s.queue.Count(ctx)
	if err != nil {
		return models.StatusReport{}, fmt.Errorf("count queued entries: %w", err)
	}

	report := models.StatusReport{
		PendingCount:  pending,
		LastSyncedAt:  lastSyncedAt,
		QueuedEntries: queued,
	}

	switch {
	case !s.gate.Probe(ctx):
		report.Status = models.StateOffline
	case pending > 0:
		report.Status = models.StateSyncPending
	default:
		report.Status = models.StateUpToDate
	}

	return report, nil
}
