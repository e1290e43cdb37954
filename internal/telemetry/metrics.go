// Package telemetry provides OpenTelemetry metrics for the sync engine.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/MKhiriev/go-todo-sync/models"
)

// SyncMetricsMeterName is the name used for the sync metrics meter
const SyncMetricsMeterName = "github.com/MKhiriev/go-todo-sync/sync"

// SyncMetrics records sync engine events. It satisfies the engine's observer
// contract, so it can be passed wherever a SyncObserver is accepted.
// A nil *SyncMetrics is a valid no-op observer.
type SyncMetrics struct {
	cycles        metric.Int64Counter
	cycleDuration metric.Float64Histogram
	itemsSynced   metric.Int64Counter
	itemsFailed   metric.Int64Counter
	conflicts     metric.Int64Counter
	dropped       metric.Int64Counter
}

// NewSyncMetrics creates a new SyncMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	cycles, err := meter.Int64Counter(
		"todo_sync_cycles_total",
		metric.WithDescription("Number of completed sync cycles by result"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	cycleDuration, err := meter.Float64Histogram(
		"todo_sync_cycle_duration_seconds",
		metric.WithDescription("Duration of sync cycles in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60),
	)
	if err != nil {
		return nil, err
	}

	itemsSynced, err := meter.Int64Counter(
		"todo_sync_items_synced_total",
		metric.WithDescription("Number of queue entries settled as synced"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	itemsFailed, err := meter.Int64Counter(
		"todo_sync_items_failed_total",
		metric.WithDescription("Number of queue entries that failed in a cycle"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	conflicts, err := meter.Int64Counter(
		"todo_sync_conflicts_resolved_total",
		metric.WithDescription("Number of conflicts resolved by winning side"),
		metric.WithUnit("{conflict}"),
	)
	if err != nil {
		return nil, err
	}

	dropped, err := meter.Int64Counter(
		"todo_sync_entries_dropped_total",
		metric.WithDescription("Number of queue entries dropped after exhausting retries"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		cycles:        cycles,
		cycleDuration: cycleDuration,
		itemsSynced:   itemsSynced,
		itemsFailed:   itemsFailed,
		conflicts:     conflicts,
		dropped:       dropped,
	}, nil
}

// ConflictResolved counts one resolution labelled with the winning side.
func (m *SyncMetrics) ConflictResolved(ctx context.Context, event models.ConflictEvent) {
	if m == nil {
		return
	}

	m.conflicts.Add(ctx, 1, metric.WithAttributes(attribute.String("winner", string(event.Winner))))
}

// EntryDropped counts one dropped entry labelled with its operation.
func (m *SyncMetrics) EntryDropped(ctx context.Context, entry models.QueueEntry, _ string) {
	if m == nil {
		return
	}

	m.dropped.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", string(entry.Operation))))
}

// CycleCompleted records the cycle counters and its duration.
func (m *SyncMetrics) CycleCompleted(ctx context.Context, result models.CycleResult, elapsed time.Duration) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("result", cycleLabel(result)))

	m.cycles.Add(ctx, 1, attrs)
	m.cycleDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.itemsSynced.Add(ctx, int64(result.SyncedItems))
	m.itemsFailed.Add(ctx, int64(result.FailedItems))
}

func cycleLabel(result models.CycleResult) string {
	switch {
	case result.Offline:
		return "offline"
	case result.Success:
		return "success"
	default:
		return "failure"
	}
}
