package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/models"
	"github.com/google/uuid"
)

// ── time helpers ──

var baseTime = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func at(offset time.Duration) time.Time {
	return baseTime.Add(offset)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func timePtr(t time.Time) *time.Time { return &t }

func newRecordID() string { return uuid.NewString() }

func newEntry(id, recordID string, op models.OperationKind, updatedAt time.Time) models.QueueEntry {
	return models.QueueEntry{
		ID:         id,
		RecordID:   recordID,
		Operation:  op,
		Payload:    models.RecordPayload{UpdatedAt: updatedAt},
		EnqueuedAt: updatedAt,
	}
}

// ── spyObserver ──

type spyObserver struct {
	mu        sync.Mutex
	conflicts []models.ConflictEvent
	dropped   []models.QueueEntry
	cycles    []models.CycleResult
}

func (s *spyObserver) ConflictResolved(_ context.Context, event models.ConflictEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflicts = append(s.conflicts, event)
}

func (s *spyObserver) EntryDropped(_ context.Context, entry models.QueueEntry, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropped = append(s.dropped, entry)
}

func (s *spyObserver) CycleCompleted(_ context.Context, result models.CycleResult, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles = append(s.cycles, result)
}

// ── fakeGate ──

type fakeGate struct {
	open   bool
	probes int
}

func (g *fakeGate) Probe(context.Context) bool {
	g.probes++
	return g.open
}

// ── fakeDispatcher ──

type fakeDispatcher struct {
	mu      sync.Mutex
	batches []models.Batch
	fn      func(batch models.Batch) (map[string]models.Outcome, error)
}

func (d *fakeDispatcher) Dispatch(_ context.Context, batch models.Batch) (map[string]models.Outcome, error) {
	d.mu.Lock()
	d.batches = append(d.batches, batch)
	d.mu.Unlock()
	return d.fn(batch)
}

// answerAll builds a dispatcher function that answers every entry with status.
func answerAll(status models.OutcomeStatus, errText string) func(models.Batch) (map[string]models.Outcome, error) {
	return func(batch models.Batch) (map[string]models.Outcome, error) {
		out := make(map[string]models.Outcome, len(batch))
		for _, e := range batch {
			out[e.ID] = models.Outcome{ID: e.ID, Status: status, Error: errText}
		}
		return out, nil
	}
}

// ── memQueue: in-memory SyncQueue ──

type memQueue struct {
	mu      sync.Mutex
	entries []models.QueueEntry
	dead    []models.DeadEntry
}

func (q *memQueue) Snapshot(context.Context) ([]models.QueueEntry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.QueueEntry, len(q.entries))
	copy(out, q.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].EnqueuedAt.Before(out[j].EnqueuedAt) })
	return out, nil
}

func (q *memQueue) Remove(_ context.Context, entryID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.entries {
		if e.ID == entryID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return nil
		}
	}
	return store.ErrQueueEntryNotFound
}

func (q *memQueue) IncrementRetry(_ context.Context, entryID string, errText string) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.entries {
		if q.entries[i].ID == entryID {
			q.entries[i].RetryCount++
			q.entries[i].LastError = &errText
			return q.entries[i].RetryCount, nil
		}
	}
	return 0, store.ErrQueueEntryNotFound
}

// RemoveThrough drops entryID and the earlier entries of recordID. Slice
// order is enqueue order.
func (q *memQueue) RemoveThrough(_ context.Context, recordID, entryID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	cut := -1
	for i, e := range q.entries {
		if e.ID == entryID {
			cut = i
			break
		}
	}
	kept := q.entries[:0]
	for i, e := range q.entries {
		if i > cut || e.RecordID != recordID {
			kept = append(kept, e)
		}
	}
	q.entries = kept
	return nil
}

func (q *memQueue) push(entry models.QueueEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, entry)
}

func (q *memQueue) Bury(ctx context.Context, entry models.QueueEntry, errText string) error {
	if err := q.Remove(ctx, entry.ID); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dead = append(q.dead, models.DeadEntry{QueueEntry: entry, FinalError: errText, DeadAt: time.Now()})
	return nil
}

func (q *memQueue) DeadEntries(context.Context) ([]models.DeadEntry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.DeadEntry(nil), q.dead...), nil
}

func (q *memQueue) Count(context.Context) (int, error) {
	return q.len(), nil
}

func (q *memQueue) find(entryID string) (models.QueueEntry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range q.entries {
		if e.ID == entryID {
			return e, true
		}
	}
	return models.QueueEntry{}, false
}

func (q *memQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// ── memRecords: in-memory RecordSyncStore ──

type memRecords struct {
	mu      sync.Mutex
	records map[string]models.Record
}

func newMemRecords(records ...models.Record) *memRecords {
	m := &memRecords{records: make(map[string]models.Record)}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (m *memRecords) Get(_ context.Context, id string) (models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return models.Record{}, store.ErrRecordNotFound
	}
	return r, nil
}

func (m *memRecords) SaveSettled(_ context.Context, record models.Record, version time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[record.ID]
	if !ok || r.UpdatedAt.After(version) {
		return store.ErrRecordNotFound
	}
	m.records[record.ID] = record
	return nil
}

func (m *memRecords) MarkSynced(_ context.Context, id string, remoteID *string, version, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return store.ErrRecordNotFound
	}
	if !r.UpdatedAt.After(version) {
		r.SyncStatus = models.SyncStatusSynced
	}
	r.LastSyncedAt = &at
	if remoteID != nil {
		r.RemoteID = remoteID
	}
	m.records[id] = r
	return nil
}

func (m *memRecords) MarkError(_ context.Context, id string, version time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok || r.UpdatedAt.After(version) {
		return store.ErrRecordNotFound
	}
	r.SyncStatus = models.SyncStatusError
	m.records[id] = r
	return nil
}

func (m *memRecords) CountNeedingSync(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.records {
		if r.SyncStatus != models.SyncStatusSynced {
			n++
		}
	}
	return n, nil
}

func (m *memRecords) LatestSyncedAt(context.Context) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *time.Time
	for _, r := range m.records {
		if r.LastSyncedAt != nil && (latest == nil || r.LastSyncedAt.After(*latest)) {
			latest = r.LastSyncedAt
		}
	}
	return latest, nil
}

func (m *memRecords) put(record models.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
}

func (m *memRecords) get(id string) models.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[id]
}
