package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-todo-sync/internal/mock"
	"github.com/MKhiriev/go-todo-sync/models"
)

func newTestReconciler(records RecordSyncStore, queue SyncQueue, observer SyncObserver) *statusReconciler {
	r := newStatusReconciler(records, queue, newRetryLedger(queue, records, observer, DefaultMaxRetries, true), observer)
	r.now = func() time.Time { return at(time.Hour) }
	return r
}

// ── success ──

func TestStatusReconciler_SuccessSettlesOnlySentEntries(t *testing.T) {
	local := models.Record{ID: "r1", Title: "oat milk", UpdatedAt: at(time.Second), SyncStatus: models.SyncStatusPending}
	e1 := newEntry("e1", "r1", models.OperationCreate, at(0))
	e2 := newEntry("e2", "r1", models.OperationUpdate, at(time.Second))
	other := newEntry("e3", "r2", models.OperationCreate, at(2*time.Second))

	queue := &memQueue{entries: []models.QueueEntry{e1, e2, other}}
	records := newMemRecords(local)
	r := newTestReconciler(records, queue, &spyObserver{})

	outcome := models.Outcome{ID: "e1", Status: models.OutcomeSuccess, Data: &models.RemoteRecord{RemoteID: strPtr("srv-1")}}
	require.NoError(t, r.Settle(context.Background(), e1, outcome))

	got := records.get("r1")
	assert.Equal(t, models.SyncStatusPending, got.SyncStatus, "e2 is not on the authority yet")
	require.NotNil(t, got.RemoteID)
	assert.Equal(t, "srv-1", *got.RemoteID)
	require.NotNil(t, got.LastSyncedAt)
	assert.Equal(t, at(time.Hour), *got.LastSyncedAt)

	_, ok := queue.find("e1")
	assert.False(t, ok)
	_, ok = queue.find("e2")
	assert.True(t, ok, "a later entry of the record stays queued")

	require.NoError(t, r.Settle(context.Background(), e2, models.Outcome{ID: "e2", Status: models.OutcomeSuccess}))
	assert.Equal(t, models.SyncStatusSynced, records.get("r1").SyncStatus)
	assert.Equal(t, 1, queue.len())

	// повторное применение ничего не ломает
	require.NoError(t, r.Settle(context.Background(), e2, models.Outcome{ID: "e2", Status: models.OutcomeSuccess}))
	assert.Equal(t, models.SyncStatusSynced, records.get("r1").SyncStatus)
	assert.Equal(t, 1, queue.len())
	_, ok = queue.find("e3")
	assert.True(t, ok)
}

func TestStatusReconciler_SuccessSupersedesEarlierEntries(t *testing.T) {
	local := models.Record{ID: "r1", UpdatedAt: at(time.Second), SyncStatus: models.SyncStatusPending}
	e1 := newEntry("e1", "r1", models.OperationCreate, at(0))
	e1.RetryCount = 2
	e2 := newEntry("e2", "r1", models.OperationUpdate, at(time.Second))

	queue := &memQueue{entries: []models.QueueEntry{e1, e2}}
	records := newMemRecords(local)
	r := newTestReconciler(records, queue, &spyObserver{})

	require.NoError(t, r.Settle(context.Background(), e2, models.Outcome{ID: "e2", Status: models.OutcomeSuccess}))

	assert.Zero(t, queue.len())
	assert.Equal(t, models.SyncStatusSynced, records.get("r1").SyncStatus)
}

func TestStatusReconciler_SuccessWithoutRemoteIDKeepsExisting(t *testing.T) {
	local := models.Record{ID: "r1", RemoteID: strPtr("srv-old"), UpdatedAt: at(0)}
	e1 := newEntry("e1", "r1", models.OperationUpdate, at(0))
	records := newMemRecords(local)
	r := newTestReconciler(records, &memQueue{entries: []models.QueueEntry{e1}}, &spyObserver{})

	require.NoError(t, r.Settle(context.Background(), e1, models.Outcome{ID: "e1", Status: models.OutcomeSuccess}))

	assert.Equal(t, "srv-old", *records.get("r1").RemoteID)
}

func TestStatusReconciler_SuccessForMissingRecord(t *testing.T) {
	e1 := newEntry("e1", "r-gone", models.OperationDelete, at(0))
	queue := &memQueue{entries: []models.QueueEntry{e1}}
	r := newTestReconciler(newMemRecords(), queue, &spyObserver{})

	require.NoError(t, r.Settle(context.Background(), e1, models.Outcome{ID: "e1", Status: models.OutcomeSuccess}))
	assert.Zero(t, queue.len())
}

func TestStatusReconciler_SuccessStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	records := mock.NewMockRecordRepository(ctrl)
	queue := mock.NewMockQueueRepository(ctrl)
	records.EXPECT().MarkSynced(gomock.Any(), "r1", gomock.Nil(), at(0), gomock.Any()).Return(errors.New("locked"))

	r := newTestReconciler(records, queue, &spyObserver{})

	err := r.Settle(context.Background(), newEntry("e1", "r1", models.OperationCreate, at(0)),
		models.Outcome{ID: "e1", Status: models.OutcomeSuccess})
	require.Error(t, err)
}

// ── conflict ──

func TestStatusReconciler_Conflict(t *testing.T) {
	tests := []struct {
		name       string
		localAt    time.Time
		remote     *models.RemoteRecord
		wantWinner models.Side
		wantTitle  string
		wantDone   bool
	}{
		{
			name:       "remote newer wins",
			localAt:    at(0),
			remote:     &models.RemoteRecord{Title: strPtr("server"), Completed: boolPtr(true), UpdatedAt: timePtr(at(time.Minute))},
			wantWinner: models.SideRemote,
			wantTitle:  "server",
			wantDone:   true,
		},
		{
			name:       "tie goes to remote",
			localAt:    at(0),
			remote:     &models.RemoteRecord{Title: strPtr("server"), UpdatedAt: timePtr(at(0))},
			wantWinner: models.SideRemote,
			wantTitle:  "server",
		},
		{
			name:       "local newer wins",
			localAt:    at(time.Minute),
			remote:     &models.RemoteRecord{Title: strPtr("server"), UpdatedAt: timePtr(at(0))},
			wantWinner: models.SideLocal,
			wantTitle:  "local",
		},
		{
			name:       "remote without data keeps local",
			localAt:    at(0),
			remote:     nil,
			wantWinner: models.SideRemote,
			wantTitle:  "local",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := models.Record{
				ID:          "r1",
				Title:       "local",
				Description: "kept",
				UpdatedAt:   tt.localAt,
				SyncStatus:  models.SyncStatusPending,
			}
			e1 := newEntry("e1", "r1", models.OperationUpdate, tt.localAt)
			queue := &memQueue{entries: []models.QueueEntry{e1}}
			records := newMemRecords(local)
			observer := &spyObserver{}
			r := newTestReconciler(records, queue, observer)

			err := r.Settle(context.Background(), e1, models.Outcome{ID: "e1", Status: models.OutcomeConflict, Data: tt.remote})
			require.NoError(t, err)

			got := records.get("r1")
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, "kept", got.Description, "missing remote fields are completed from the local copy")
			assert.Equal(t, tt.wantDone, got.Completed)
			assert.Equal(t, models.SyncStatusSynced, got.SyncStatus)
			assert.NotNil(t, got.LastSyncedAt)
			assert.Zero(t, queue.len())

			require.Len(t, observer.conflicts, 1)
			assert.Equal(t, tt.wantWinner, observer.conflicts[0].Winner)
			assert.Equal(t, "r1", observer.conflicts[0].RecordID)
		})
	}
}

func TestStatusReconciler_ConflictKeepsRemoteFalseValues(t *testing.T) {
	local := models.Record{ID: "r1", Title: "local", Completed: true, UpdatedAt: at(0)}
	e1 := newEntry("e1", "r1", models.OperationUpdate, at(0))
	records := newMemRecords(local)
	r := newTestReconciler(records, &memQueue{entries: []models.QueueEntry{e1}}, &spyObserver{})

	remote := &models.RemoteRecord{Completed: boolPtr(false), Title: strPtr(""), UpdatedAt: timePtr(at(time.Minute))}
	require.NoError(t, r.Settle(context.Background(), e1, models.Outcome{ID: "e1", Status: models.OutcomeConflict, Data: remote}))

	got := records.get("r1")
	assert.False(t, got.Completed)
	assert.Empty(t, got.Title)
}

func TestStatusReconciler_ConflictForMissingLocalRecord(t *testing.T) {
	e1 := newEntry("e1", "r1", models.OperationCreate, at(0))
	e1.Payload.Title = strPtr("from queue")
	queue := &memQueue{entries: []models.QueueEntry{e1}}
	observer := &spyObserver{}
	r := newTestReconciler(newMemRecords(), queue, observer)

	remote := &models.RemoteRecord{RemoteID: strPtr("srv-9"), UpdatedAt: timePtr(at(time.Minute))}
	require.NoError(t, r.Settle(context.Background(), e1, models.Outcome{ID: "e1", Status: models.OutcomeConflict, Data: remote}))

	assert.Zero(t, queue.len())
	require.Len(t, observer.conflicts, 1)
	assert.Equal(t, models.SideRemote, observer.conflicts[0].Winner)
	assert.Equal(t, at(0), observer.conflicts[0].LocalUpdatedAt, "the queued payload stands in for the local copy")
}

func TestStatusReconciler_ConflictKeepsEditMadeAfterDispatch(t *testing.T) {
	e1 := newEntry("e1", "r1", models.OperationUpdate, at(0))
	late := newEntry("e2", "r1", models.OperationUpdate, at(2*time.Minute))
	edited := models.Record{ID: "r1", Title: "edited offline", UpdatedAt: at(2 * time.Minute), SyncStatus: models.SyncStatusPending}

	queue := &memQueue{entries: []models.QueueEntry{e1, late}}
	records := newMemRecords(edited)
	observer := &spyObserver{}
	r := newTestReconciler(records, queue, observer)

	remote := &models.RemoteRecord{Title: strPtr("server"), UpdatedAt: timePtr(at(time.Minute))}
	require.NoError(t, r.Settle(context.Background(), e1, models.Outcome{ID: "e1", Status: models.OutcomeConflict, Data: remote}))

	assert.Equal(t, edited, records.get("r1"))
	_, ok := queue.find("e2")
	assert.True(t, ok)
	assert.Equal(t, 1, queue.len())
	assert.Len(t, observer.conflicts, 1)
}

// ── error ──

func TestStatusReconciler_ErrorDelegatesToLedger(t *testing.T) {
	local := models.Record{ID: "r1", Title: "untouched", UpdatedAt: at(0), SyncStatus: models.SyncStatusPending}
	e1 := newEntry("e1", "r1", models.OperationUpdate, at(0))
	queue := &memQueue{entries: []models.QueueEntry{e1}}
	records := newMemRecords(local)
	r := newTestReconciler(records, queue, &spyObserver{})

	require.NoError(t, r.Settle(context.Background(), e1, models.Outcome{ID: "e1", Status: models.OutcomeError, Error: "validation failed"}))

	assert.Equal(t, local, records.get("r1"))
	queued, ok := queue.find("e1")
	require.True(t, ok)
	assert.Equal(t, 1, queued.RetryCount)
	assert.Equal(t, "validation failed", *queued.LastError)
}
