package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/mock"
	"github.com/MKhiriev/go-todo-sync/models"
)

func TestRemoteDispatcher_Dispatch(t *testing.T) {
	batch := models.Batch{
		newEntry("e1", newRecordID(), models.OperationCreate, at(0)),
		newEntry("e2", newRecordID(), models.OperationUpdate, at(time.Second)),
		newEntry("e3", newRecordID(), models.OperationDelete, at(2*time.Second)),
	}

	tests := []struct {
		name      string
		processed []models.Outcome
		want      map[string]models.OutcomeStatus
		wantErr   map[string]string
	}{
		{
			name: "all success",
			processed: []models.Outcome{
				{ID: "e1", Status: models.OutcomeSuccess},
				{ID: "e2", Status: models.OutcomeSuccess},
				{ID: "e3", Status: models.OutcomeSuccess},
			},
			want: map[string]models.OutcomeStatus{"e1": models.OutcomeSuccess, "e2": models.OutcomeSuccess, "e3": models.OutcomeSuccess},
		},
		{
			name: "partial success",
			processed: []models.Outcome{
				{ID: "e1", Status: models.OutcomeSuccess},
				{ID: "e2", Status: models.OutcomeConflict},
				{ID: "e3", Status: models.OutcomeError, Error: "rejected"},
			},
			want:    map[string]models.OutcomeStatus{"e1": models.OutcomeSuccess, "e2": models.OutcomeConflict, "e3": models.OutcomeError},
			wantErr: map[string]string{"e3": "rejected"},
		},
		{
			name: "missing outcome becomes error",
			processed: []models.Outcome{
				{ID: "e1", Status: models.OutcomeSuccess},
				{ID: "e3", Status: models.OutcomeSuccess},
			},
			want:    map[string]models.OutcomeStatus{"e1": models.OutcomeSuccess, "e2": models.OutcomeError, "e3": models.OutcomeSuccess},
			wantErr: map[string]string{"e2": ErrMissingOutcome.Error()},
		},
		{
			name: "unknown status becomes error and extra ids are ignored",
			processed: []models.Outcome{
				{ID: "e1", Status: "maybe"},
				{ID: "e2", Status: models.OutcomeSuccess},
				{ID: "e3", Status: models.OutcomeError},
				{ID: "ghost", Status: models.OutcomeSuccess},
			},
			want:    map[string]models.OutcomeStatus{"e1": models.OutcomeError, "e2": models.OutcomeSuccess, "e3": models.OutcomeError},
			wantErr: map[string]string{"e3": "remote rejected entry"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			remote := mock.NewMockRemoteAdapter(ctrl)
			remote.EXPECT().SendBatch(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req models.BatchRequest) (models.BatchResponse, error) {
					assert.Equal(t, []models.QueueEntry(batch), req.Items)
					assert.False(t, req.ClientTimestamp.IsZero())
					return models.BatchResponse{ProcessedItems: tt.processed}, nil
				})

			outcomes, err := NewRemoteDispatcher(remote, time.Second).Dispatch(context.Background(), batch)
			require.NoError(t, err)
			require.Len(t, outcomes, len(batch))

			for id, status := range tt.want {
				assert.Equal(t, status, outcomes[id].Status, id)
				assert.Equal(t, id, outcomes[id].ID)
			}
			for id, text := range tt.wantErr {
				assert.Equal(t, text, outcomes[id].Error, id)
			}
			assert.NotContains(t, outcomes, "ghost")
		})
	}
}

func TestRemoteDispatcher_TransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	remote.EXPECT().SendBatch(gomock.Any(), gomock.Any()).
		Return(models.BatchResponse{}, adapter.ErrInternalServerError)

	outcomes, err := NewRemoteDispatcher(remote, time.Second).
		Dispatch(context.Background(), models.Batch{newEntry("e1", newRecordID(), models.OperationCreate, at(0))})

	require.Error(t, err)
	assert.Nil(t, outcomes)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, adapter.ErrInternalServerError)

	var te *TransportError
	require.True(t, errors.As(err, &te))
}

func TestRemoteDispatcher_TimeoutIsTransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	remote.EXPECT().SendBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.BatchRequest) (models.BatchResponse, error) {
			<-ctx.Done()
			return models.BatchResponse{}, ctx.Err()
		})

	_, err := NewRemoteDispatcher(remote, 20*time.Millisecond).
		Dispatch(context.Background(), models.Batch{newEntry("e1", newRecordID(), models.OperationCreate, at(0))})

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
