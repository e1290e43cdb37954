package client

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer returns err from RunServer and records whether workers were
// already running at that moment.
type fakeServer struct {
	err           error
	worker        *recordingWorker
	workerRunning bool
}

func (f *fakeServer) RunServer(context.Context) error {
	if f.worker != nil {
		f.workerRunning = f.worker.started && !f.worker.stopped
	}
	return f.err
}

func (f *fakeServer) Shutdown(context.Context) error { return nil }

type recordingWorker struct {
	started bool
	stopped bool
}

func (r *recordingWorker) Start(context.Context) { r.started = true }
func (r *recordingWorker) Stop()                 { r.stopped = true }

func TestNewApp_RequiresServer(t *testing.T) {
	app, err := NewApp(nil, nil, logger.Nop())

	require.ErrorIs(t, err, errNoServer)
	assert.Nil(t, app)
}

func TestApp_Run_WorkersSpanServerLifetime(t *testing.T) {
	worker := &recordingWorker{}
	srv := &fakeServer{worker: worker}

	app, err := NewApp(srv, workers.NewWorkers(worker), logger.Nop())
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))

	assert.True(t, srv.workerRunning, "worker must run while the server serves")
	assert.True(t, worker.stopped, "worker must be stopped on exit")
}

func TestApp_Run_ServerError(t *testing.T) {
	worker := &recordingWorker{}
	app, err := NewApp(&fakeServer{err: errors.New("address in use")}, workers.NewWorkers(worker), logger.Nop())
	require.NoError(t, err)

	err = app.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "address in use")
	assert.True(t, worker.stopped)
}

func TestApp_Run_NilWorkers(t *testing.T) {
	app, err := NewApp(&fakeServer{}, nil, logger.Nop())
	require.NoError(t, err)

	assert.NoError(t, app.Run(context.Background()))
}
