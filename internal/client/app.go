package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/server"
	"github.com/MKhiriev/go-todo-sync/internal/workers"
)

// App runs the local API server and the background workers as one process.
type App struct {
	server  server.Server
	workers *workers.Workers
	logger  *logger.Logger
}

func NewApp(srv server.Server, w *workers.Workers, logger *logger.Logger) (*App, error) {
	if srv == nil {
		return nil, errNoServer
	}
	if w == nil {
		w = workers.NewWorkers()
	}

	return &App{server: srv, workers: w, logger: logger}, nil
}

// Run starts the workers, serves the local API and blocks until ctx is done
// or a stop signal arrives. Workers are stopped before Run returns.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.workers.Run(ctx)
	defer a.workers.Stop()

	a.logger.Info().Msg("client started")

	if err := a.server.RunServer(ctx); err != nil {
		return fmt.Errorf("run local api: %w", err)
	}

	a.logger.Info().Msg("client stopped")
	return nil
}
