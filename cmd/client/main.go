package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/client"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/handler"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/server"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/internal/telemetry"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/MKhiriev/go-todo-sync/internal/workers"
	"github.com/MKhiriev/go-todo-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	ctx := context.Background()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("todo-sync-client").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("todo-sync-client", cfg.LogFile)
	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("remote", cfg.Adapter.RemoteURL).
		Int("batch_size", cfg.Sync.BatchSize).
		Dur("sync_interval", cfg.Workers.SyncInterval).
		Msg("received configs")

	ids := utils.NewUUIDGenerator()

	storages, err := store.NewClientStorages(ctx, cfg.Storage, ids, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	remote, err := adapter.NewHTTPRemoteAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote adapter")
	}

	meterProvider, err := telemetry.NewPrometheusMeterProvider(ctx, "todo-sync-client", buildVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("create meter provider")
	}
	defer meterProvider.Shutdown(context.Background())

	syncMetrics, err := telemetry.NewSyncMetrics(meterProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("create sync metrics")
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewClientServices(storages, remote, ids, syncMetrics, buildInfo, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	handlers, err := handler.NewClientHandlers(services, meterProvider.Handler(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server.HTTPAddress, cfg.Server.RequestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server")
	}

	app, err := client.NewApp(srv, workers.NewWorkers(
		workers.NewSyncWorker(services.SyncJob, cfg.Workers.SyncInterval, log),
	), log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
