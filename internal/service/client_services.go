package service

import (
	"github.com/MKhiriev/go-todo-sync/internal/adapter"
	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/models"
)

type ClientServices struct {
	RecordService  RecordService
	SyncService    SyncService
	StatusService  StatusService
	AppInfoService AppInfoService
	SyncJob        ClientSyncJob
}

// NewClientServices wires the client services around one storage set and one
// remote adapter. observer may be nil.
func NewClientServices(
	storages *store.ClientStorages,
	remote adapter.RemoteAdapter,
	ids store.IDGenerator,
	observer SyncObserver,
	buildInfo models.AppBuildInfo,
	cfg *config.ClientConfig,
	logger *logger.Logger,
) (*ClientServices, error) {
	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	gate := NewConnectivityGate(remote, cfg.Adapter.ProbeTimeout)
	dispatcher := NewRemoteDispatcher(remote, cfg.Adapter.BatchTimeout)
	observer = NewMultiObserver(NewLogObserver(logger), observer)

	records := NewRecordValidationService().Wrap(NewRecordService(storages.Records, storages.Queue, ids, logger))
	syncSvc := NewClientSyncService(storages.Records, storages.Queue, gate, dispatcher, observer, cfg.Sync, logger)

	return &ClientServices{
		RecordService:  records,
		SyncService:    syncSvc,
		StatusService:  NewStatusService(gate, storages.Records, storages.Queue),
		AppInfoService: appInfo,
		SyncJob:        NewClientSyncJob(syncSvc, logger),
	}, nil
}
