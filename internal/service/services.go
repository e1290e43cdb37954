package service

import (
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/models"
)

type Services struct {
	SyncService    AuthoritySyncService
	AppInfoService AppInfoService
}

func NewServices(storages *store.ServerStorages, ids store.IDGenerator, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		SyncService:    NewAuthoritySyncValidationService().Wrap(NewAuthoritySyncService(storages.Authority, ids, logger)),
		AppInfoService: appInfo,
	}, nil
}
