package service

import (
	"context"

	"github.com/MKhiriev/go-todo-sync/models"
)

// AuthoritySyncService applies client batches on the remote authority.
type AuthoritySyncService interface {
	// ApplyBatch processes every item independently and returns one outcome
	// per item in submission order. A per-item failure never fails the batch.
	ApplyBatch(ctx context.Context, req models.BatchRequest) (models.BatchResponse, error)

	// Ping reports whether the authority storage is reachable.
	Ping(ctx context.Context) error
}

// AuthoritySyncServiceWrapper defines middleware composition for
// AuthoritySyncService.
type AuthoritySyncServiceWrapper interface {
	Wrap(AuthoritySyncService) AuthoritySyncService
}

// AppInfoService exposes build metadata of the running binary.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.AppBuildInfo
}
