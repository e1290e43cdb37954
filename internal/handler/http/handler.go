package http

import (
	"net/http"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
)

// Handler serves either the client API or the authority API, depending on
// the constructor used.
type Handler struct {
	clientServices *service.ClientServices
	services       *service.Services

	appInfo service.AppInfoService
	hasher  *utils.Hasher
	metrics http.Handler

	logger *logger.Logger
}

// NewClientHandler creates a Handler for the local client API. metrics may
// be nil, in which case /metrics is not registered.
func NewClientHandler(services *service.ClientServices, metrics http.Handler, logger *logger.Logger) *Handler {
	logger.Info().Msg("client http handler created")
	return &Handler{
		clientServices: services,
		appInfo:        services.AppInfoService,
		metrics:        metrics,
		logger:         logger,
	}
}

// NewServerHandler creates a Handler for the remote authority. Batch bodies
// are verified against hashKey when it is not empty.
func NewServerHandler(services *service.Services, hashKey string, logger *logger.Logger) *Handler {
	logger.Info().Bool("integrity_check", hashKey != "").Msg("authority http handler created")
	return &Handler{
		services: services,
		appInfo:  services.AppInfoService,
		hasher:   utils.NewHasher(hashKey),
		logger:   logger,
	}
}
