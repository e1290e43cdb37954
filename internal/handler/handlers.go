package handler

import (
	nethttp "net/http"

	"github.com/MKhiriev/go-todo-sync/internal/config"
	"github.com/MKhiriev/go-todo-sync/internal/handler/http"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/service"
)

// Handlers holds the routers served by the transport layer.
type Handlers struct {
	HTTP nethttp.Handler

	// Untimed lists request paths exempt from the server's request timeout.
	Untimed []string
}

// NewClientHandlers builds the local client API router. metrics is mounted at
// /metrics when not nil.
func NewClientHandlers(services *service.ClientServices, metrics nethttp.Handler, cfg config.ClientServer, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating client handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP:    http.NewClientHandler(services, metrics, logger).InitClient(),
		Untimed: []string{http.SyncPath},
	}, nil
}

// NewServerHandlers builds the remote authority router.
func NewServerHandlers(services *service.Services, cfg *config.ServerConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating authority handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewServerHandler(services, cfg.HashKey, logger).InitServer(),
	}, nil
}
