package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
)

const readHeaderTimeout = 5 * time.Second

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, untimed []string, address string, requestTimeout time.Duration, logger *logger.Logger) *httpServer {
	if requestTimeout > 0 {
		handler = withRequestTimeout(handler, requestTimeout, untimed)
	}

	return &httpServer{
		server: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: logger,
	}
}

// withRequestTimeout bounds every request by timeout except those whose path
// is listed in untimed.
func withRequestTimeout(next http.Handler, timeout time.Duration, untimed []string) http.Handler {
	timed := http.TimeoutHandler(next, timeout, `{"error":"request timed out"}`)
	if len(untimed) == 0 {
		return timed
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slices.Contains(untimed, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		timed.ServeHTTP(w, r)
	})
}

// RunServer blocks in ListenAndServe. A regular shutdown returns nil.
func (h *httpServer) RunServer() error {
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Err(err).Str("func", "*httpServer.RunServer").Msg("HTTP server ListenAndServe")
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	if err := h.server.Shutdown(ctx); err != nil {
		// ошибки закрытия Listener
		h.logger.Err(err).Str("func", "*httpServer.Shutdown").Msg("HTTP server Shutdown")
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
