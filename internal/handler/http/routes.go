package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SyncPath runs a sync cycle. A cycle runs to completion, so it is served
// without the request timeout.
const SyncPath = "/sync"

// InitClient builds the router of the local client API.
func (h *Handler) InitClient() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Get("/health", h.clientHealth)
	router.Get("/version", h.getVersion)
	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics)
	}

	// records
	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		r.Post("/records", h.createRecord)
		r.Get("/records", h.listRecords)
		r.Get("/records/{id}", h.getRecord)
		r.Put("/records/{id}", h.updateRecord)
		r.Delete("/records/{id}", h.deleteRecord)
	})

	// sync
	router.Post(SyncPath, h.runSync)
	router.With(withGZip).Get("/sync/dead", h.listDeadEntries)
	router.Get("/status", h.getStatus)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// InitServer builds the router of the remote authority.
func (h *Handler) InitServer() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Get("/health", h.serverHealth)
	router.Get("/version", h.getVersion)
	router.With(withGZip, h.withHashCheck).Post("/sync/batch", h.applyBatch)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
