package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/MKhiriev/go-todo-sync/models"
)

// runSync runs one cycle. A closed connectivity gate answers 503; any other
// outcome, partial failure included, answers 200 with the cycle result.
// The cycle outlives a disconnected caller and keeps the request's values.
func (h *Handler) runSync(w http.ResponseWriter, r *http.Request) {
	result := h.clientServices.SyncService.Run(context.WithoutCancel(r.Context()))
	if result.Errors == nil {
		result.Errors = []models.CycleError{}
	}

	status := http.StatusOK
	if result.Offline {
		status = http.StatusServiceUnavailable
	}

	logger.FromRequest(r).Debug().Str("func", "*Handler.runSync").
		Bool("success", result.Success).
		Int("synced", result.SyncedItems).
		Int("failed", result.FailedItems).
		Msg("sync cycle finished")

	utils.WriteJSON(w, result, status)
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	report, err := h.clientServices.StatusService.Status(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getStatus").Msg("error computing status")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, report, http.StatusOK)
}

func (h *Handler) listDeadEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.clientServices.SyncService.DeadEntries(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listDeadEntries").Msg("error listing dead entries")
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []models.DeadEntry{}
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}
