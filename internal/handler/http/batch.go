package http

import (
	"net/http"

	"github.com/MKhiriev/go-todo-sync/internal/app"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/MKhiriev/go-todo-sync/models"
)

// applyBatch answers POST /sync/batch with one outcome per submitted item.
func (h *Handler) applyBatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.BatchRequest
	if err := utils.ReadJSON(r.Body, &req); err != nil {
		log.Err(err).Str("func", "*Handler.applyBatch").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	resp, err := h.services.SyncService.ApplyBatch(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.applyBatch").Int("items", len(req.Items)).Msg("error applying batch")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
