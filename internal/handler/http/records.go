package http

import (
	"net/http"

	"github.com/MKhiriev/go-todo-sync/internal/app"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
	"github.com/MKhiriev/go-todo-sync/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.CreateRecordRequest
	if err := utils.ReadJSON(r.Body, &req); err != nil {
		log.Err(err).Str("func", "*Handler.createRecord").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	record, err := h.clientServices.RecordService.Create(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createRecord").Msg("error creating record")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, record, http.StatusCreated)
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.clientServices.RecordService.List(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listRecords").Msg("error listing records")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.clientServices.RecordService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getRecord").Msg("error getting record")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.UpdateRecordRequest
	if err := utils.ReadJSON(r.Body, &req); err != nil {
		log.Err(err).Str("func", "*Handler.updateRecord").Msg("invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	req.ID = chi.URLParam(r, "id")

	record, err := h.clientServices.RecordService.Update(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateRecord").Msg("error updating record")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.clientServices.RecordService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deleteRecord").Msg("error deleting record")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
