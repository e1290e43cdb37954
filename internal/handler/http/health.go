package http

import (
	"net/http"

	"github.com/MKhiriev/go-todo-sync/internal/app"
	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
)

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// clientHealth reports local liveness only. Remote reachability is part of
// GET /status.
func (h *Handler) clientHealth(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
}

// serverHealth doubles as the connectivity probe target of clients, so it
// fails while the authority storage is unreachable.
func (h *Handler) serverHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.services.SyncService.Ping(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.serverHealth").Msg("storage is unreachable")
		utils.WriteJSON(w, healthResponse{Status: "unavailable", Error: app.MsgStorageUnavailable}, http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
}
