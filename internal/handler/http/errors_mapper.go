package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-todo-sync/internal/app"
	"github.com/MKhiriev/go-todo-sync/internal/service"
	"github.com/MKhiriev/go-todo-sync/internal/store"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrVersionIsNotSpecified: http.StatusInternalServerError,
	service.ErrConnectivity:          http.StatusServiceUnavailable,

	store.ErrRecordNotFound:      http.StatusNotFound,
	store.ErrRecordAlreadyExists: http.StatusConflict,
	store.ErrRecordNotSaved:      http.StatusInternalServerError,
	store.ErrQueueEntryNotSaved:  http.StatusInternalServerError,
	store.ErrQueueEntryNotFound:  http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the status mapped from err. Messages of server-side
// failures are replaced so storage details do not leak to callers.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	message := err.Error()
	switch {
	case status == http.StatusServiceUnavailable:
		message = app.MsgRemoteUnavailable
	case status >= http.StatusInternalServerError:
		message = app.MsgInternalServerError
	}

	utils.WriteError(w, message, status)
}
