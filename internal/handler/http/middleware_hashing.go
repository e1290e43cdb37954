package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-todo-sync/internal/logger"
	"github.com/MKhiriev/go-todo-sync/internal/utils"
)

// withHashCheck verifies the HashSHA256 header against the raw request body.
// It is a pass-through when the authority has no hash key configured.
func (h *Handler) withHashCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.hasher.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withHashCheck").Msg("failed to read request body")
			utils.WriteError(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		signature := r.Header.Get(utils.HashHeader)
		if signature == "" {
			log.Warn().Str("func", "*Handler.withHashCheck").Msg("request has no hash header")
			utils.WriteError(w, ErrMissingHash.Error(), http.StatusUnauthorized)
			return
		}

		if !h.hasher.Verify(body, signature) {
			log.Warn().Str("func", "*Handler.withHashCheck").
				Str("hash from request", signature).
				Msg("hashes are not equal")
			utils.WriteError(w, ErrIntegrityCheckFailed.Error(), http.StatusUnauthorized)
			return
		}

		log.Debug().Str("func", "*Handler.withHashCheck").Msg("hashes are equal")

		next.ServeHTTP(w, r)
	})
}
