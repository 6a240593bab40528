package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/scoutdesk/internal/domain/dedupe"
)

// IdempotencyHeader carries a client-chosen key for a write request.
const IdempotencyHeader = "Idempotency-Key"

// ErrRequestInProgress is returned for a key whose first request has not
// finished yet.
var ErrRequestInProgress = errors.New("request with this idempotency key is in progress")

// Idempotent runs next once per Idempotency-Key. A retry of a completed
// write gets a duplicate ack; a retry while the first request is still
// running gets 409 and should be sent again later. The key is released
// when next fails so the client can retry.
func Idempotent(deps IdempotencyDependencies, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
		if key == "" {
			next(w, r)
			return
		}
		switch deps.ClaimIdempotencyKey(r.Context(), key) {
		case dedupe.Done:
			writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
			return
		case dedupe.Pending:
			writeError(w, http.StatusConflict, "in_progress", ErrRequestInProgress)
			return
		}

		completed := false
		defer func() {
			if !completed {
				deps.ReleaseIdempotencyKey(r.Context(), key)
			}
		}()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(wrapped, r)
		if wrapped.statusCode < http.StatusBadRequest {
			deps.CompleteIdempotencyKey(r.Context(), key)
			completed = true
		}
	}
}
