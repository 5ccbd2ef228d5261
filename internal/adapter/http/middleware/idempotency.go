package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/arledger/internal/usecase"
)

const (
	// IdempotencyKeyHeader lets clients retry invoice, payment and note
	// submissions without creating duplicates.
	IdempotencyKeyHeader = "Idempotency-Key"

	// IdempotencyReplayHeader marks a response served from the cache.
	IdempotencyReplayHeader = "X-Idempotency-Replay"

	idempotencyTTL = 24 * time.Hour

	// Sentinel stored while the first request is still in flight.
	inFlightMarker = "processing"
)

// cachedResponse is the stored shape of a completed request, so a replay
// returns the original status as well as the body.
type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// IdempotencyMiddleware deduplicates mutating requests by client-supplied
// key. Keys are scoped to method and path, so reusing one key across
// endpoints does not cross-replay responses.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		scopedKey := r.Method + " " + r.URL.Path + " " + key

		exists, cached, err := m.store.CheckAndSet(r.Context(), scopedKey, nil, idempotencyTTL)
		if err != nil {
			log.Error().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"internal_error","message":"idempotency check failed"}`))
			return
		}

		if exists && cached != nil && string(cached) != inFlightMarker {
			m.replay(w, key, cached)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		// Only successful document writes are cached; a failed submission
		// may legitimately be retried with the same key.
		if recorder.statusCode >= 200 && recorder.statusCode < 300 {
			stored, err := json.Marshal(cachedResponse{
				Status: recorder.statusCode,
				Body:   recorder.body.Bytes(),
			})
			if err != nil {
				return
			}
			if err := m.store.Update(r.Context(), scopedKey, stored, idempotencyTTL); err != nil {
				log.Error().Err(err).Str("idempotency_key", key).Msg("failed to store idempotent response")
			}
		}
	})
}

func (m *IdempotencyMiddleware) replay(w http.ResponseWriter, key string, cached []byte) {
	var stored cachedResponse
	if err := json.Unmarshal(cached, &stored); err != nil || stored.Status == 0 {
		stored = cachedResponse{Status: http.StatusOK, Body: cached}
	}

	log.Debug().Str("idempotency_key", key).Msg("replaying cached response")

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(IdempotencyReplayHeader, "true")
	w.WriteHeader(stored.Status)
	w.Write(stored.Body)
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
