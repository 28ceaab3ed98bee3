// Package ops serves the operator endpoints on a separate port.
package ops

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheStats exposes the record cache to operators
type CacheStats interface {
	Len() int
	Sweep() int
}

type handlers struct {
	db    Pinger
	cache CacheStats
	log   zerolog.Logger
}

// NewRouter builds the ops router
func NewRouter(db Pinger, cache CacheStats, log zerolog.Logger) http.Handler {
	h := &handlers{db: db, cache: cache, log: log.With().Str("component", "ops").Logger()}
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", h.healthz)
	r.Get("/readyz", h.readyz)
	r.Route("/cache", func(r chi.Router) {
		r.Get("/", h.cacheStats)
		r.Post("/sweep", h.cacheSweep)
	})

	return r
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "moneytrail",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handlers) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("readiness check failed")
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "unavailable",
			"database": "unhealthy",
		})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"database": "healthy",
	})
}

func (h *handlers) cacheStats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": h.cache.Len(),
	})
}

func (h *handlers) cacheSweep(w http.ResponseWriter, r *http.Request) {
	removed := h.cache.Sweep()
	h.log.Info().Int("removed", removed).Msg("manual cache sweep")
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"removed": removed,
		"entries": h.cache.Len(),
	})
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error().Err(err).Msg("failed to write response")
	}
}
