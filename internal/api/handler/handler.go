// Package handler provides HTTP handlers for all API endpoints.
// Handlers read the loaded snapshot through dataset.Store; encoded responses
// are cached per snapshot version with ETags.
package handler

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/albapepper/cbb-data/internal/api/respond"
	"github.com/albapepper/cbb-data/internal/cache"
	"github.com/albapepper/cbb-data/internal/config"
	"github.com/albapepper/cbb-data/internal/dataset"
	"github.com/albapepper/cbb-data/internal/logging"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store  *dataset.Store
	cache  *cache.Cache
	cfg    *config.Config
	logger *logging.Logger
}

// New creates a Handler with shared dependencies.
func New(store *dataset.Store, c *cache.Cache, cfg *config.Config, logger *logging.Logger) *Handler {
	return &Handler{store: store, cache: c, cfg: cfg, logger: logger}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and the season being served.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "CBB Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"season":  h.cfg.Season,
	})
}

// HealthCheck reports whether a snapshot is loaded.
// @Summary Health check
// @Description Returns health status, the snapshot path and whether it is loaded.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	body := map[string]interface{}{
		"snapshot":  h.store.Path(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if meta, err := h.store.Metadata(); err == nil {
		body["teams"] = meta.TeamCount
		body["last_updated"] = meta.LastUpdated
	} else {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	body["status"] = status
	respond.WriteJSONObject(w, code, body)
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys, hits, misses).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// serveCached answers from the cache when possible, otherwise builds the
// value, encodes it and stores it under a key scoped to the snapshot version.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, build func() (interface{}, error)) {
	key = h.store.Version() + "|" + key

	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	v, err := build()
	if err != nil {
		h.writeError(w, err)
		return
	}
	data, err := respond.Marshal(v)
	if err != nil {
		h.logger.Error("Failed to encode response", "path", r.URL.Path, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}

	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dataset.ErrTeamNotFound):
		respond.WriteErrorDetail(w, http.StatusNotFound, "NOT_FOUND", "Team not found", err.Error())
	case errors.Is(err, dataset.ErrInvalidQuery):
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_QUERY", "Invalid query parameter", err.Error())
	case errors.Is(err, dataset.ErrNotLoaded):
		respond.WriteError(w, http.StatusServiceUnavailable, "SNAPSHOT_UNAVAILABLE", "No snapshot loaded yet")
	default:
		h.logger.Error("Request failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Internal error")
	}
}
