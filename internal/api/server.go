// Package api wires the chi router, middleware stack and handlers for the
// read-only snapshot API.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/cbb-data/internal/api/handler"
	"github.com/albapepper/cbb-data/internal/cache"
	"github.com/albapepper/cbb-data/internal/config"
	"github.com/albapepper/cbb-data/internal/dataset"
	"github.com/albapepper/cbb-data/internal/logging"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(store *dataset.Store, appCache *cache.Cache, cfg *config.Config, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(LogMiddleware(logger))
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	h := handler.New(store, appCache, cfg, logger)

	// --- Routes ---

	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/metadata", h.GetMetadata)

		r.Get("/teams", h.ListTeams)
		r.Get("/teams/{teamId}", h.GetTeam)

		r.Get("/rankings", h.GetRankings)
		r.Get("/conferences", h.ListConferences)
		r.Get("/matchup", h.GetMatchup)
	})

	return r
}
