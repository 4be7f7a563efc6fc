package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maksimkurb/keen-embed/src/internal/config"
	"github.com/maksimkurb/keen-embed/src/internal/domain"
	"github.com/maksimkurb/keen-embed/src/internal/errors"
	"github.com/maksimkurb/keen-embed/src/internal/metrics"
	"github.com/maksimkurb/keen-embed/src/internal/ratelimit"
)

// NewRouter creates the HTTP router: admin endpoints under /api/v1, the
// Prometheus endpoint and one Embed per mount.
func NewRouter(cfg *config.Config, deps *domain.AppDependencies) (http.Handler, error) {
	r := chi.NewRouter()

	var limiter *ratelimit.Limiter
	if rl := cfg.Server.RateLimit; rl != nil {
		limiter = ratelimit.New(rl.RPS, rl.Burst).WithGlobal(rl.GlobalRPS, rl.GlobalBurst)
	}

	// Apply middleware
	r.Use(Recovery)
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(deps.Metrics().Middleware)
	r.Use(func(next http.Handler) http.Handler {
		return limiter.Middleware(deps.Metrics(), next)
	})

	admin := cfg.Admin
	if admin == nil {
		admin = &config.AdminConfig{}
	}

	if admin.Enable {
		h := NewHandler(deps)

		// API v1 routes
		r.Route("/api/v1", func(r chi.Router) {
			if admin.PrivateOnly {
				r.Use(PrivateSubnetOnly) // Restrict access to private subnets
			}

			r.Get("/mounts", h.GetMounts)
			r.Get("/mounts/assets", h.GetMountAssets)
			r.Get("/status", h.GetStatus)
			r.Get("/health", h.CheckHealth)
		})
	}

	if admin.Metrics {
		var metricsHandler http.Handler = promhttp.HandlerFor(deps.Registry(), promhttp.HandlerOpts{})
		if admin.PrivateOnly {
			metricsHandler = PrivateSubnetOnly(metricsHandler)
		}
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	for _, m := range deps.Mounts() {
		e, err := NewEmbedForMount(m, deps.Metrics())
		if err != nil {
			return nil, err
		}
		e.Register(r)
	}

	return r, nil
}

// NewEmbedForMount creates the Embed described by a mount configuration.
func NewEmbedForMount(m *domain.Mount, mt *metrics.Metrics) (*Embed, error) {
	e := NewEmbed(m.Prefix(), m.Table).
		StrictSlash(m.Config.StrictSlash).
		IndexFile(m.Config.IndexFile).
		WithMetrics(mt)

	fallback, err := fallbackForMount(e, m.Config)
	if err != nil {
		return nil, errors.NewMountError(fmt.Sprintf("mount %s", m.DisplayPrefix()), err)
	}
	e.Fallback(fallback)

	return e, nil
}
