// Package metrics bundles the Prometheus collectors exported by keen-embed.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Asset lookup results.
const (
	ResultHit              = "hit"
	ResultMiss             = "miss"
	ResultNotModified      = "not_modified"
	ResultMethodNotAllowed = "method_not_allowed"
)

// Metrics bundles prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	AssetRequests      *prometheus.CounterVec
	RequestsTotal      *prometheus.CounterVec
	RequestDurationSec *prometheus.HistogramVec
	RateLimitDropped   prometheus.Counter

	mounts []string
}

func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		AssetRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keen_embed_asset_requests_total",
			Help: "Total number of asset lookups by mount and result.",
		}, []string{"mount", "result"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keen_embed_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		RequestDurationSec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "keen_embed_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		RateLimitDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "keen_embed_ratelimit_dropped_total",
			Help: "Total number of requests dropped by rate limiter.",
		}),
	}

	registry.MustRegister(
		m.AssetRequests,
		m.RequestsTotal,
		m.RequestDurationSec,
		m.RateLimitDropped,
	)

	return m
}

// SetMounts registers the mount prefixes used to label request routes.
// The longest matching prefix wins, so order does not matter.
func (m *Metrics) SetMounts(prefixes []string) {
	if m == nil {
		return
	}
	m.mounts = append([]string(nil), prefixes...)
}

// ObserveAsset records one asset lookup.
func (m *Metrics) ObserveAsset(mount, result string) {
	if m == nil {
		return
	}
	if mount == "" {
		mount = "/"
	}
	m.AssetRequests.WithLabelValues(mount, result).Inc()
}

// ObserveRateLimited records one request rejected by the rate limiter.
func (m *Metrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.RateLimitDropped.Inc()
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startedAt := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		status := strconv.Itoa(wrapped.statusCode)
		route := m.normalizeRoute(r.URL.Path)
		m.RequestsTotal.WithLabelValues(route, r.Method, status).Inc()
		m.RequestDurationSec.WithLabelValues(route, r.Method, status).Observe(time.Since(startedAt).Seconds())
	})
}

// normalizeRoute keeps label cardinality bounded: asset paths collapse onto
// their mount prefix.
func (m *Metrics) normalizeRoute(path string) string {
	switch {
	case path == "/metrics":
		return "/metrics"
	case path == "/api/v1" || strings.HasPrefix(path, "/api/v1/"):
		return "/api/v1/*"
	}

	best := ""
	matched := false
	for _, prefix := range m.mounts {
		if prefix == "" || path == prefix || strings.HasPrefix(path, prefix+"/") {
			if !matched || len(prefix) > len(best) {
				best = prefix
				matched = true
			}
		}
	}
	if matched {
		return best + "/*"
	}
	return "other"
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Flush keeps streaming behavior for handlers that require it.
func (rw *statusRecorder) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
