package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/maksimkurb/keen-embed/src/internal/assets"
	"github.com/maksimkurb/keen-embed/src/internal/metrics"
)

// Embed serves the files of an asset provider under a mount prefix.
//
// Only GET is accepted. The request path relative to the mount is looked up
// in the provider; a hit is written with its content type and ETag, a miss is
// handed to the fallback handler.
//
//	r := chi.NewRouter()
//	api.NewEmbed("/static", table).IndexFile("index.html").Register(r)
type Embed struct {
	mountPath   string
	provider    assets.Provider
	strictSlash bool
	indexFile   string
	fallback    http.Handler
	metrics     *metrics.Metrics
}

// NewEmbed creates a handler serving provider at mountPath. Trailing slashes
// of mountPath are dropped, so "/" denotes the root mount.
func NewEmbed(mountPath string, provider assets.Provider) *Embed {
	return &Embed{
		mountPath: strings.TrimRight(mountPath, "/"),
		provider:  provider,
		fallback:  NotFoundFallback(),
	}
}

// StrictSlash makes a trailing slash significant: "/dir/file/" no longer
// matches "dir/file". Disabled by default.
func (e *Embed) StrictSlash(strict bool) *Embed {
	e.strictSlash = strict
	return e
}

// IndexFile sets the file served for the mount root. There is no index file
// by default.
func (e *Embed) IndexFile(path string) *Embed {
	e.indexFile = strings.Trim(path, "/")
	return e
}

// Fallback sets the handler invoked when no file matches. It receives the
// request with the mount prefix already stripped.
func (e *Embed) Fallback(h http.Handler) *Embed {
	if h == nil {
		h = NotFoundFallback()
	}
	e.fallback = h
	return e
}

// WithMetrics records every lookup in m.
func (e *Embed) WithMetrics(m *metrics.Metrics) *Embed {
	e.metrics = m
	return e
}

func (e *Embed) MountPath() string {
	return e.mountPath
}

func (e *Embed) Provider() assets.Provider {
	return e.provider
}

func (e *Embed) IndexPath() string {
	return e.indexFile
}

// Register mounts e on r. Routes registered on r for more specific paths keep
// precedence over a root mount.
func (e *Embed) Register(r chi.Router) {
	if e.mountPath == "" {
		r.Mount("/", e)
		return
	}
	r.Mount(e.mountPath, http.StripPrefix(e.mountPath, e))
}

func (e *Embed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		e.metrics.ObserveAsset(e.mountPath, metrics.ResultMethodNotAllowed)
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	f, ok := e.lookup(e.relativePath(r.URL.Path))
	if !ok {
		e.metrics.ObserveAsset(e.mountPath, metrics.ResultMiss)
		e.fallback.ServeHTTP(w, r)
		return
	}

	e.serveFile(w, r, f)
}

// relativePath maps a request path to a provider key.
func (e *Embed) relativePath(p string) string {
	p = strings.TrimLeft(p, "/")
	if !e.strictSlash {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return e.indexFile
	}
	return p
}

func (e *Embed) lookup(name string) (*assets.File, bool) {
	if name == "" {
		return nil, false
	}
	return e.provider.Get(name)
}

func (e *Embed) serveFile(w http.ResponseWriter, r *http.Request, f *assets.File) {
	h := w.Header()
	h.Set("ETag", f.ETag())

	if etagMatches(r.Header.Get("If-None-Match"), f) {
		e.metrics.ObserveAsset(e.mountPath, metrics.ResultNotModified)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	e.metrics.ObserveAsset(e.mountPath, metrics.ResultHit)
	h.Set("Content-Type", f.ContentType)
	h.Set("Content-Length", strconv.FormatInt(f.Size(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(f.Data)
}

// etagMatches reports whether an If-None-Match header value selects f.
// Both the quoted entity tag and the bare hash are accepted.
func etagMatches(header string, f *assets.File) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == f.ETag() || candidate == f.Hash {
			return true
		}
	}
	return false
}
