package api

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/maksimkurb/keen-embed/src/internal/config"
	"github.com/maksimkurb/keen-embed/src/internal/log"
)

const notFoundBody = "404 Not Found"

// NotFoundFallback answers every request with 404 and a fixed body.
func NotFoundFallback() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, notFoundBody)
	})
}

// TemplateFallback renders tmpl for every miss. The placeholders {{path}} and
// {{mount}} are replaced with the requested path and the mount prefix.
func TemplateFallback(mountPath, tmpl string, status int) (http.Handler, error) {
	t, err := fasttemplate.NewTemplate(tmpl, "{{", "}}")
	if err != nil {
		return nil, fmt.Errorf("invalid fallback template: %w", err)
	}
	if status == 0 {
		status = http.StatusNotFound
	}

	mount := strings.TrimRight(mountPath, "/")
	displayMount := mount
	if displayMount == "" {
		displayMount = "/"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested := mount + "/" + strings.TrimLeft(r.URL.Path, "/")

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, err := t.ExecuteFunc(w, func(w io.Writer, tag string) (int, error) {
			switch strings.TrimSpace(tag) {
			case "path":
				return io.WriteString(w, requested)
			case "mount":
				return io.WriteString(w, displayMount)
			default:
				return 0, nil
			}
		})
		if err != nil {
			log.Debugf("Failed to render fallback for %s: %v", requested, err)
		}
	}), nil
}

// IndexFallback serves the index file of e for misses on extension-less
// paths, so client-side routes of a single page application resolve. Other
// misses get a 404.
func IndexFallback(e *Embed) http.Handler {
	notFound := NotFoundFallback()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path.Ext(strings.TrimRight(r.URL.Path, "/")) == "" {
			if f, ok := e.lookup(e.indexFile); ok {
				e.serveFile(w, r, f)
				return
			}
		}
		notFound.ServeHTTP(w, r)
	})
}

// fallbackForMount builds the fallback handler configured for a mount.
func fallbackForMount(e *Embed, mc *config.MountConfig) (http.Handler, error) {
	switch mc.FallbackMode() {
	case config.FallbackIndex:
		return IndexFallback(e), nil
	case config.FallbackTemplate:
		return TemplateFallback(e.MountPath(), mc.FallbackTemplate, mc.FallbackStatus)
	default:
		return NotFoundFallback(), nil
	}
}
