package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/maksimkurb/keen-embed/src/internal/domain"
)

// Build information, set by the main package.
var (
	Version = "dev"
	Date    = "n/a"
	Commit  = "n/a"
)

// Handler serves the admin API.
type Handler struct {
	deps      *domain.AppDependencies
	startedAt time.Time
	now       func() time.Time
}

// NewHandler creates a new API handler over the given dependencies.
func NewHandler(deps *domain.AppDependencies) *Handler {
	return &Handler{
		deps:      deps,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// GetMounts lists the configured mounts.
// GET /api/v1/mounts
func (h *Handler) GetMounts(w http.ResponseWriter, r *http.Request) {
	response := MountsResponse{Mounts: make([]MountInfo, 0, len(h.deps.Mounts()))}

	for _, m := range h.deps.Mounts() {
		response.Mounts = append(response.Mounts, MountInfo{
			Prefix:      m.DisplayPrefix(),
			Source:      m.Config.Source(),
			Dir:         m.Config.Dir,
			AssetCount:  m.Table.Len(),
			IndexFile:   m.Config.IndexFile,
			StrictSlash: m.Config.StrictSlash,
			Fallback:    m.Config.FallbackMode(),
			Fingerprint: m.Table.Fingerprint(),
		})
	}

	writeJSONData(w, response)
}

// GetMountAssets returns the asset manifest of one mount.
// GET /api/v1/mounts/assets?prefix=/static
func (h *Handler) GetMountAssets(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		WriteInvalidRequest(w, "query parameter 'prefix' is required")
		return
	}

	m, ok := h.deps.MountByPrefix(prefix)
	if !ok {
		WriteNotFound(w, "Mount '"+prefix+"'")
		return
	}

	paths := m.Table.Paths()
	response := AssetsResponse{
		Prefix: m.DisplayPrefix(),
		Assets: make([]AssetInfo, 0, len(paths)),
	}
	for _, p := range paths {
		f, _ := m.Table.Get(p)
		response.Assets = append(response.Assets, AssetInfo{
			Path:        f.Path,
			URL:         m.Prefix() + "/" + f.Path,
			Size:        f.Size(),
			ContentType: f.ContentType,
			ETag:        f.ETag(),
		})
	}

	writeJSONData(w, response)
}

// GetStatus returns build information and uptime.
// GET /api/v1/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSONData(w, StatusResponse{
		Version: VersionInfo{
			Version: Version,
			Date:    Date,
			Commit:  Commit,
		},
		UptimeSeconds: int64(h.now().Sub(h.startedAt).Seconds()),
		MountCount:    len(h.deps.Mounts()),
	})
}

// CheckHealth verifies that every mount can serve requests.
// GET /api/v1/health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthCheckResponse{
		Healthy: true,
		Checks:  make(map[string]CheckResult),
	}

	if len(h.deps.Mounts()) == 0 {
		response.Healthy = false
		response.Checks["mounts"] = CheckResult{
			Passed:  false,
			Message: "No mounts registered",
		}
	}

	for _, m := range h.deps.Mounts() {
		key := "mount:" + m.DisplayPrefix()

		if m.Table.Len() == 0 {
			response.Checks[key] = CheckResult{
				Passed:  true,
				Message: "Mount has no assets, every request falls back",
			}
			continue
		}

		if index := m.Config.IndexFile; index != "" {
			if _, ok := m.Table.Get(strings.Trim(index, "/")); !ok {
				response.Healthy = false
				response.Checks[key] = CheckResult{
					Passed:  false,
					Message: "Index file '" + index + "' is missing",
				}
				continue
			}
		}

		response.Checks[key] = CheckResult{
			Passed:  true,
			Message: "Mount is serving assets",
		}
	}

	status := http.StatusOK
	if !response.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}
