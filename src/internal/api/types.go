package api

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// MountInfo describes a registered mount.
type MountInfo struct {
	Prefix      string `json:"prefix"`
	Source      string `json:"source"` // "embedded", "dir"
	Dir         string `json:"dir,omitempty"`
	AssetCount  int    `json:"asset_count"`
	IndexFile   string `json:"index_file,omitempty"`
	StrictSlash bool   `json:"strict_slash"`
	Fallback    string `json:"fallback"`
	Fingerprint string `json:"fingerprint"`
}

// MountsResponse returns all mounts in configuration order.
type MountsResponse struct {
	Mounts []MountInfo `json:"mounts"`
}

// AssetInfo describes one file of a mount.
type AssetInfo struct {
	Path        string `json:"path"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
	ETag        string `json:"etag"`
}

// AssetsResponse is the manifest of a mount.
type AssetsResponse struct {
	Prefix string      `json:"prefix"`
	Assets []AssetInfo `json:"assets"`
}

// VersionInfo contains build version information.
type VersionInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// StatusResponse returns build and runtime information.
type StatusResponse struct {
	Version       VersionInfo `json:"version"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	MountCount    int         `json:"mount_count"`
}

// HealthCheckResponse contains the result of health checks.
type HealthCheckResponse struct {
	Healthy bool                   `json:"healthy"`
	Checks  map[string]CheckResult `json:"checks"`
}

// CheckResult is the outcome of a single health check.
type CheckResult struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}
