// Package api provides the HTTP surface of keen-embed.
//
// The core type is Embed, an http.Handler that serves the files of an
// assets.Provider under a mount prefix:
//   - GET only; other methods get 405 with "Allow: GET"
//   - the leading slash is dropped, a trailing slash too unless StrictSlash is set
//   - an empty path resolves to the index file, if one is configured
//   - a hit returns 200 with Content-Type and ETag, or 304 when If-None-Match matches
//   - a miss is passed to the fallback handler (404 "404 Not Found" by default)
//
// NewRouter combines one Embed per configured mount with the admin API.
//
// # Admin API
//
//	GET /api/v1/mounts                    registered mounts
//	GET /api/v1/mounts/assets?prefix=...  asset manifest of a mount
//	GET /api/v1/status                    build information and uptime
//	GET /api/v1/health                    mount health checks
//	GET /metrics                          Prometheus metrics
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "not_found",
//	    "message": "Human-readable error message",
//	    "details": { /* optional context */ }
//	  }
//	}
package api
