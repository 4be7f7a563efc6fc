// Package frontend holds the static files embedded into the keen-embed binary.
package frontend

import (
	"embed"
	"io/fs"
)

// distFS contains the embedded frontend dist files.
//
//go:embed all:dist
var distFS embed.FS

// DistFS returns the embedded files with the "dist" prefix stripped, so
// "dist/index.html" is served as "index.html".
func DistFS() (fs.FS, error) {
	return fs.Sub(distFS, "dist")
}
