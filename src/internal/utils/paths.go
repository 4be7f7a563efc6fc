package utils

import "path/filepath"

// ResolveDir resolves dir against baseDir. Absolute dirs are only cleaned and
// an empty dir stays empty.
func ResolveDir(dir, baseDir string) string {
	if dir == "" {
		return ""
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(baseDir, dir)
}
