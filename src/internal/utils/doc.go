// Package utils provides small helpers shared across keen-embed.
//
//   - Path utilities: resolve paths relative to the configuration directory
//   - Request utilities: client IP extraction and private network checks
//   - File utilities: closing with a logged warning
//
// Path resolution:
//
//	absPath := utils.ResolveDir("public", "/etc/keen-embed")
//	// Returns: /etc/keen-embed/public
package utils
