package assets

import (
	"mime"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultContentType is used when the extension is unknown or absent.
const DefaultContentType = "application/octet-stream"

// builtinTypes is consulted before the platform table so the result does not
// depend on the mime.types files installed on the host.
var builtinTypes = map[string]string{
	".html":        "text/html; charset=utf-8",
	".htm":         "text/html; charset=utf-8",
	".css":         "text/css; charset=utf-8",
	".js":          "text/javascript; charset=utf-8",
	".mjs":         "text/javascript; charset=utf-8",
	".json":        "application/json",
	".map":         "application/json",
	".webmanifest": "application/manifest+json",
	".txt":         "text/plain; charset=utf-8",
	".md":          "text/markdown; charset=utf-8",
	".csv":         "text/csv; charset=utf-8",
	".xml":         "text/xml; charset=utf-8",
	".svg":         "image/svg+xml",
	".png":         "image/png",
	".jpg":         "image/jpeg",
	".jpeg":        "image/jpeg",
	".gif":         "image/gif",
	".webp":        "image/webp",
	".avif":        "image/avif",
	".ico":         "image/x-icon",
	".woff":        "font/woff",
	".woff2":       "font/woff2",
	".ttf":         "font/ttf",
	".otf":         "font/otf",
	".wasm":        "application/wasm",
	".pdf":         "application/pdf",
	".zip":         "application/zip",
	".gz":          "application/gzip",
	".mp3":         "audio/mpeg",
	".wav":         "audio/wav",
	".mp4":         "video/mp4",
	".webm":        "video/webm",
}

// ContentTypeByPath infers the content type from the file extension.
// Unknown or missing extensions yield DefaultContentType.
func ContentTypeByPath(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return DefaultContentType
	}
	if ct, ok := builtinTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return DefaultContentType
}

// sniffContentType detects the type from content. Used only for files whose
// extension gave no answer, and only when sniffing is enabled.
func sniffContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

func resolveContentType(name string, data []byte, sniff bool) string {
	ct := ContentTypeByPath(name)
	if ct == DefaultContentType && sniff && len(data) > 0 {
		return sniffContentType(data)
	}
	return ct
}
