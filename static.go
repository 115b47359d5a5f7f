package volki

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/volki-dev/volki/pkg/http"
	"github.com/volki-dev/volki/pkg/reactor"
)

// staticCacheControl is applied to every served file; dist outputs are
// rebuilt under new names so an hour of caching is safe.
const staticCacheControl = "public, max-age=3600"

// sanitizeStaticPath turns a request path into a relative file path, or
// reports false for anything that could escape the public directory.
func sanitizeStaticPath(urlPath string) (string, bool) {
	rel := strings.TrimPrefix(urlPath, "/")
	if rel == "" {
		return "", false
	}

	// NUL can arrive via %00.
	if strings.IndexByte(rel, 0) != -1 {
		return "", false
	}
	if strings.Contains(rel, "\\") {
		return "", false
	}
	// A leading "/" after trimming means "//etc/passwd" style input.
	if strings.HasPrefix(rel, "/") {
		return "", false
	}
	// Reject dot segments before cleaning; cleaning them away would
	// change the meaning of the request.
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", false
	}
	osPath := filepath.FromSlash(clean)
	if filepath.IsAbs(osPath) || filepath.VolumeName(osPath) != "" {
		return "", false
	}
	return clean, true
}

var contentTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".htm":   "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript; charset=utf-8",
	".mjs":   "application/javascript; charset=utf-8",
	".json":  "application/json",
	".wasm":  "application/wasm",
	".txt":   "text/plain; charset=utf-8",
	".xml":   "application/xml",
	".pdf":   "application/pdf",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".webp":  "image/webp",
	".avif":  "image/avif",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".mp4":   "video/mp4",
	".webm":  "video/webm",
	".mp3":   "audio/mpeg",
}

// contentTypeFor maps a file extension to its Content-Type.
func contentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// StaticResolver serves files out of dir for unrouted GETs. Misses,
// directories, and traversal attempts fall through to routing.
func StaticResolver(dir string) reactor.StaticResolver {
	return func(urlPath string) *http.Response {
		rel, ok := sanitizeStaticPath(urlPath)
		if !ok {
			return nil
		}
		full := filepath.Join(dir, filepath.FromSlash(rel))
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			return nil
		}
		data, err := os.ReadFile(full)
		if err != nil {
			return nil
		}
		return http.OK().
			Header("Content-Type", contentTypeFor(rel)).
			Header("Cache-Control", staticCacheControl).
			Bytes(data)
	}
}

// WasmAsset returns a handler serving a compiled-in asset byte array,
// the form the route generator emits for files under public/wasm.
func WasmAsset(name string, data []byte) Handler {
	ct := contentTypeFor(name)
	return func(*Request) *Response {
		return http.OK().
			Header("Content-Type", ct).
			Header("Cache-Control", staticCacheControl).
			Bytes(data)
	}
}
