package server

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound covers both genuinely missing files and rejected paths.
// Traversal attempts must look exactly like missing files to the
// client, so the locator never reports which one it saw.
var ErrNotFound = errors.New("resource not found")

// Resource is a located file under the root: an opaque byte sequence
// with a size and a content type. The server never interprets its
// contents.
type Resource struct {
	FilePath    string
	Size        int64
	ContentType string
}

// Locator maps request paths to files beneath a single root directory.
type Locator struct {
	Root string
}

// Content types are a fixed table rather than a registry lookup so the
// server behaves identically regardless of host mime configuration.
var contentTypes = map[string]string{
	".html":    "text/html; charset=utf-8",
	".css":     "text/css; charset=utf-8",
	".js":      "text/javascript; charset=utf-8",
	".json":    "application/json",
	".geojson": "application/geo+json",
	".png":     "image/png",
	".jpg":     "image/jpeg",
	".jpeg":    "image/jpeg",
	".svg":     "image/svg+xml",
	".webp":    "image/webp",
	".ico":     "image/x-icon",
	".txt":     "text/plain; charset=utf-8",
	".pbf":     "application/x-protobuf",
	".wasm":    "application/wasm",
}

const defaultContentType = "application/octet-stream"

// Locate resolves a request path to a resource under the root and
// reads its size fresh. A path that escapes the root, a missing file,
// or anything that is not a plain file (after the index.html fallback
// for directories) comes back as ErrNotFound.
func (l Locator) Locate(requestPath string) (Resource, error) {
	if containsDotDot(requestPath) {
		return Resource{}, ErrNotFound
	}

	// Clean relative to "/" so the joined path cannot back out of the
	// root even if a dot-dot segment slips through upstream decoding.
	clean := path.Clean("/" + strings.TrimPrefix(requestPath, "/"))
	full := filepath.Join(l.Root, filepath.FromSlash(clean))

	info, err := os.Stat(full)
	if err != nil {
		return Resource{}, ErrNotFound
	}
	if info.IsDir() {
		full = filepath.Join(full, "index.html")
		info, err = os.Stat(full)
		if err != nil || info.IsDir() {
			return Resource{}, ErrNotFound
		}
	}
	if !info.Mode().IsRegular() {
		return Resource{}, ErrNotFound
	}

	return Resource{
		FilePath:    full,
		Size:        info.Size(),
		ContentType: contentTypeFor(full),
	}, nil
}

func contentTypeFor(filePath string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filePath))]; ok {
		return ct
	}
	return defaultContentType
}

func containsDotDot(p string) bool {
	for _, segment := range strings.FieldsFunc(p, isSlash) {
		if segment == ".." {
			return true
		}
	}
	return false
}

func isSlash(r rune) bool {
	return r == '/' || r == '\\'
}
