package lsp

import (
	"net/url"
	"path/filepath"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"cascade/internal/config"
)

// uriToPath converts a file:// URI into an absolute local path. Unsaved
// buffers (untitled:) and other schemes have no path and yield "".
func uriToPath(uri protocol.DocumentUri) string {
	parsed, err := url.Parse(uri)
	if err != nil || uri == "" {
		return ""
	}
	var path string
	switch parsed.Scheme {
	case "file":
		path = parsed.Path
	case "":
		// голый путь вместо URI присылают некоторые клиенты
		path = uri
		if unescaped, err := url.PathUnescape(path); err == nil {
			path = unescaped
		}
	default:
		return ""
	}
	path = filepath.FromSlash(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

// isConfigURI: the document is a project configuration file.
func isConfigURI(uri protocol.DocumentUri) bool {
	path := uriToPath(uri)
	return path != "" && filepath.Base(path) == config.FileName
}
