package server

import (
	"path/filepath"
	"strings"
)

// mimeByExtension guesses a MIME type from the file extension. Unknown
// extensions return the empty string and the link carries no type.
func mimeByExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts":
		return "text/typescript"
	case ".tsx":
		return "text/tsx"
	case ".js":
		return "text/javascript"
	case ".jsx":
		return "text/jsx"
	case ".py":
		return "text/x-python"
	case ".json":
		return "application/json"
	case ".md":
		return "text/markdown"
	}
	return ""
}
