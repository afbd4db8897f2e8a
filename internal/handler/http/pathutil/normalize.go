package pathutil

import "strings"

// collections are path prefixes whose next segment is a record ID.
var collections = []string{"/articles/"}

// NormalizePath replaces record IDs in known paths with a template segment
// so that metrics labels stay low-cardinality.
//
//	NormalizePath("/articles/9f1c") // "/articles/:id"
//	NormalizePath("/health")        // "/health"
func NormalizePath(path string) string {
	for _, prefix := range collections {
		rest, ok := strings.CutPrefix(path, prefix)
		if !ok || rest == "" {
			continue
		}
		if !strings.Contains(rest, "/") {
			return prefix + ":id"
		}
	}
	return path
}
