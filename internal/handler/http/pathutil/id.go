// Package pathutil provides URL path helpers shared by handlers and
// metrics collection.
package pathutil

import (
	"errors"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID extracts an opaque string ID from a URL path.
// It removes the given prefix and rejects empty or nested remainders.
//
//	id, err := ExtractID("/articles/9f1c", "/articles/")
//	// Returns: "9f1c", nil
func ExtractID(path, prefix string) (string, error) {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || id == path || strings.Contains(id, "/") {
		return "", ErrInvalidID
	}
	return id, nil
}
