package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents the optional pagination bounds from an HTTP request.
// A nil field means the parameter was absent, which means "no bound".
// Offset without limit is valid: offset is applied first, then limit.
type Params struct {
	Limit  *int
	Offset *int
}

// ParseQueryParams parses limit/offset from the request query string.
//
// Query parameters:
//   - limit: decimal digits, must be between 1 and config.MaxLimit
//   - offset: decimal digits, must be >= 0
//
// Returns an error if a present parameter is malformed or out of range.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	var params Params

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return Params{}, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = &limit
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return Params{}, fmt.Errorf("invalid query parameter: offset must be a non-negative integer")
		}
		params.Offset = &offset
	}

	return params, nil
}
