package shared

import (
	"net/http"
	"strconv"
)

// Pagination contains limit/offset parameters for list endpoints.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit/offset query parameters with sane bounds.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}
	return Pagination{Limit: limit, Offset: offset}
}
