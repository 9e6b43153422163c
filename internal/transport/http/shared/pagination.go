package shared

import (
	"net/http"
	"strconv"
)

// Pagination carries the limit/offset window parsed from a list request.
// Malformed or missing values fall back to the caller's defaults instead of
// failing the request.
type Pagination struct {
	Limit  int
	Offset int
}

func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	page := Pagination{
		Limit:  queryInt(r, "limit", defaultLimit),
		Offset: queryInt(r, "offset", 0),
	}
	if page.Limit <= 0 {
		page.Limit = defaultLimit
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return page
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
