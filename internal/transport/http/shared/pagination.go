package shared

import (
	"net/http"
	"strconv"
	"strings"

	"hrportal/internal/platform/listing"
)

// ParseListParams reads page, limit, search, sortBy and sortOrder from the
// query string. Malformed numbers fall back to the defaults.
func ParseListParams(r *http.Request) listing.Params {
	query := r.URL.Query()
	params := listing.Params{
		Search:    query.Get("search"),
		SortBy:    strings.TrimSpace(query.Get("sortBy")),
		SortOrder: query.Get("sortOrder"),
	}
	if raw := query.Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			params.Page = v
		}
	}
	if raw := query.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			params.Limit = v
		}
	}
	return params.Normalize()
}

// QueryBool reports whether key is set to a true-like value.
func QueryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}
