package utils

import (
	"net/url"
	"strconv"

	"inventory-system/pkg/types"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ParsePaginationFromQuery разбирает limit/offset/page. page имеет приоритет
// только если offset не задан.
func ParsePaginationFromQuery(query url.Values) types.Filter {
	filter := types.Filter{
		Limit:          defaultLimit,
		Offset:         0,
		Page:           1,
		WithPagination: true,
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > maxLimit {
				l = maxLimit
			}
			filter.Limit = l
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
			if filter.Limit > 0 {
				filter.Page = (o / filter.Limit) + 1
			}
		}
	}
	if pageStr := query.Get("page"); pageStr != "" && filter.Offset == 0 {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filter.Page = p
			filter.Offset = (p - 1) * filter.Limit
		}
	}

	return filter
}
