package types

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// SortKey selects the ordering of a recipe listing.
type SortKey string

const (
	SortNone   SortKey = ""
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
	SortTitle  SortKey = "title"
)

// ParseSortKey maps a query value onto a SortKey. Unknown values mean no
// explicit ordering.
func ParseSortKey(v string) SortKey {
	switch SortKey(v) {
	case SortNewest, SortOldest, SortTitle:
		return SortKey(v)
	}
	return SortNone
}

// ListQuery carries the filter, sort and page parameters shared by every
// recipe listing.
type ListQuery struct {
	Title    string
	HasTitle bool
	Sort     SortKey
	Page     int
	Limit    int
}

// NewListQuery builds a ListQuery from raw query-string values. Missing or
// non-numeric page/limit take the defaults; non-positive values clamp to 1.
func NewListQuery(title string, hasTitle bool, sortBy, page, limit string) ListQuery {
	q := ListQuery{
		Title:    title,
		HasTitle: hasTitle,
		Sort:     ParseSortKey(sortBy),
		Page:     parsePositive(page, DefaultPage),
		Limit:    parsePositive(limit, DefaultLimit),
	}
	return q.Normalize()
}

// Normalize clamps Page and Limit to at least 1.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 1
	}
	return q
}

// Offset is the number of rows skipped before the current page. It saturates
// at math.MaxInt so pages past any real table come back empty.
func (q ListQuery) Offset() int {
	q = q.Normalize()
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

func parsePositive(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// TotalPages is ceil(total/limit), never less than 1.
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		limit = 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}
	return pages
}
