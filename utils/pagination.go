package utils

import (
	"net/http"
	"strconv"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Meta contains metadata for responses (pagination, etc.)
type Meta struct {
	Page       int `json:"page,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
	Total      int `json:"total,omitempty"`
	Limit      int `json:"limit,omitempty"`
}

// Pagination holds the page window requested by a client
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads page and limit query parameters. Invalid values fall
// back to the first page and the default limit.
func ParsePagination(r *http.Request) Pagination {
	q := r.URL.Query()
	page, limit := 1, DefaultPageLimit

	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 && l <= MaxPageLimit {
		limit = l
	}
	return Pagination{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// Meta builds response metadata for total items
func (p Pagination) Meta(total int64) *Meta {
	totalPages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		totalPages++
	}
	return &Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      int(total),
		TotalPages: totalPages,
	}
}
