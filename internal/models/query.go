package models

import "time"

// FilterAll is the wildcard value accepted for status and category filters.
const FilterAll = "all"

// ListFilter narrows a scoped complaint listing. Zero values mean "no
// constraint"; Page and Limit are clamped by the query builder before use.
type ListFilter struct {
	Status      string
	Category    string
	Search      string
	Page        int
	Limit       int
	OldestFirst bool
	DateFrom    *time.Time
	DateTo      *time.Time
}

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
}
