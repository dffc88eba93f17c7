package domain

import (
	"math"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit well inside int64.
	MaxPage = math.MaxInt32
)

// Pagination is a 1-based page request.
type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads page and limit query values. Missing, non-numeric
// or non-positive values fall back to the defaults; oversized values are
// clamped.
func ParsePagination(page, limit string) Pagination {
	return Pagination{
		Page:  positiveOr(page, DefaultPage),
		Limit: positiveOr(limit, DefaultLimit),
	}.Normalize()
}

func positiveOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Normalize replaces non-positive fields with defaults and clamps both to
// their maximums.
func (p Pagination) Normalize() Pagination {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	p.Page = min(p.Page, MaxPage)
	p.Limit = min(p.Limit, MaxLimit)
	return p
}

func (p Pagination) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Pages returns ceil(total/limit).
func (p Pagination) Pages(total int64) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return int((total + limit - 1) / limit)
}

// Page is one page of results.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
	Pages int
}

// NewPage assembles a page for the given request and total count.
func NewPage[T any](items []T, total int64, p Pagination) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: p.Page, Limit: p.Limit, Pages: p.Pages(total)}
}
