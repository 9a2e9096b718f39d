package repository

import "gorm.io/gorm"

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// Page selects one slice of an ordered result set.
type Page struct {
	Page  int
	Limit int
}

// NewPage fills in defaults for missing or non-positive values.
func NewPage(page, limit int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Page) apply(q *gorm.DB) *gorm.DB {
	return q.Offset(p.Offset()).Limit(p.Limit)
}

// Paginated is the list envelope returned by every paged read.
type Paginated[T any] struct {
	TotalItems  int64 `json:"totalItems"`
	Data        []T   `json:"data"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

func NewPaginated[T any](data []T, total int64, p Page) Paginated[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Paginated[T]{
		TotalItems:  total,
		Data:        data,
		TotalPages:  pages,
		CurrentPage: p.Page,
	}
}

// MapPaginated converts the rows of a page while keeping its counters.
func MapPaginated[T, U any](in Paginated[T], fn func(T) U) Paginated[U] {
	out := make([]U, 0, len(in.Data))
	for _, row := range in.Data {
		out = append(out, fn(row))
	}
	return Paginated[U]{
		TotalItems:  in.TotalItems,
		Data:        out,
		TotalPages:  in.TotalPages,
		CurrentPage: in.CurrentPage,
	}
}
