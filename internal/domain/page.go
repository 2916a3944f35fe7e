package domain

import "math"

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PaginationParams carries a 1-based page and a page size.
type PaginationParams struct {
	Page    int
	PerPage int
}

// NewPaginationParams applies defaults to unset (zero) values and rejects
// values outside the accepted range.
func NewPaginationParams(page, perPage int) (PaginationParams, error) {
	p := PaginationParams{Page: DefaultPage, PerPage: DefaultPerPage}
	if page != 0 {
		if page < 1 {
			return PaginationParams{}, &ValidationError{Field: "page", Message: "page must be at least 1"}
		}
		p.Page = page
	}
	if perPage != 0 {
		if perPage < 1 || perPage > MaxPerPage {
			return PaginationParams{}, &ValidationError{Field: "per_page", Message: "per_page must be between 1 and 100"}
		}
		p.PerPage = perPage
	}
	return p, nil
}

// Offset returns the zero-based index of the first item on the page. It
// saturates at math.MaxInt, so a page far past the end stays past the end.
func (p PaginationParams) Offset() int {
	if p.Page <= 1 || p.PerPage <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}
