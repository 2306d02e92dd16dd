package domain

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageRequest is a zero-based page index plus a page size.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps a page request to sane bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

// Offset returns the row offset for the request.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one page of a listing plus the totals for the whole result set.
type Page[T any] struct {
	Page          int
	Size          int
	TotalPages    int
	TotalElements int64
	Content       []T
}

// NewPage derives the page counts from the request and total element count.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Page:          req.Page,
		Size:          req.Size,
		TotalPages:    totalPages,
		TotalElements: total,
		Content:       content,
	}
}
