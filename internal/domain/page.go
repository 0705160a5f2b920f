package domain

import "math"

const (
	// DefaultPageSize is used when the caller does not supply a size.
	DefaultPageSize = 20
	// MaxPageSize caps the size to prevent runaway queries.
	MaxPageSize = 100
	// MaxPage is the largest accepted page number. Larger values fall back
	// to page 0, which keeps Offset far from overflowing.
	MaxPage = math.MaxInt32
)

// PageRequest carries page/size values from the HTTP layer to the repo layer.
// Page is 0-indexed.
type PageRequest struct {
	// Page is the current page number, starting at 0.
	Page int
	// Size is the maximum number of items to return.
	Size int
}

// NewPageRequest builds a PageRequest from optional HTTP query params.
// Nil pointers and out-of-range values fall back to sane defaults (page=0, size=20).
// The size is capped at MaxPageSize.
func NewPageRequest(page, size *int) PageRequest {
	p := PageRequest{Page: 0, Size: DefaultPageSize}
	if page != nil && *page >= 0 && *page <= MaxPage {
		p.Page = *page
	}
	if size != nil && *size >= 1 {
		p.Size = min(*size, MaxPageSize)
	}
	return p
}

// Offset returns the number of documents to skip.
func (p PageRequest) Offset() int64 {
	return int64(p.Page) * int64(p.Size)
}

// Page is a bounded slice of a result set plus the totals needed to navigate it.
type Page[T any] struct {
	Content       []T
	Request       PageRequest
	TotalElements int64
}

// NewPage builds a Page. A nil content slice is replaced with an empty one so
// it always serializes as a JSON array.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, Request: req, TotalElements: total}
}

// TotalPages returns the number of pages needed to hold TotalElements.
func (p Page[T]) TotalPages() int {
	if p.Request.Size <= 0 {
		return 1
	}
	return int((p.TotalElements + int64(p.Request.Size) - 1) / int64(p.Request.Size))
}

// First reports whether this is the first page.
func (p Page[T]) First() bool { return p.Request.Page == 0 }

// Last reports whether no page follows this one.
func (p Page[T]) Last() bool { return p.Request.Page+1 >= p.TotalPages() }

// Map projects every element of the page with fn, keeping the metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Content))
	for i, v := range p.Content {
		out[i] = fn(v)
	}
	return Page[U]{Content: out, Request: p.Request, TotalElements: p.TotalElements}
}
