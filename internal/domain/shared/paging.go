package shared

import "sort"

const (
	// DefaultPageSize is used when the caller does not specify a page size.
	DefaultPageSize = 10

	// MaxPageSize caps the page size to keep responses bounded.
	MaxPageSize = 100
)

// Paging carries the caller's pagination request. PageIndex is zero-based.
type Paging struct {
	PageIndex int
	PageSize  int
}

// Normalize clamps the paging parameters to valid values.
func (p Paging) Normalize() Paging {
	if p.PageIndex < 0 {
		p.PageIndex = 0
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Page is one deterministic slice of a sorted sequence.
type Page[T any] struct {
	Items      []T
	PageIndex  int
	PageSize   int
	TotalCount int
	TotalPages int
	IsLast     bool
}

// PageFrom sorts items with the given comparator and slices out the requested
// page. The sort is stable, so the result is deterministic for a fixed input
// sequence and comparator. The input slice is not modified.
func PageFrom[T any](items []T, less func(a, b T) bool, p Paging) Page[T] {
	p = p.Normalize()

	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	total := len(sorted)
	totalPages := (total + p.PageSize - 1) / p.PageSize

	start := p.PageIndex * p.PageSize
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      sorted[start:end],
		PageIndex:  p.PageIndex,
		PageSize:   p.PageSize,
		TotalCount: total,
		TotalPages: totalPages,
		IsLast:     p.PageIndex >= totalPages-1,
	}
}

// MapPage converts a page of T into a page of R, preserving the metadata.
// Used by the DTO layer to render domain pages to wire format.
func MapPage[T, R any](page Page[T], fn func(T) R) Page[R] {
	items := make([]R, len(page.Items))
	for i, it := range page.Items {
		items[i] = fn(it)
	}
	return Page[R]{
		Items:      items,
		PageIndex:  page.PageIndex,
		PageSize:   page.PageSize,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		IsLast:     page.IsLast,
	}
}
