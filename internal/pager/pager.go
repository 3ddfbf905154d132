// Package pager holds page-number and page-size bookkeeping for count-based
// pagination.
package pager

import "fmt"

// DefaultSize is the page size used when none is configured.
const DefaultSize = 50

// Page tracks the current page and the totals reported by the last count.
// Number is 1-based and TotalPages is never below 1.
type Page struct {
	Number       int
	Size         int
	TotalRecords int
	TotalPages   int
}

// New returns the first page with the given size; non-positive sizes fall
// back to DefaultSize.
func New(size int) Page {
	if size <= 0 {
		size = DefaultSize
	}
	return Page{Number: 1, Size: size, TotalPages: 1}
}

// Validate checks request parameters coming from flags or callers.
func (p Page) Validate() error {
	if p.Number < 1 {
		return fmt.Errorf("--page must be at least 1, got %d", p.Number)
	}
	if p.Size < 1 {
		return fmt.Errorf("--page-size must be at least 1, got %d", p.Size)
	}
	return nil
}

// TotalPagesFor returns max(1, ceil(total/size)).
func TotalPagesFor(total, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Offset is the number of records preceding the current page.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// SetTotal records a count result and recomputes TotalPages.
func (p *Page) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.TotalRecords = total
	p.TotalPages = TotalPagesFor(total, p.Size)
}

// ClearTotals resets the totals to "nothing found" without touching Number.
func (p *Page) ClearTotals() {
	p.TotalRecords = 0
	p.TotalPages = 1
}

// Reset returns to page 1 and clears the totals.
func (p *Page) Reset() {
	p.Number = 1
	p.ClearTotals()
}

// IsFirst reports whether there is no previous page.
func (p Page) IsFirst() bool { return p.Number <= 1 }

// IsLast reports whether there is no next page.
func (p Page) IsLast() bool { return p.Number >= p.TotalPages }

// Prev moves back one page. It returns false, leaving p untouched, on the
// first page.
func (p *Page) Prev() bool {
	if p.IsFirst() {
		return false
	}
	p.Number--
	return true
}

// Next moves forward one page. It returns false, leaving p untouched, on the
// last page.
func (p *Page) Next() bool {
	if p.IsLast() {
		return false
	}
	p.Number++
	return true
}

// Clamp pulls Number back into [1, TotalPages] and reports whether it moved.
func (p *Page) Clamp() bool {
	switch {
	case p.Number < 1:
		p.Number = 1
		return true
	case p.Number > p.TotalPages:
		p.Number = p.TotalPages
		return true
	default:
		return false
	}
}

// Window returns the slice of items covered by the page identified by number
// and size. Out-of-range pages yield an empty, non-nil slice.
func Window[T any](items []T, number, size int) []T {
	if size <= 0 || number < 1 {
		return []T{}
	}
	start := (number - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
