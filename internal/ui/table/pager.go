package table

import "github.com/motomind/motomind/internal/datatable"

// Pager owns the page window of a table. The table never moves between
// pages itself: it reports the requested page through OnPageChange, and
// Sync echoes it back with SetPagination.
type Pager struct {
	size    int
	page    int
	pending int
}

// NewPager starts at page (1-based) with size rows per page.
func NewPager(size, page int) *Pager {
	return &Pager{size: size, page: page}
}

// Page returns the current page.
func (p *Pager) Page() int {
	return p.page
}

// Size returns the rows per page.
func (p *Pager) Size() int {
	return p.size
}

// Pagination returns the window to hand to the table.
func (p *Pager) Pagination() *datatable.Pagination {
	return &datatable.Pagination{
		PageSize:     p.size,
		CurrentPage:  p.page,
		OnPageChange: p.request,
	}
}

func (p *Pager) request(page int) {
	p.pending = page
}

// Sync applies a pending page request to tbl and reports whether the page
// changed.
func Sync[T any](p *Pager, tbl *datatable.Table[T]) (bool, error) {
	if p == nil || p.pending == 0 {
		return false, nil
	}
	page := p.pending
	p.pending = 0
	if page == p.page {
		return false, nil
	}
	p.page = page
	return true, tbl.SetPagination(p.Pagination())
}
