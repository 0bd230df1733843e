package datatable

// Pagination is the caller-owned page window. The table never changes
// CurrentPage on its own unless AutoClampPage is set; GoToPage asks the
// owner through OnPageChange and the owner echoes the new page back with
// SetPagination.
type Pagination struct {
	PageSize    int
	CurrentPage int
	// OnPageChange is called with the requested page. When nil the table
	// moves to the page itself.
	OnPageChange func(page int)
}

// PageInfo summarizes the page window over the filtered rows.
type PageInfo struct {
	CurrentPage int
	PageSize    int
	TotalPages  int
	TotalRows   int
	// First and Last are 1-based positions of the displayed rows within the
	// filtered set; both are 0 when the page is empty.
	First   int
	Last    int
	HasPrev bool
	HasNext bool
}

func validatePagination(p Pagination) error {
	if p.PageSize <= 0 {
		return configErr(ErrInvalidPageSize, "")
	}
	if p.CurrentPage < 1 {
		return configErr(ErrInvalidPage, "")
	}
	return nil
}

// TotalPages returns ceil(n / size).
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns the slice [(page-1)*size, page*size) of items, or nil
// when the page lies outside the items.
func Paginate[E any](items []E, page, size int) []E {
	if size <= 0 || page < 1 {
		return nil
	}
	lo := (page - 1) * size
	if lo >= len(items) {
		return nil
	}
	return items[lo:min(lo+size, len(items))]
}

// Pagination returns a copy of the page window, or nil when the table is
// not paginated.
func (t *Table[T]) Pagination() *Pagination {
	if t.pagination == nil {
		return nil
	}
	p := *t.pagination
	return &p
}

// SetPagination replaces the page window; nil disables pagination.
func (t *Table[T]) SetPagination(p *Pagination) error {
	if p == nil {
		t.pagination = nil
		return nil
	}
	if err := validatePagination(*p); err != nil {
		return err
	}
	cp := *p
	t.pagination = &cp
	t.clampPage()
	return nil
}

// GoToPage requests a page change. The caller decides whether to apply it.
func (t *Table[T]) GoToPage(page int) error {
	if t.pagination == nil {
		return ErrNoPagination
	}
	if page < 1 {
		return configErr(ErrInvalidPage, "")
	}
	if t.pagination.OnPageChange != nil {
		t.pagination.OnPageChange(page)
		return nil
	}
	t.pagination.CurrentPage = page
	t.clampPage()
	return nil
}

// NextPage requests the following page if there is one.
func (t *Table[T]) NextPage() error {
	info := t.PageInfo()
	if !info.HasNext {
		return nil
	}
	return t.GoToPage(info.CurrentPage + 1)
}

// PrevPage requests the preceding page if there is one.
func (t *Table[T]) PrevPage() error {
	info := t.PageInfo()
	if !info.HasPrev {
		return nil
	}
	return t.GoToPage(info.CurrentPage - 1)
}

// PageInfo describes the current window. Without pagination everything is
// one page.
func (t *Table[T]) PageInfo() PageInfo {
	n := len(t.derived)
	if t.pagination == nil {
		info := PageInfo{CurrentPage: 1, PageSize: n, TotalRows: n}
		if n > 0 {
			info.TotalPages, info.First, info.Last = 1, 1, n
		}
		return info
	}
	p := t.pagination
	info := PageInfo{
		CurrentPage: p.CurrentPage,
		PageSize:    p.PageSize,
		TotalPages:  TotalPages(n, p.PageSize),
		TotalRows:   n,
	}
	lo, hi := t.pageBounds()
	if hi > lo {
		info.First, info.Last = lo+1, hi
	}
	info.HasPrev = p.CurrentPage > 1
	info.HasNext = p.CurrentPage < info.TotalPages
	return info
}

// pageBounds returns the derived-index range of the current page.
func (t *Table[T]) pageBounds() (int, int) {
	n := len(t.derived)
	if t.pagination == nil {
		return 0, n
	}
	lo := (t.pagination.CurrentPage - 1) * t.pagination.PageSize
	if lo >= n {
		return n, n
	}
	return lo, min(lo+t.pagination.PageSize, n)
}

// clampPage pulls an out-of-range page back to the last page when
// AutoClampPage is set. Without it a stale page simply shows no rows.
func (t *Table[T]) clampPage() {
	if !t.autoClamp || t.pagination == nil {
		return
	}
	last := max(TotalPages(len(t.derived), t.pagination.PageSize), 1)
	if t.pagination.CurrentPage <= last {
		return
	}
	t.pagination.CurrentPage = last
	if t.pagination.OnPageChange != nil {
		t.pagination.OnPageChange(last)
	}
}
