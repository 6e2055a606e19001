package tableview

import (
	"fmt"
	"slices"
)

// Page returns the current 1-based page number.
func (v *View[T]) Page() int {
	if v.mode == modeServer {
		return v.info.Page
	}
	return v.page
}

// PageSize returns the active page size.
func (v *View[T]) PageSize() int {
	if v.mode == modeServer {
		return v.info.PageSize
	}
	return v.pageSize
}

// TotalPages returns the number of pages; never less than 1, so an empty
// result still shows "Page 1 of 1".
func (v *View[T]) TotalPages() int {
	if v.mode == modeServer {
		if v.info.TotalPages < 1 {
			return 1
		}
		return v.info.TotalPages
	}
	total := (v.FilteredCount() + v.pageSize - 1) / v.pageSize
	if total < 1 {
		return 1
	}
	return total
}

// CanPrev reports whether a previous page exists.
func (v *View[T]) CanPrev() bool { return v.Page() > 1 }

// CanNext reports whether a next page exists.
func (v *View[T]) CanNext() bool { return v.Page() < v.TotalPages() }

// SetPage moves to the given page, clamped to the valid range. Server-mode
// views delegate to the OnPageChange callback instead of moving locally.
func (v *View[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if v.mode == modeServer {
		if v.onPageChange != nil {
			v.onPageChange(page)
		}
		return
	}
	v.page = page
	v.clampPage()
}

// NextPage advances one page when possible.
func (v *View[T]) NextPage() {
	if v.CanNext() {
		v.SetPage(v.Page() + 1)
	}
}

// PrevPage steps back one page when possible.
func (v *View[T]) PrevPage() {
	if v.CanPrev() {
		v.SetPage(v.Page() - 1)
	}
}

// SetPageSize switches to one of the fixed page-size options and returns to
// the first page. Server-mode views delegate to OnPageSizeChange; the
// backend responds with a fresh first page via SetServerPage.
func (v *View[T]) SetPageSize(size int) error {
	if !slices.Contains(PageSizeOptions, size) {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	if v.mode == modeServer {
		if v.onPageSizeChange != nil {
			v.onPageSizeChange(size)
		}
		return nil
	}
	v.pageSize = size
	v.page = 1
	return nil
}

// Label renders the pagination caption, e.g. "Page 2 of 5 (42 total)".
func (v *View[T]) Label() string {
	return fmt.Sprintf("Page %d of %d (%d total)", v.Page(), v.TotalPages(), v.FilteredCount())
}

// pageRefs returns the refs of the current page. Server views hold exactly
// one page and never slice it.
func (v *View[T]) pageRefs() []rowRef[T] {
	refs := v.visibleRefs()
	if v.mode == modeServer {
		return refs
	}
	start := (v.page - 1) * v.pageSize
	if start >= len(refs) {
		return nil
	}
	end := min(start+v.pageSize, len(refs))
	return refs[start:end]
}

// clampPage keeps the page within [1, TotalPages] after the filtered set or
// the page size shrinks.
func (v *View[T]) clampPage() {
	if v.page < 1 {
		v.page = 1
	}
	if total := v.TotalPages(); v.page > total {
		v.page = total
	}
}
