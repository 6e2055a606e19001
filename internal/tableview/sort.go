package tableview

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SetSort orders client-mode rows by the given sortable column. On
// server-mode views the key is only recorded for the caller to forward; the
// page is never reordered locally.
func (v *View[T]) SetSort(key string, desc bool) error {
	col := v.columnByKey(key)
	if col == nil {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	if !col.Sortable {
		return fmt.Errorf("column %q is not sortable", key)
	}
	v.sortKey = key
	v.sortDesc = desc
	return nil
}

// ClearSort restores the original record order.
func (v *View[T]) ClearSort() {
	v.sortKey = ""
	v.sortDesc = false
}

// SortKey returns the active sort column key and direction; an empty key
// means unsorted.
func (v *View[T]) SortKey() (key string, desc bool) {
	return v.sortKey, v.sortDesc
}

// sortRefs stably sorts the rows by the active sort column. Equal cells keep
// their relative order, so re-sorting never shuffles ties.
func (v *View[T]) sortRefs(refs []rowRef[T]) {
	if v.sortKey == "" {
		return
	}
	col := v.columnByKey(v.sortKey)
	if col == nil {
		return
	}
	sort.SliceStable(refs, func(i, j int) bool {
		a, b := col.Value(refs[i].record), col.Value(refs[j].record)
		if v.sortDesc {
			return compareCells(b, a) < 0
		}
		return compareCells(a, b) < 0
	})
}

// compareCells orders two cell values numerically when both parse as
// numbers, so "9" sorts before "10", and falls back to a case-insensitive
// string compare otherwise.
func compareCells(a, b string) int {
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
