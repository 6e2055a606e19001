package tableview

// ToggleRow flips the selection of the i-th visible row of the current page.
// Rows with an identifier are tracked by it; rows without one fall back to
// their position in the record set.
func (v *View[T]) ToggleRow(i int) {
	refs := v.pageRefs()
	if i < 0 || i >= len(refs) {
		return
	}
	key := v.keyOf(refs[i].record, refs[i].index)
	if v.selected[key] {
		delete(v.selected, key)
	} else {
		v.selected[key] = true
	}
}

// RowSelected reports whether the i-th visible row of the current page is
// selected.
func (v *View[T]) RowSelected(i int) bool {
	refs := v.pageRefs()
	if i < 0 || i >= len(refs) {
		return false
	}
	return v.selected[v.keyOf(refs[i].record, refs[i].index)]
}

// AllVisibleSelected reports whether every visible row is selected. It is
// never true while any visible row remains unselected, and never true with
// no visible rows at all.
func (v *View[T]) AllVisibleSelected() bool {
	refs := v.visibleRefs()
	if len(refs) == 0 {
		return false
	}
	for _, ref := range refs {
		if !v.selected[v.keyOf(ref.record, ref.index)] {
			return false
		}
	}
	return true
}

// ToggleAll selects every visible row, or deselects them all when every
// visible row is already selected. Selections of rows hidden by the current
// filter are left alone.
func (v *View[T]) ToggleAll() {
	refs := v.visibleRefs()
	if v.AllVisibleSelected() {
		for _, ref := range refs {
			delete(v.selected, v.keyOf(ref.record, ref.index))
		}
		return
	}
	for _, ref := range refs {
		v.selected[v.keyOf(ref.record, ref.index)] = true
	}
}

// SelectedCount returns the number of selected rows.
func (v *View[T]) SelectedCount() int { return len(v.selected) }

// Selected returns the original records of the selected rows, in record-set
// order. The filter does not narrow the result; a row selected before a
// search stays selected behind it.
func (v *View[T]) Selected() []T {
	var out []T
	for i, rec := range v.records {
		if v.selected[v.keyOf(rec, i)] {
			out = append(out, rec)
		}
	}
	return out
}

// ResetSelection drops every selection.
func (v *View[T]) ResetSelection() {
	v.selected = make(map[string]bool)
}

// pruneSelection drops selections whose key no longer resolves to a record
// after the record set changed.
func (v *View[T]) pruneSelection() {
	live := make(map[string]bool, len(v.records))
	for i, rec := range v.records {
		live[v.keyOf(rec, i)] = true
	}
	for key := range v.selected {
		if !live[key] {
			delete(v.selected, key)
		}
	}
}

// DeleteSelected runs the bulk-delete flow: it refuses an empty selection,
// asks confirm with the selected originals, and hands them to handler upon
// approval. The selection is reset after the handler runs whether or not it
// succeeded, so a failed deletion never leaves rows silently marked for the
// next attempt.
func (v *View[T]) DeleteSelected(confirm func([]T) bool, handler func([]T) error) error {
	sel := v.Selected()
	if len(sel) == 0 {
		return ErrNoSelection
	}
	if confirm != nil && !confirm(sel) {
		return ErrNotConfirmed
	}
	err := handler(sel)
	v.ResetSelection()
	return err
}
