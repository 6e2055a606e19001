package tableview

import "strings"

// filterRefs applies the active search to a client view's rows. An empty
// query keeps every row in its original order. Matching is a
// case-insensitive substring test against the active field's cell value; for
// the configured name field the full-name concatenation is matched as well,
// so a "first last" query still hits records storing the parts separately.
// A field that resolves to no column matches nothing.
func (v *View[T]) filterRefs(refs []rowRef[T]) []rowRef[T] {
	query := strings.ToLower(strings.TrimSpace(v.query))
	if query == "" {
		return refs
	}

	col := v.columnByKey(v.searchField)

	out := refs[:0]
	for _, ref := range refs {
		if v.matches(col, ref.record, query) {
			out = append(out, ref)
		}
	}
	return out
}

func (v *View[T]) matches(col *Column[T], rec T, query string) bool {
	if col == nil {
		return false
	}
	if strings.Contains(strings.ToLower(col.Value(rec)), query) {
		return true
	}
	if v.cfg.NameField != "" && col.Key == v.cfg.NameField {
		return strings.Contains(strings.ToLower(v.cfg.FullName(rec)), query)
	}
	return false
}
