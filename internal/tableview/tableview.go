// Package tableview implements a UI-agnostic tabular view model: search,
// sort, column visibility, pagination, and row selection over a homogeneous
// record slice. It backs both the admin CLI tables and tests that exercise
// the dashboard's list behavior without a renderer.
package tableview

import (
	"errors"
	"fmt"
	"slices"
)

// Fixed page-size choices offered by every view.
var PageSizeOptions = []int{10, 20, 30, 40, 50}

var (
	ErrNoSelection     = errors.New("no rows selected")
	ErrNotConfirmed    = errors.New("bulk action not confirmed")
	ErrUnknownField    = errors.New("unknown search field")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrInvalidPageSize = errors.New("invalid page size")
)

// Column describes one renderable column: a stable key, a display title, a
// string accessor for the cell value, and whether the column may be sorted.
type Column[T any] struct {
	Key      string
	Title    string
	Value    func(T) string
	Sortable bool
}

// Config declares the static shape of a view. Views never mutate it.
type Config[T any] struct {
	Columns []Column[T]

	// ID returns a record's stable identifier. ok=false marks a row that is
	// not individually addressable; selection then falls back to the row's
	// position in the record set.
	ID func(T) (string, bool)

	// SearchFields is the whitelist of searchable column keys.
	// DefaultSearchField must be a member of it.
	SearchFields       []string
	DefaultSearchField string

	// NameField, when set, names the search field whose queries also match
	// the full-name concatenation produced by FullName. This lets a
	// "first last" query match records that store the two parts separately.
	NameField string
	FullName  func(T) string

	// DefaultPageSize must be one of PageSizeOptions; zero means 10.
	DefaultPageSize int
}

type viewMode int

const (
	modeClient viewMode = iota
	modeServer
)

// PageInfo is the server-supplied pagination metadata for server-mode views.
type PageInfo struct {
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// View is the tabular view model. A view is constructed in exactly one of
// two modes and stays in it for its lifetime:
//
//   - client mode holds the full record slice and filters, sorts, and
//     paginates locally;
//   - server mode holds a single page plus PageInfo and delegates page and
//     page-size changes to callbacks, never slicing or filtering locally.
//
// View is not safe for concurrent use; each view is owned by a single caller.
type View[T any] struct {
	cfg  Config[T]
	mode viewMode

	records []T

	searchField string
	query       string

	sortKey  string
	sortDesc bool

	hidden map[string]bool

	// client mode
	page     int
	pageSize int

	// server mode
	info             PageInfo
	onPageChange     func(page int)
	onPageSizeChange func(size int)

	selected map[string]bool
}

func validateConfig[T any](cfg Config[T]) error {
	if len(cfg.Columns) == 0 {
		return errors.New("tableview: at least one column is required")
	}
	for _, col := range cfg.Columns {
		if col.Key == "" || col.Value == nil {
			return fmt.Errorf("tableview: column %q needs a key and a value accessor", col.Key)
		}
	}
	if cfg.ID == nil {
		return errors.New("tableview: an ID accessor is required")
	}
	if len(cfg.SearchFields) == 0 {
		return errors.New("tableview: at least one search field is required")
	}
	if !slices.Contains(cfg.SearchFields, cfg.DefaultSearchField) {
		return fmt.Errorf("tableview: default search field %q is not in the whitelist", cfg.DefaultSearchField)
	}
	if cfg.NameField != "" && cfg.FullName == nil {
		return errors.New("tableview: NameField requires a FullName accessor")
	}
	if cfg.DefaultPageSize != 0 && !slices.Contains(PageSizeOptions, cfg.DefaultPageSize) {
		return fmt.Errorf("tableview: %w: %d", ErrInvalidPageSize, cfg.DefaultPageSize)
	}
	return nil
}

func newView[T any](cfg Config[T], mode viewMode) (*View[T], error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	pageSize := cfg.DefaultPageSize
	if pageSize == 0 {
		pageSize = PageSizeOptions[0]
	}
	return &View[T]{
		cfg:         cfg,
		mode:        mode,
		searchField: cfg.DefaultSearchField,
		hidden:      make(map[string]bool),
		page:        1,
		pageSize:    pageSize,
		selected:    make(map[string]bool),
	}, nil
}

// NewClientView constructs a client-mode view over the full record slice.
func NewClientView[T any](cfg Config[T], records []T) (*View[T], error) {
	v, err := newView(cfg, modeClient)
	if err != nil {
		return nil, err
	}
	v.records = slices.Clone(records)
	return v, nil
}

// NewServerView constructs a server-mode view over one page of records. The
// callbacks receive the requested page number and page size; the caller
// fetches and then supplies the fresh page via SetServerPage.
func NewServerView[T any](cfg Config[T], page []T, info PageInfo, onPageChange func(page int), onPageSizeChange func(size int)) (*View[T], error) {
	v, err := newView(cfg, modeServer)
	if err != nil {
		return nil, err
	}
	v.records = slices.Clone(page)
	v.info = info
	v.onPageChange = onPageChange
	v.onPageSizeChange = onPageSizeChange
	return v, nil
}

// ServerMode reports whether the view delegates pagination to the backend.
func (v *View[T]) ServerMode() bool { return v.mode == modeServer }

// SetRecords replaces the record set of a client-mode view, or the current
// page of a server-mode view. Selections whose key is no longer present in
// the new set are pruned; surviving selections are kept.
func (v *View[T]) SetRecords(records []T) {
	v.records = slices.Clone(records)
	v.pruneSelection()
	if v.mode == modeClient {
		v.clampPage()
	}
}

// SetServerPage replaces the current page and its metadata on a server-mode
// view. It is a no-op on client-mode views.
func (v *View[T]) SetServerPage(page []T, info PageInfo) {
	if v.mode != modeServer {
		return
	}
	v.records = slices.Clone(page)
	v.info = info
	v.pruneSelection()
}

// SetQuery updates the free-text search query. In client mode the filtered
// row set changes immediately; in server mode the query is only recorded for
// the caller to forward to the backend.
func (v *View[T]) SetQuery(query string) {
	v.query = query
	if v.mode == modeClient {
		v.page = 1
		v.clampPage()
	}
}

// Query returns the current search query.
func (v *View[T]) Query() string { return v.query }

// SetSearchField switches the active search field. Fields outside the
// configured whitelist are rejected. The query string is deliberately kept.
func (v *View[T]) SetSearchField(field string) error {
	if !slices.Contains(v.cfg.SearchFields, field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	v.searchField = field
	if v.mode == modeClient {
		v.page = 1
		v.clampPage()
	}
	return nil
}

// SearchField returns the active search field.
func (v *View[T]) SearchField() string { return v.searchField }

// SetColumnVisible shows or hides a column by key.
func (v *View[T]) SetColumnVisible(key string, visible bool) error {
	if v.columnByKey(key) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	if visible {
		delete(v.hidden, key)
	} else {
		v.hidden[key] = true
	}
	return nil
}

// VisibleColumns returns the columns currently shown, in configured order.
func (v *View[T]) VisibleColumns() []Column[T] {
	cols := make([]Column[T], 0, len(v.cfg.Columns))
	for _, col := range v.cfg.Columns {
		if !v.hidden[col.Key] {
			cols = append(cols, col)
		}
	}
	return cols
}

func (v *View[T]) columnByKey(key string) *Column[T] {
	for i := range v.cfg.Columns {
		if v.cfg.Columns[i].Key == key {
			return &v.cfg.Columns[i]
		}
	}
	return nil
}

// rowRef ties a visible row to its position in the underlying record slice,
// which is what positional selection keys are based on.
type rowRef[T any] struct {
	record T
	index  int
}

// visibleRefs computes the post-filter, post-sort row set of a client view.
// Server views pass their page through untouched.
func (v *View[T]) visibleRefs() []rowRef[T] {
	refs := make([]rowRef[T], 0, len(v.records))
	for i, rec := range v.records {
		refs = append(refs, rowRef[T]{record: rec, index: i})
	}

	if v.mode == modeServer {
		return refs
	}

	refs = v.filterRefs(refs)
	v.sortRefs(refs)
	return refs
}

// Rows returns the records of the current page, after filtering and sorting
// in client mode, or the server-supplied page verbatim in server mode.
func (v *View[T]) Rows() []T {
	refs := v.pageRefs()
	rows := make([]T, len(refs))
	for i, ref := range refs {
		rows[i] = ref.record
	}
	return rows
}

// FilteredCount returns the number of records passing the current filter in
// client mode, or the server-reported total in server mode.
func (v *View[T]) FilteredCount() int {
	if v.mode == modeServer {
		return int(v.info.Total)
	}
	return len(v.visibleRefs())
}

func (v *View[T]) keyOf(rec T, index int) string {
	if id, ok := v.cfg.ID(rec); ok {
		return "id:" + id
	}
	return fmt.Sprintf("pos:%d", index)
}
