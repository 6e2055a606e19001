package tableview

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
)

type person struct {
	ID    uint
	First string
	Last  string
	Email string
	Age   int
}

func personConfig() Config[person] {
	return Config[person]{
		Columns: []Column[person]{
			{Key: "first_name", Title: "First Name", Value: func(p person) string { return p.First }, Sortable: true},
			{Key: "last_name", Title: "Last Name", Value: func(p person) string { return p.Last }, Sortable: true},
			{Key: "email", Title: "Email", Value: func(p person) string { return p.Email }},
			{Key: "age", Title: "Age", Value: func(p person) string { return strconv.Itoa(p.Age) }, Sortable: true},
		},
		ID: func(p person) (string, bool) {
			if p.ID == 0 {
				return "", false
			}
			return strconv.FormatUint(uint64(p.ID), 10), true
		},
		SearchFields:       []string{"first_name", "email", "ghost"},
		DefaultSearchField: "email",
		NameField:          "first_name",
		FullName:           func(p person) string { return p.First + " " + p.Last },
	}
}

func testPeople() []person {
	return []person{
		{ID: 1, First: "Alice", Last: "Johnson", Email: "alice@example.com", Age: 30},
		{ID: 2, First: "Bob", Last: "Brown", Email: "bob@example.com", Age: 9},
		{ID: 3, First: "Carol", Last: "Johnson", Email: "carol@other.org", Age: 10},
		{ID: 4, First: "Dave", Last: "Alvarez", Email: "dave@example.com", Age: 45},
	}
}

func newPersonView(t *testing.T, records []person) *View[person] {
	t.Helper()
	v, err := NewClientView(personConfig(), records)
	if err != nil {
		t.Fatalf("NewClientView: %v", err)
	}
	return v
}

func emails(rows []person) []string {
	out := make([]string, len(rows))
	for i, p := range rows {
		out[i] = p.Email
	}
	return out
}

func TestNewClientView_ConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config[person])
	}{
		{"no columns", func(c *Config[person]) { c.Columns = nil }},
		{"no id accessor", func(c *Config[person]) { c.ID = nil }},
		{"no search fields", func(c *Config[person]) { c.SearchFields = nil }},
		{"default field outside whitelist", func(c *Config[person]) { c.DefaultSearchField = "age" }},
		{"name field without accessor", func(c *Config[person]) { c.FullName = nil }},
		{"page size outside options", func(c *Config[person]) { c.DefaultPageSize = 15 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := personConfig()
			tt.mutate(&cfg)
			if _, err := NewClientView(cfg, nil); err == nil {
				t.Error("expected config error, got nil")
			}
		})
	}
}

func TestSearch_EmptyQueryKeepsOrder(t *testing.T) {
	v := newPersonView(t, testPeople())

	v.SetQuery("")
	got := emails(v.Rows())
	want := []string{"alice@example.com", "bob@example.com", "carol@other.org", "dave@example.com"}
	if len(got) != len(want) {
		t.Fatalf("Rows() = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	v := newPersonView(t, testPeople())

	v.SetQuery("EXAMPLE.COM")
	if got := len(v.Rows()); got != 3 {
		t.Errorf("matched %d rows; want 3", got)
	}

	v.SetQuery("other")
	rows := v.Rows()
	if len(rows) != 1 || rows[0].First != "Carol" {
		t.Errorf("Rows() = %+v; want Carol only", rows)
	}
}

func TestSearch_FullNameConcatenation(t *testing.T) {
	v := newPersonView(t, testPeople())
	if err := v.SetSearchField("first_name"); err != nil {
		t.Fatalf("SetSearchField: %v", err)
	}

	// "alice j" only exists across the first/last boundary.
	v.SetQuery("alice j")
	rows := v.Rows()
	if len(rows) != 1 || rows[0].ID != 1 {
		t.Errorf("Rows() = %+v; want Alice Johnson", rows)
	}

	// Last name alone matches through the concatenation too.
	v.SetQuery("johnson")
	if got := len(v.Rows()); got != 2 {
		t.Errorf("matched %d rows; want 2", got)
	}
}

func TestSearch_UnknownFieldRejected(t *testing.T) {
	v := newPersonView(t, testPeople())
	if err := v.SetSearchField("age"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("SetSearchField(age) error = %v; want ErrUnknownField", err)
	}
	if v.SearchField() != "email" {
		t.Errorf("SearchField() = %q; rejected switch must not change it", v.SearchField())
	}
}

func TestSearch_WhitelistedFieldWithoutColumnMatchesNothing(t *testing.T) {
	v := newPersonView(t, testPeople())

	// "ghost" is whitelisted but resolves to no column.
	if err := v.SetSearchField("ghost"); err != nil {
		t.Fatalf("SetSearchField: %v", err)
	}
	v.SetQuery("alice")
	if got := len(v.Rows()); got != 0 {
		t.Errorf("matched %d rows; want 0", got)
	}
	// Empty query is still the identity.
	v.SetQuery("")
	if got := len(v.Rows()); got != 4 {
		t.Errorf("Rows() = %d; want all 4 with empty query", got)
	}
}

func TestSort_NumericAware(t *testing.T) {
	v := newPersonView(t, testPeople())
	if err := v.SetSort("age", false); err != nil {
		t.Fatalf("SetSort: %v", err)
	}
	rows := v.Rows()
	// 9 < 10 < 30 < 45 rather than "10" < "30" < "45" < "9".
	wantAges := []int{9, 10, 30, 45}
	for i, want := range wantAges {
		if rows[i].Age != want {
			t.Errorf("row %d age = %d; want %d", i, rows[i].Age, want)
		}
	}
}

func TestSort_DescendingAndClear(t *testing.T) {
	v := newPersonView(t, testPeople())
	if err := v.SetSort("first_name", true); err != nil {
		t.Fatalf("SetSort: %v", err)
	}
	if rows := v.Rows(); rows[0].First != "Dave" {
		t.Errorf("first row = %q; want Dave", rows[0].First)
	}

	v.ClearSort()
	if rows := v.Rows(); rows[0].First != "Alice" {
		t.Errorf("first row after ClearSort = %q; want original order", rows[0].First)
	}
}

func TestSort_StableOnTies(t *testing.T) {
	v := newPersonView(t, testPeople())
	if err := v.SetSort("last_name", false); err != nil {
		t.Fatalf("SetSort: %v", err)
	}
	rows := v.Rows()
	// Ascending last name puts the Johnsons after Alvarez and Brown;
	// Alice (id 1) precedes Carol (id 3) within the tie.
	if rows[2].ID != 1 || rows[3].ID != 3 {
		t.Errorf("tie order = %d,%d; want 1,3", rows[2].ID, rows[3].ID)
	}
}

func TestSort_RejectsUnknownAndUnsortable(t *testing.T) {
	v := newPersonView(t, testPeople())
	if err := v.SetSort("nope", false); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("SetSort(nope) error = %v; want ErrUnknownColumn", err)
	}
	if err := v.SetSort("email", false); err == nil {
		t.Error("SetSort(email) should fail, column is not sortable")
	}
}

func TestColumnVisibility(t *testing.T) {
	v := newPersonView(t, testPeople())

	if err := v.SetColumnVisible("email", false); err != nil {
		t.Fatalf("SetColumnVisible: %v", err)
	}
	cols := v.VisibleColumns()
	if len(cols) != 3 {
		t.Fatalf("VisibleColumns() = %d columns; want 3", len(cols))
	}
	for _, col := range cols {
		if col.Key == "email" {
			t.Error("email column still visible after hiding")
		}
	}

	if err := v.SetColumnVisible("email", true); err != nil {
		t.Fatalf("SetColumnVisible: %v", err)
	}
	if len(v.VisibleColumns()) != 4 {
		t.Error("email column not restored")
	}

	if err := v.SetColumnVisible("nope", false); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("SetColumnVisible(nope) error = %v; want ErrUnknownColumn", err)
	}
}

func manyPeople(n int) []person {
	people := make([]person, n)
	for i := range people {
		people[i] = person{
			ID:    uint(i + 1),
			First: fmt.Sprintf("User%02d", i+1),
			Last:  "Test",
			Email: fmt.Sprintf("user%02d@example.com", i+1),
			Age:   20 + i,
		}
	}
	return people
}
