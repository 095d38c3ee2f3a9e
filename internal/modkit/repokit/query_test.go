package repokit

import (
	"reflect"
	"testing"
)

func TestNewPage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		page, limit int
		want        Page
		offset      int
	}{
		{name: "defaults", want: Page{Page: 1, Limit: 20}, offset: 0},
		{name: "third page", page: 3, limit: 10, want: Page{Page: 3, Limit: 10}, offset: 20},
		{name: "negative page", page: -4, limit: 5, want: Page{Page: 1, Limit: 5}, offset: 0},
		{name: "limit clamped", page: 2, limit: 1000, want: Page{Page: 2, Limit: 100}, offset: 100},
		{name: "huge page", page: 461168601842738792, limit: 20, want: Page{Page: MaxPage, Limit: 20}, offset: (MaxPage - 1) * 20},
	}
	for _, tc := range cases {
		got := NewPage(tc.page, tc.limit, 20, 100)
		if got != tc.want {
			t.Fatalf("%s: NewPage = %+v, want %+v", tc.name, got, tc.want)
		}
		if got.Offset() != tc.offset {
			t.Fatalf("%s: offset = %d, want %d", tc.name, got.Offset(), tc.offset)
		}
	}
}

func TestWhere_BuildsPlaceholdersInOrder(t *testing.T) {
	t.Parallel()

	var w Where
	if w.SQL() != "" {
		t.Fatalf("empty where should render nothing, got %q", w.SQL())
	}

	w.And("contacted = " + w.Arg(true))
	p := w.Arg(Contains("ann"))
	w.And("(name ilike " + p + " or email ilike " + p + ")")

	if got, want := w.SQL(), " where contacted = $1 and (name ilike $2 or email ilike $2)"; got != want {
		t.Fatalf("SQL = %q, want %q", got, want)
	}
	if got, want := w.Args(), []any{true, "%ann%"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Args = %v, want %v", got, want)
	}
	if w.Next() != 3 {
		t.Fatalf("Next = %d, want 3", w.Next())
	}

	// callers append paging args without touching the builder
	args := append(w.Args(), 20, 0)
	if len(w.Args()) != 2 || len(args) != 4 {
		t.Fatalf("Args must return a copy")
	}
}

func TestContains_EscapesWildcards(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"ann":     "%ann%",
		"100%":    `%100\%%`,
		"a_b":     `%a\_b%`,
		`back\sl`: `%back\\sl%`,
	}
	for in, want := range cases {
		if got := Contains(in); got != want {
			t.Fatalf("Contains(%q) = %q, want %q", in, got, want)
		}
	}
}
