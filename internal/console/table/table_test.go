package table

import (
	"strings"
	"testing"

	"adminconsole/internal/query"
)

type row struct {
	ID   int
	Name string
}

var testTable = Table[row]{
	Columns: []Column[row]{
		{Title: "ID", Cell: func(r row) string { return string(rune('0' + r.ID)) }},
		{Title: "Name", Cell: func(r row) string { return r.Name }},
	},
}

func TestFooterWindows(t *testing.T) {
	cases := []struct {
		total      int64
		page       int
		perPage    int
		rowsOnPage int
		want       string
	}{
		{25, 1, 10, 10, "Showing 1 to 10 of 25 results"},
		{25, 2, 10, 10, "Showing 11 to 20 of 25 results"},
		{25, 3, 10, 5, "Showing 21 to 25 of 25 results"},
		{3, 1, 10, 3, "Showing 1 to 3 of 3 results"},
		{0, 1, 10, 0, "Showing 0 results"},
	}
	for _, tc := range cases {
		p := query.NewPagination(tc.total, tc.page, tc.perPage)
		if got := Footer(p, tc.rowsOnPage); got != tc.want {
			t.Errorf("Footer(total=%d page=%d): got %q, want %q", tc.total, tc.page, got, tc.want)
		}
	}
}

func TestRenderEmptyShowsPlaceholder(t *testing.T) {
	out := testTable.Render(nil, query.NewPagination(0, 1, 10))
	if !strings.Contains(out, "No results.") {
		t.Fatalf("empty table should show a placeholder:\n%s", out)
	}
	if !strings.Contains(out, "Showing 0 results") {
		t.Fatalf("footer missing:\n%s", out)
	}
}

func TestRenderIncludesHeadersRowsAndPager(t *testing.T) {
	rows := []row{{1, "alpha"}, {2, "beta"}}
	out := testTable.Render(rows, query.NewPagination(2, 1, 10))

	for _, want := range []string{"ID", "Name", "alpha", "beta", "Showing 1 to 2 of 2 results", "Page 1 of 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderActionsColumn(t *testing.T) {
	tbl := testTable
	tbl.Actions = []Action[row]{
		{Label: "edit"},
		{Label: "delete", Enabled: func(r row) bool { return r.ID != 1 }},
	}
	out := tbl.Render([]row{{1, "alpha"}}, query.NewPagination(1, 1, 10))
	if !strings.Contains(out, "Actions") || !strings.Contains(out, "edit") {
		t.Fatalf("actions column missing:\n%s", out)
	}
}
