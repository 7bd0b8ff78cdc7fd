package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"adminconsole/internal/query"
)

// listFlags binds the standard listing controls to a command.
type listFlags struct {
	page      int
	perPage   int
	search    string
	sortBy    string
	sortOrder string
	filters   []string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", query.DefaultPage, "page number")
	cmd.Flags().IntVar(&f.perPage, "per-page", query.DefaultPerPage, "rows per page")
	cmd.Flags().StringVar(&f.search, "search", "", "free-text search")
	cmd.Flags().StringVar(&f.sortBy, "sort-by", "", "sort field")
	cmd.Flags().StringVar(&f.sortOrder, "sort-order", "", "sort direction (asc|desc)")
	cmd.Flags().StringArrayVar(&f.filters, "filter", nil, "extra filter as key=value (repeatable)")
}

// state builds the query state, applying filters before the page so an
// explicit --page survives the page reset the setters perform.
func (f *listFlags) state() (query.State, error) {
	q := query.New()
	if f.search != "" {
		q.SetSearch(f.search)
	}
	if f.sortBy != "" || f.sortOrder != "" {
		q.SetSort(f.sortBy, f.sortOrder)
	}
	for _, raw := range f.filters {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return query.State{}, fmt.Errorf("invalid --filter %q: expected key=value", raw)
		}
		q.SetFilter(key, value)
	}
	q.SetPerPage(f.perPage)
	q.SetPage(f.page)
	return q, nil
}
