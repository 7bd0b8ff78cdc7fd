// Package table renders paginated entity listings for the terminal.
package table

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"adminconsole/internal/query"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	footerStyle   = lipgloss.NewStyle().Faint(true)
	disabledStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	emptyStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
)

// Column maps one field of a row to a titled cell.
type Column[T any] struct {
	Title string
	Cell  func(T) string
}

// Action is a named operation offered on each row, rendered in a
// trailing actions column.
type Action[T any] struct {
	Label string
	// Enabled gates the action per row; nil means always enabled.
	Enabled func(T) bool
}

// Table renders one page of rows with a pagination footer.
type Table[T any] struct {
	Columns []Column[T]
	Actions []Action[T]
}

// Render draws the rows with a header, an actions column when actions
// are configured, and a footer describing the page window. An empty page
// renders a "No results." placeholder instead of rows.
func (t Table[T]) Render(rows []T, p query.Pagination) string {
	titles := make([]string, 0, len(t.Columns)+1)
	for _, col := range t.Columns {
		titles = append(titles, col.Title)
	}
	if len(t.Actions) > 0 {
		titles = append(titles, "Actions")
	}

	grid := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(titles))
		for _, col := range t.Columns {
			cells = append(cells, col.Cell(row))
		}
		if len(t.Actions) > 0 {
			cells = append(cells, t.renderActions(row))
		}
		grid = append(grid, cells)
	}

	widths := make([]int, len(titles))
	for i, title := range titles {
		widths[i] = lipgloss.Width(title)
	}
	for _, cells := range grid {
		for i, cell := range cells {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	for i, title := range titles {
		sb.WriteString(headerStyle.Width(widths[i]).Render(title))
	}
	sb.WriteString("\n")

	if len(rows) == 0 {
		sb.WriteString(emptyStyle.Render("No results."))
		sb.WriteString("\n")
	} else {
		for _, cells := range grid {
			for i, cell := range cells {
				sb.WriteString(cellStyle.Width(widths[i]).Render(cell))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString(footerStyle.Render(Footer(p, len(rows))))
	sb.WriteString("\n")
	sb.WriteString(pagerLine(p))
	sb.WriteString("\n")
	return sb.String()
}

func (t Table[T]) renderActions(row T) string {
	labels := make([]string, 0, len(t.Actions))
	for _, a := range t.Actions {
		if a.Enabled != nil && !a.Enabled(row) {
			labels = append(labels, disabledStyle.Render(a.Label))
			continue
		}
		labels = append(labels, a.Label)
	}
	return strings.Join(labels, " ")
}

// Footer describes the visible window, for example
// "Showing 11 to 20 of 25 results".
func Footer(p query.Pagination, rowsOnPage int) string {
	start, end := p.Window(rowsOnPage)
	if start == 0 {
		return "Showing 0 results"
	}
	return fmt.Sprintf("Showing %d to %d of %d results", start, end, p.TotalItems)
}

func pagerLine(p query.Pagination) string {
	prev := "< Prev"
	if !p.HasPrev {
		prev = disabledStyle.Render(prev)
	}
	next := "Next >"
	if !p.HasNext {
		next = disabledStyle.Render(next)
	}
	return fmt.Sprintf("%s  Page %d of %d  %s", prev, p.CurrentPage, p.TotalPages, next)
}
