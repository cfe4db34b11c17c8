package render

import (
	"html"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle        = lipgloss.NewStyle().Padding(0, 1)
	placeholderStyle = lipgloss.NewStyle().Faint(true)
	titleStyle       = lipgloss.NewStyle().Bold(true)
)

// Plain flattens a table into an ID column plus unescaped cell text, for
// terminal output.
func Plain(t Table) ([]string, [][]string) {
	headers := append([]string{"ID"}, t.Headers...)
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make([]string, 0, len(r.Cells)+1)
		row = append(row, r.ID)
		for _, c := range r.Cells {
			row = append(row, html.UnescapeString(c.Text))
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// Terminal renders the table for a terminal.
func Terminal(t Table) string {
	if t.Empty() {
		return placeholderStyle.Render(t.Placeholder)
	}

	headers, rows := Plain(t)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Faint(true)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	return titleStyle.Render(t.Title) + "\n" + tbl.String()
}
