package cmd

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// report is a bordered table for subcommand output, with rules above and
// below the header and at the bottom only.
type report struct {
	t *table.Table
}

func newReport(headers ...string) *report {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return &report{
		t: table.New().
			Border(lipgloss.NormalBorder()).
			BorderColumn(false).
			BorderLeft(false).
			BorderRight(false).
			Headers(headers...).
			StyleFunc(func(int, int) lipgloss.Style { return cell }),
	}
}

func (r *report) row(cells ...any) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	r.t.Row(row...)
}

func (r *report) write(w io.Writer, title string) {
	if title != "" {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, r.t.Render())
}
