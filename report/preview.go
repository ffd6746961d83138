package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/uhppoted/uhppoted-app-usercheck/reference"
)

const PREVIEW_ROWS = 5

// Preview renders the first few reference rows followed by the grouped
// reference table.
func Preview(w io.Writer, rows []reference.Row, groups *reference.Groups) {
	head := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(reference.ALGO, reference.SERVER, reference.USERID)

	for i, row := range rows {
		if i >= PREVIEW_ROWS {
			break
		}

		head.Row(row.Algo, row.Server, row.UserID)
	}

	grouped := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(reference.ALGO, reference.SERVER, reference.USERID)

	for _, g := range groups.List() {
		grouped.Row(g.Algo, g.Server, fmt.Sprintf("[%v]", strings.Join(g.UserIDs, ", ")))
	}

	fmt.Fprintln(w, headerStyle.Render("Reference preview"))
	fmt.Fprintln(w, head.String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Grouped users by algo/server"))
	fmt.Fprintln(w, grouped.String())
}
