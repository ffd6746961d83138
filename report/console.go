package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/uhppoted/uhppoted-app-usercheck/audit"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Bold(true)
)

var icons = map[audit.Severity]string{
	audit.Success: "✅",
	audit.Info:    "ℹ️ ",
	audit.Warning: "⚠️ ",
	audit.Error:   "❌",
}

// Console renders findings to a terminal (or any writer), one per line, with
// a section header whenever the workbook changes.
type Console struct {
	w    io.Writer
	file string
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Emit(f audit.Finding) {
	if f.File != "" && f.File != c.file {
		c.file = f.File
		fmt.Fprintln(c.w)
		fmt.Fprintln(c.w, headerStyle.Render(fmt.Sprintf("Detailed checks for %v", f.File)))
	} else if f.File == "" {
		c.file = ""
	}

	fmt.Fprintf(c.w, "%v %v\n", icons[f.Severity], style(f.Severity).Render(f.Message))

	for _, l := range f.Lists {
		fmt.Fprintf(c.w, "   %v %v\n", labelStyle.Render(l.Label+":"), strings.Join(l.Users, ", "))
	}
}

func style(s audit.Severity) lipgloss.Style {
	switch s {
	case audit.Success:
		return successStyle
	case audit.Warning:
		return warningStyle
	case audit.Error:
		return errorStyle
	default:
		return infoStyle
	}
}
