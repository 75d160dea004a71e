// Package pprint provides styled terminal output for the greet CLI:
// status lines, key-value pairs, tables and the banner.
// Greeting lines themselves never go through here; they stay unstyled.
package pprint

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ─────────────────────────────────────────────────────────────────────────────
// Colour palette
// ─────────────────────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.Color("#7B8CDE") // blue-purple
	ColorAccent  = lipgloss.Color("#56E0C8") // Teal
	ColorSuccess = lipgloss.Color("#48BB78") // Green
	ColorWarning = lipgloss.Color("#F6AD55") // Amber
	ColorError   = lipgloss.Color("#FC8181") // Red
	ColorMuted   = lipgloss.Color("#4A5568") // Grey
	ColorText    = lipgloss.Color("#E2E8F0") // Off-white
)

// ─────────────────────────────────────────────────────────────────────────────
// Styles
// ─────────────────────────────────────────────────────────────────────────────

var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleAccent  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Width(12)
)

// ─────────────────────────────────────────────────────────────────────────────
// Printer
// ─────────────────────────────────────────────────────────────────────────────

// Printer writes styled lines to a single writer.
type Printer struct {
	w io.Writer
}

// To returns a Printer writing to w.
func To(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Success prints a green ✓ success line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, StyleSuccess.Render("✓ ")+StyleText.Render(fmt.Sprintf(format, args...)))
}

// Warn prints an amber ⚠ warning line.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.w, StyleWarning.Render("⚠ ")+StyleText.Render(fmt.Sprintf(format, args...)))
}

// Error prints a red ✗ error line.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.w, StyleError.Render("✗ ")+StyleText.Render(fmt.Sprintf(format, args...)))
}

// Info prints a dimmed info line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.w, StyleMuted.Render("  "+fmt.Sprintf(format, args...)))
}

// KV prints a labelled key-value pair.
func (p *Printer) KV(key, value string) {
	fmt.Fprintln(p.w, StyleLabel.Render(key)+StyleText.Render(value))
}

// ─────────────────────────────────────────────────────────────────────────────
// Table
// ─────────────────────────────────────────────────────────────────────────────

// Table renders a simple terminal table with coloured headers.
type Table struct {
	headers []string
	rows    [][]string
	out     io.Writer
}

// NewTable creates a new Table writing to out.
func NewTable(out io.Writer, headers ...string) *Table {
	return &Table{headers: headers, out: out}
}

// AddRow appends a data row to the table.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render prints the table.
func (t *Table) Render() {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	fmt.Fprintln(t.out, StylePrimary.Render(pad(t.headers, widths)))

	sep := ""
	for _, w := range widths {
		sep += strings.Repeat("─", w+2)
	}
	fmt.Fprintln(t.out, StyleMuted.Render(sep))

	for _, row := range t.rows {
		fmt.Fprintln(t.out, StyleText.Render(pad(row, widths)))
	}
}

func pad(cells []string, widths []int) string {
	var sb strings.Builder
	for i, cell := range cells {
		w := 0
		if i < len(widths) {
			w = widths[i]
		}
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", w-lipgloss.Width(cell)+2))
	}
	return strings.TrimRight(sb.String(), " ")
}
