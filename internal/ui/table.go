package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align places a cell's text inside its column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// CellStyle picks the style of one cell from its text.
type CellStyle func(cell string) lipgloss.Style

// Column defines a table column. Widths are terminal cells, not bytes.
type Column struct {
	Title string
	Width int
	Align Align
	Style CellStyle // nil renders with the default value style
}

// Row is a slice of cell values.
type Row []string

// Table renders fixed-width columns for the catalog, RPC and wallet listings.
type Table struct {
	Columns []Column
	Rows    []Row
}

// NewTable creates a new table.
func NewTable(cols []Column) *Table {
	return &Table{Columns: cols}
}

// AddRow appends a row. Missing trailing cells render empty.
func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

var (
	tableHeader = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	tableCell   = lipgloss.NewStyle().Foreground(ColorValue)
)

// Render returns the full table as a string.
// Cells are fitted before styling so ANSI codes never count toward width.
func (t *Table) Render() string {
	var sb strings.Builder

	parts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		parts[i] = tableHeader.Render(fitCell(col.Title, col.Width, col.Align))
	}
	sb.WriteString(strings.Join(parts, " ") + "\n")

	for i, col := range t.Columns {
		parts[i] = StyleDim.Render(strings.Repeat("─", max(col.Width, 0)))
	}
	sb.WriteString(strings.Join(parts, " ") + "\n")

	for _, row := range t.Rows {
		for j, col := range t.Columns {
			val := ""
			if j < len(row) {
				val = row[j]
			}
			style := tableCell
			if col.Style != nil {
				style = col.Style(val)
			}
			parts[j] = style.Render(fitCell(val, col.Width, col.Align))
		}
		sb.WriteString(strings.Join(parts, " ") + "\n")
	}

	return sb.String()
}

// fitCell pads or truncates s to exactly width cells.
func fitCell(s string, width int, align Align) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		rs := []rune(s)
		for len(rs) > 0 && lipgloss.Width(string(rs))+1 > width {
			rs = rs[:len(rs)-1]
		}
		s = string(rs) + "…"
	}
	gap := strings.Repeat(" ", width-lipgloss.Width(s))
	if align == AlignRight {
		return gap + s
	}
	return s + gap
}

// Fixed styles every cell of a column the same way.
func Fixed(style lipgloss.Style) CellStyle {
	return func(string) lipgloss.Style { return style }
}

// MutabilityStyle colors an ABI state mutability: reads green, payable
// yellow, plain writes white.
func MutabilityStyle(cell string) lipgloss.Style {
	switch cell {
	case "view", "pure":
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	case "payable":
		return lipgloss.NewStyle().Foreground(ColorWarning)
	}
	return tableCell
}

// HealthStyle colors an RPC probe status.
func HealthStyle(cell string) lipgloss.Style {
	if cell == "healthy" {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorError)
}

// KeyValueBlock renders a set of key-value pairs in a bordered box. Keys are
// aligned to the longest one; empty values show as "(unset)".
func KeyValueBlock(title string, pairs [][2]string) string {
	keyWidth := 12
	for _, p := range pairs {
		keyWidth = max(keyWidth, lipgloss.Width(p[0])+1)
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title))
		sb.WriteString("\n")
	}
	for _, p := range pairs {
		key := StyleMeta.Render(padR(p[0]+":", keyWidth))
		val := StyleValue.Render(p[1])
		if p[1] == "" {
			val = StyleDim.Render("(unset)")
		}
		sb.WriteString("  " + key + " " + val + "\n")
	}
	return StyleBorder.Render(sb.String())
}
