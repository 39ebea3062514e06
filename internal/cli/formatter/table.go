package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align controls horizontal cell alignment within a rendered column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// RenderTable renders a simple aligned table with a header separator line.
// Headers are rendered with the Header style. Columns are padded to the
// maximum width found in each column across both headers and rows.
func RenderTable(headers []string, rows [][]string) string {
	return RenderAlignedTable(headers, rows, nil)
}

// RenderAlignedTable renders a table with per-column alignment. Numeric
// columns read best right-aligned; a nil or short aligns slice falls
// back to left alignment.
func RenderAlignedTable(headers []string, rows [][]string, aligns []Align) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)

	// Compute max width per column, accounting for ANSI escape sequences
	// by measuring visible width.
	widths := make([]int, cols)
	for i, h := range headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	alignOf := func(i int) Align {
		if i < len(aligns) {
			return aligns[i]
		}
		return AlignLeft
	}

	// Add padding between columns.
	const colGap = 2

	var b strings.Builder

	// Render header row.
	for i, h := range headers {
		pad := widths[i] - lipgloss.Width(h)
		if pad < 0 {
			pad = 0
		}
		if alignOf(i) == AlignRight {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(StyleHeader.Render(h))
		if i < cols-1 {
			if alignOf(i) == AlignRight {
				b.WriteString(strings.Repeat(" ", colGap))
			} else {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
	}
	b.WriteString("\n")

	// Render separator line.
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	// Render data rows.
	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			if alignOf(i) == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
				if i < cols-1 {
					b.WriteString(strings.Repeat(" ", colGap))
				}
			} else {
				b.WriteString(cell)
				if i < cols-1 {
					b.WriteString(strings.Repeat(" ", pad+colGap))
				}
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
