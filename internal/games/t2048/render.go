package t2048

import (
	"strconv"
	"strings"
)

// RenderText draws a snapshot as a box-drawing grid, one text row per board row.
// Cells are as wide as the widest value plus one space of padding on each side.
func RenderText(snap Snapshot) string {
	rows := snap.Rows()

	inner := 1
	for _, t := range snap.Tiles {
		inner = max(inner, len(strconv.Itoa(t.Value)))
	}
	cellWidth := inner + 2

	var b strings.Builder
	writeRule(&b, snap.Width, cellWidth, '┌', '┬', '┐')
	for y, row := range rows {
		b.WriteRune('│')
		for _, val := range row {
			text := ""
			if val != 0 {
				text = strconv.Itoa(val)
			}
			// Center the value in the cell
			padLeft := (cellWidth - len(text)) / 2
			padRight := cellWidth - len(text) - padLeft
			b.WriteString(strings.Repeat(" ", padLeft))
			b.WriteString(text)
			b.WriteString(strings.Repeat(" ", padRight))
			b.WriteRune('│')
		}
		b.WriteByte('\n')
		if y < len(rows)-1 {
			writeRule(&b, snap.Width, cellWidth, '├', '┼', '┤')
		}
	}
	writeRule(&b, snap.Width, cellWidth, '└', '┴', '┘')
	return b.String()
}

// writeRule draws one horizontal border line.
func writeRule(b *strings.Builder, cols, cellWidth int, left, mid, right rune) {
	b.WriteRune(left)
	for x := range cols {
		b.WriteString(strings.Repeat("─", cellWidth))
		if x < cols-1 {
			b.WriteRune(mid)
		}
	}
	b.WriteRune(right)
	b.WriteByte('\n')
}
