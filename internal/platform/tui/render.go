package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

const (
	cellHeight     = 3
	minCellWidth   = 6
	emptyCellColor = "#cdc1b4"
	boardColor     = "#bbada0"
	darkText       = "#776e65"
	lightText      = "#f9f6f2"
	spawnColor     = "#3c3a32"
)

// TileStyles maps tile values to lipgloss styles from the type table's style tokens.
type TileStyles struct {
	renderer  *lipgloss.Renderer
	types     t2048.TypeTable
	cellWidth int
	cache     map[int]lipgloss.Style
}

// NewTileStyles builds tile styles for a type table.
// A nil renderer uses the default one; SSH sessions pass their own.
func NewTileStyles(r *lipgloss.Renderer, types t2048.TypeTable) *TileStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	// Wide enough for the largest value plus padding
	width := minCellWidth
	for _, e := range types.Entries() {
		width = max(width, len(strconv.Itoa(e.Value))+4)
	}

	return &TileStyles{
		renderer:  r,
		types:     types,
		cellWidth: width,
		cache:     make(map[int]lipgloss.Style),
	}
}

// base returns the style shared by every cell.
func (s *TileStyles) base() lipgloss.Style {
	return s.renderer.NewStyle().
		Width(s.cellWidth).
		Height(cellHeight).
		Align(lipgloss.Center, lipgloss.Center)
}

// Tile returns the style for a value. 0 is the empty cell.
func (s *TileStyles) Tile(value int) lipgloss.Style {
	if st, ok := s.cache[value]; ok {
		return st
	}

	st := s.base()
	if value == 0 {
		st = st.Background(lipgloss.Color(emptyCellColor))
	} else {
		bg := s.types.Style(value)
		if bg == "" {
			bg = boardColor
		}
		fg := lightText
		if value <= 4 {
			fg = darkText
		}
		st = st.Bold(true).
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color(fg))
	}

	s.cache[value] = st
	return st
}

// Cell renders one cell with an optional replay highlight.
func (s *TileStyles) Cell(value int, h highlight) string {
	text := ""
	if value != 0 {
		text = strconv.Itoa(value)
	}

	st := s.Tile(value)
	switch h {
	case highlightMerged:
		st = st.Underline(true).Reverse(true)
	case highlightSpawned:
		st = st.Background(lipgloss.Color(spawnColor)).
			Foreground(lipgloss.Color(lightText))
	}
	return st.Render(text)
}

// RenderBoard draws a snapshot as a grid of styled cells inside a frame.
func (s *TileStyles) RenderBoard(snap t2048.Snapshot, highlights map[t2048.Position]highlight) string {
	gap := s.renderer.NewStyle().Background(lipgloss.Color(boardColor))

	rows := snap.Rows()
	lines := make([]string, 0, len(rows)*2)
	for y, row := range rows {
		cells := make([]string, 0, len(row)*2)
		for x, val := range row {
			if x > 0 {
				cells = append(cells, gap.Height(cellHeight).Render(" "))
			}
			cells = append(cells, s.Cell(val, highlights[t2048.Pos(x, y)]))
		}
		if y > 0 {
			lines = append(lines, gap.Width(s.BoardWidth(snap.Width)).Render(""))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	frame := s.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(boardColor)).
		Background(lipgloss.Color(boardColor)).
		Padding(0, 1)
	return frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// BoardWidth returns the inner width of a row of cols cells.
func (s *TileStyles) BoardWidth(cols int) int {
	return cols*s.cellWidth + (cols - 1)
}

// FrameWidth returns the full rendered width of a board, border included.
func (s *TileStyles) FrameWidth(cols int) int {
	return s.BoardWidth(cols) + 4
}
