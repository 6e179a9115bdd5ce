package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gridpat/internal/grid"
)

var (
	activeCellStyle   = lipgloss.NewStyle().Background(lipgloss.Color("39"))
	inactiveCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorActiveStyle = lipgloss.NewStyle().Background(lipgloss.Color("214"))
	cursorEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	headerStyle       = lipgloss.NewStyle().Bold(true)
	statusStyle       = lipgloss.NewStyle().Reverse(true)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// patternView is the read side of an editing session, enough to draw it.
type patternView interface {
	Dimension() int
	IsActive(index int) bool
	ActiveCount() int
	TotalCellCount() int
}

// Canvas maps the grid onto terminal cells. Each grid cell is drawn
// 2*zoom columns wide and zoom rows tall, starting below the header.
type Canvas struct {
	dim     int
	zoom    int
	originX int
	originY int

	cursorRow int
	cursorCol int
}

func NewCanvas(dim, zoom int) *Canvas {
	c := &Canvas{dim: dim, originY: headerLines}
	c.SetZoom(zoom)
	return c
}

func (c *Canvas) SetZoom(zoom int) {
	if zoom < 1 {
		zoom = 1
	}
	c.zoom = zoom
}

func (c *Canvas) cellWidth() int  { return 2 * c.zoom }
func (c *Canvas) cellHeight() int { return c.zoom }

// Rebuild follows a change of grid size. The cursor moves with the pattern
// so it stays over the same content.
func (c *Canvas) Rebuild(from, to int) {
	delta := grid.Offset(from, to)
	c.dim = to
	c.cursorRow = clamp(c.cursorRow+delta, 0, to-1)
	c.cursorCol = clamp(c.cursorCol+delta, 0, to-1)
}

// CellAt returns the grid index under screen position (x, y).
func (c *Canvas) CellAt(x, y int) (int, bool) {
	if x < c.originX || y < c.originY {
		return -1, false
	}
	col := (x - c.originX) / c.cellWidth()
	row := (y - c.originY) / c.cellHeight()
	if !grid.InBounds(row, col, c.dim) {
		return -1, false
	}
	return grid.ToIndex(row, col, c.dim), true
}

func (c *Canvas) Cursor() int {
	return grid.ToIndex(c.cursorRow, c.cursorCol, c.dim)
}

func (c *Canvas) MoveCursorTo(index int) {
	c.cursorRow, c.cursorCol = grid.ToRowCol(index, c.dim)
}

func (c *Canvas) MoveCursor(dRow, dCol int) {
	c.cursorRow = clamp(c.cursorRow+dRow, 0, c.dim-1)
	c.cursorCol = clamp(c.cursorCol+dCol, 0, c.dim-1)
}

// Render draws the grid clipped to width×height terminal cells.
func (c *Canvas) Render(p patternView, width, height int, showCursor bool) []string {
	cw, ch := c.cellWidth(), c.cellHeight()
	lines := make([]string, 0, c.dim*ch)

	maxCols := c.dim
	if width > 0 && width/cw < maxCols {
		maxCols = width / cw
	}

	for row := 0; row < c.dim; row++ {
		var b strings.Builder
		for col := 0; col < maxCols; col++ {
			index := grid.ToIndex(row, col, c.dim)
			cursor := showCursor && row == c.cursorRow && col == c.cursorCol
			b.WriteString(renderCell(p.IsActive(index), cursor, cw))
		}
		line := b.String()
		for i := 0; i < ch; i++ {
			if height > 0 && len(lines) >= height {
				return lines
			}
			lines = append(lines, line)
		}
	}
	return lines
}

func renderCell(active, cursor bool, width int) string {
	switch {
	case active && cursor:
		return cursorActiveStyle.Render(strings.Repeat(" ", width))
	case active:
		return activeCellStyle.Render(strings.Repeat(" ", width))
	case cursor:
		return cursorEmptyStyle.Render("[" + strings.Repeat(" ", width-2) + "]")
	default:
		return inactiveCellStyle.Render("·" + strings.Repeat(" ", width-1))
	}
}

// patternText draws the pattern as plain text, one line per row.
func patternText(p patternView) string {
	dim := p.Dimension()
	var b strings.Builder
	b.Grow(dim * (dim + 1))
	for row := 0; row < dim; row++ {
		for col := 0; col < dim; col++ {
			if p.IsActive(grid.ToIndex(row, col, dim)) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
