package glide

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Style is the per-cell styling the overlays composite with. Fields are
// comparable so the renderer can batch runs of identical style into one
// escape sequence.
type Style struct {
	FG, BG    lipgloss.Color
	Bold      bool
	Italic    bool
	Underline bool
	Faint     bool
}

// Dimmed returns the style with the faint attribute set and any foreground
// dropped to the given gray. Used by the dimmer for cells outside the focus
// region.
func (s Style) Dimmed(gray lipgloss.Color) Style {
	s.Faint = true
	if gray != "" {
		s.FG = gray
	}
	return s
}

func (s Style) lip() lipgloss.Style {
	ls := lipgloss.NewStyle()
	if s.FG != "" {
		ls = ls.Foreground(s.FG)
	}
	if s.BG != "" {
		ls = ls.Background(s.BG)
	}
	if s.Bold {
		ls = ls.Bold(true)
	}
	if s.Italic {
		ls = ls.Italic(true)
	}
	if s.Underline {
		ls = ls.Underline(true)
	}
	if s.Faint {
		ls = ls.Faint(true)
	}
	return ls
}

// Cell is one terminal cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Buffer is a 2D grid of cells the document and overlays draw into. One
// buffer is rebuilt per frame and rendered to a string for the terminal.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer filled with spaces.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	b.Clear()
	return b
}

// Width returns the buffer width.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height.
func (b *Buffer) Height() int { return b.height }

// InBounds reports whether (x, y) is within the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) index(x, y int) int { return y*b.width + x }

// Clear resets every cell to a blank space.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = Cell{Rune: ' '}
	}
}

// Get returns the cell at (x, y), or a blank cell out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{Rune: ' '}
	}
	return b.cells[b.index(x, y)]
}

// Set writes a cell, ignoring out-of-bounds coordinates.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)] = c
}

// WriteString writes s starting at (x, y) with the given style, clipping at
// the right edge. Wide runes occupy two cells, the second left blank.
func (b *Buffer) WriteString(x, y int, s string, style Style) {
	if y < 0 || y >= b.height {
		return
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= b.width {
			return
		}
		b.Set(x, y, Cell{Rune: r, Style: style})
		if w == 2 && x+1 < b.width {
			b.Set(x+1, y, Cell{Rune: ' ', Style: style})
		}
		x += w
	}
}

// MapRegion applies fn to every cell inside the rectangle (cell coordinates,
// clipped to the buffer).
func (b *Buffer) MapRegion(x0, y0, x1, y1 int, fn func(Cell) Cell) {
	for y := max(y0, 0); y < min(y1, b.height); y++ {
		for x := max(x0, 0); x < min(x1, b.width); x++ {
			idx := b.index(x, y)
			b.cells[idx] = fn(b.cells[idx])
		}
	}
}

// MapOutsideRows applies fn to every cell whose row is outside [y0, y1).
func (b *Buffer) MapOutsideRows(y0, y1 int, fn func(Cell) Cell) {
	for y := 0; y < b.height; y++ {
		if y >= y0 && y < y1 {
			continue
		}
		for x := 0; x < b.width; x++ {
			idx := b.index(x, y)
			b.cells[idx] = fn(b.cells[idx])
		}
	}
}

// MapOutsideRegion applies fn to every cell outside the rectangle.
func (b *Buffer) MapOutsideRegion(x0, y0, x1, y1 int, fn func(Cell) Cell) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if x >= x0 && x < x1 && y >= y0 && y < y1 {
				continue
			}
			idx := b.index(x, y)
			b.cells[idx] = fn(b.cells[idx])
		}
	}
}

// Line returns the plain text of a row with trailing spaces trimmed.
func (b *Buffer) Line(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < b.width; x++ {
		sb.WriteRune(b.Get(x, y).Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Render emits the buffer as styled terminal lines. Consecutive cells with
// identical style collapse into one styled span.
func (b *Buffer) Render() string {
	var sb strings.Builder
	var span strings.Builder
	for y := 0; y < b.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		spanStyle := b.Get(0, y).Style
		span.Reset()
		for x := 0; x < b.width; x++ {
			c := b.Get(x, y)
			if c.Style != spanStyle {
				sb.WriteString(spanStyle.lip().Render(span.String()))
				span.Reset()
				spanStyle = c.Style
			}
			span.WriteRune(c.Rune)
		}
		sb.WriteString(spanStyle.lip().Render(span.String()))
	}
	return sb.String()
}
