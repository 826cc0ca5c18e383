package glide

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Layout wraps every run in the document into LineBoxes at the given width.
// Rows are one cell tall, so a fragment's line height is always 1 and adjacent
// rows sit exactly one cell apart. Layout must be re-run after a resize.
func (d *Document) Layout(width int) {
	if width < 4 {
		width = 4
	}
	d.Width = width

	// Drop any previous layout.
	d.eachRun(func(r *Run) bool {
		r.Boxes = nil
		return true
	})

	y := layoutBlock(d.root, 0, float64(width), 0)
	d.Height = y
	d.laid = true
}

// layoutBlock lays out b and its subtree starting at row y, returning the row
// after the block's last content.
func layoutBlock(b *Block, left, width, y float64) float64 {
	startY := y
	contentLeft := left + b.Padding
	contentWidth := width - 2*b.Padding
	if contentWidth < 1 {
		contentWidth = 1
	}

	switch {
	case len(b.Runs) > 0 && b.Kind == KindPre:
		y = layoutPre(b, contentLeft, y)
	case len(b.Runs) > 0:
		y = layoutFlow(b, contentLeft, contentWidth, y)
	}

	// Blank row between top-level and quoted siblings; list items stack tight.
	gap := 0.0
	if b.Kind == KindRoot || b.Kind == KindQuote {
		gap = 1
	}
	for i, child := range b.Blocks {
		if i > 0 {
			y += gap
		} else if len(b.Runs) > 0 {
			y++
		}
		indent := childIndent(child)
		y = layoutBlock(child, left+indent, width-indent, y)
	}

	b.Box = Rect{Top: startY, Left: left, Width: width, Height: y - startY}
	return y
}

// childIndent returns the extra left inset a block kind carries.
func childIndent(b *Block) float64 {
	switch b.Kind {
	case KindListItem, KindQuote:
		return 2
	}
	return 0
}

// layoutPre emits one LineBox per source line with no wrapping. Long lines
// run past the content width; the renderer clips them.
func layoutPre(b *Block, left, y float64) float64 {
	for _, r := range b.Runs {
		lines := strings.Split(r.Text, "\n")
		// A trailing newline produces an empty final line; drop it.
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = lines[:n-1]
		}
		for _, line := range lines {
			r.Boxes = append(r.Boxes, LineBox{
				Rect: Rect{Top: y, Left: left, Width: float64(runewidth.StringWidth(line)), Height: 1},
				Text: line,
			})
			y++
		}
	}
	return y
}

// flowFrag is a run of text from a single Run placed on the current row.
type flowFrag struct {
	run  *Run
	text string
}

// layoutFlow greedily word-wraps the block's runs into rows. Fragments from
// different runs that land on the same row get distinct LineBoxes - exactly
// the split the merger's tolerance band exists to re-join.
func layoutFlow(b *Block, left, width, y float64) float64 {
	var line []flowFrag
	lineW := 0

	flush := func() {
		x := left
		for _, f := range line {
			w := runewidth.StringWidth(f.text)
			f.run.Boxes = append(f.run.Boxes, LineBox{
				Rect: Rect{Top: y, Left: x, Width: float64(w), Height: 1},
				Text: f.text,
			})
			x += float64(w)
		}
		line = line[:0]
		lineW = 0
		y++
	}

	for _, r := range b.Runs {
		for _, word := range strings.Fields(r.Text) {
			w := runewidth.StringWidth(word)
			sep := 0
			if lineW > 0 {
				sep = 1
			}
			if lineW+sep+w > int(width) && lineW > 0 {
				flush()
				sep = 0
			}
			if n := len(line); n > 0 && line[n-1].run == r {
				if sep > 0 {
					line[n-1].text += " "
				}
				line[n-1].text += word
			} else {
				if sep > 0 && len(line) > 0 {
					// inter-run space rides on the previous fragment
					line[len(line)-1].text += " "
				}
				line = append(line, flowFrag{run: r, text: word})
			}
			lineW += sep + w
		}
	}
	if len(line) > 0 {
		flush()
	}
	return y
}
