package glide

import "testing"

// cellFixture builds a laid-out document at terminal scale: rows one cell
// tall, readable lines at rows 2 and 5.
func cellFixture() *fixtureDoc {
	f := newFixture()
	b := f.block(KindParagraph, Rect{Top: 0, Left: 0, Width: 80, Height: 10}, 0)
	addBoxedRun(b, "first line of text here", Rect{Top: 2, Left: 0, Width: 30, Height: 1})
	addBoxedRun(b, "second line, a bit longer", Rect{Top: 5, Left: 0, Width: 40, Height: 1})
	return f
}

func settle(tick func(), frames int) {
	for i := 0; i < frames; i++ {
		tick()
	}
}

func TestPacerLocksOntoLines(t *testing.T) {
	f := cellFixture()
	p := NewPacer(DefaultSettings(), ThemeDark)
	p.Enable(Rect{Top: 0, Left: 0, Width: 80, Height: 24})

	p.HandleMotion(f.doc, 10, 2.4)
	if p.LinesPaced() != 1 {
		t.Fatalf("LinesPaced = %d, want 1", p.LinesPaced())
	}
	// Same line again is not a new lock.
	p.HandleMotion(f.doc, 20, 2.6)
	if p.LinesPaced() != 1 {
		t.Errorf("LinesPaced = %d after re-hitting same line, want 1", p.LinesPaced())
	}
	p.HandleMotion(f.doc, 10, 5.4)
	if p.LinesPaced() != 2 {
		t.Errorf("LinesPaced = %d, want 2", p.LinesPaced())
	}
}

func TestPacerCountsTicks(t *testing.T) {
	p := NewPacer(DefaultSettings(), ThemeDark)

	// Disabled frames don't count as pacing time.
	settle(p.Tick, 5)
	if p.Ticks() != 0 {
		t.Fatalf("Ticks = %d while disabled, want 0", p.Ticks())
	}

	p.Enable(Rect{Top: 0, Left: 0, Width: 80, Height: 24})
	settle(p.Tick, 7)
	if p.Ticks() != 7 {
		t.Errorf("Ticks = %d after 7 enabled frames, want 7", p.Ticks())
	}

	p.Disable()
	settle(p.Tick, 5)
	if p.Ticks() != 7 {
		t.Errorf("Ticks = %d after disabling, want 7", p.Ticks())
	}
}

func TestPacerDrawAtRest(t *testing.T) {
	f := cellFixture()
	p := NewPacer(DefaultSettings(), ThemeDark)
	p.Enable(Rect{Top: 0, Left: 0, Width: 80, Height: 24})
	p.HandleMotion(f.doc, 10, 2.4)
	settle(p.Tick, 300)

	buf := NewBuffer(80, 24)
	p.Draw(buf, 0)

	// At rest the bar sits on row 2 with background highlight.
	c := buf.Get(5, 2)
	if c.Style.BG != ThemeDark.PacerBG || !c.Style.Underline {
		t.Errorf("row 2 cell style = %+v, want pacer background + underline", c.Style)
	}
	if off := buf.Get(5, 3).Style; off != (Style{}) {
		t.Errorf("row 3 should be untouched, got %+v", off)
	}
	if past := buf.Get(40, 2).Style; past != (Style{}) {
		t.Errorf("cell past the line's right edge should be untouched, got %+v", past)
	}
}

func TestPacerDisableStopsDrawing(t *testing.T) {
	f := cellFixture()
	p := NewPacer(DefaultSettings(), ThemeDark)
	p.Enable(Rect{Top: 0, Left: 0, Width: 80, Height: 24})
	p.HandleMotion(f.doc, 10, 2.4)
	settle(p.Tick, 10) // mid-animation

	p.Disable()
	settle(p.Tick, 10)

	buf := NewBuffer(80, 24)
	before := buf.Get(5, 2)
	p.Draw(buf, 0)
	if buf.Get(5, 2) != before {
		t.Error("disabled pacer still mutated the frame")
	}

	// Motion while disabled is ignored entirely.
	p.HandleMotion(f.doc, 10, 5.4)
	if p.LinesPaced() != 1 {
		t.Errorf("LinesPaced = %d after disabled motion, want 1", p.LinesPaced())
	}
}

func TestPacerFadesOverWhitespace(t *testing.T) {
	f := cellFixture()
	p := NewPacer(DefaultSettings(), ThemeDark)
	p.Enable(Rect{Top: 0, Left: 0, Width: 80, Height: 24})
	p.HandleMotion(f.doc, 10, 2.4)
	settle(p.Tick, 300)

	// Pointer moves to a gap: target clears, bar fades out.
	p.HandleMotion(f.doc, 10, 8.5)
	settle(p.Tick, 300)

	buf := NewBuffer(80, 24)
	p.Draw(buf, 0)
	for x := 0; x < 80; x++ {
		if buf.Get(x, 2) != (Cell{Rune: ' '}) {
			t.Fatalf("faded bar still drew at column %d", x)
		}
	}
}

func TestPacerScrollOffset(t *testing.T) {
	f := cellFixture()
	p := NewPacer(DefaultSettings(), ThemeDark)
	p.Enable(Rect{Top: 0, Left: 0, Width: 80, Height: 24})
	p.HandleMotion(f.doc, 10, 5.4)
	settle(p.Tick, 300)

	buf := NewBuffer(80, 24)
	p.Draw(buf, 3)

	// Document row 5 lands on screen row 2 when scrolled down 3.
	if !buf.Get(5, 2).Style.Underline {
		t.Error("bar missing at scrolled screen row")
	}
	if buf.Get(5, 5).Style.Underline {
		t.Error("bar drawn at unscrolled document row")
	}
}
