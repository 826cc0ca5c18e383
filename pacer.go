package glide

import "math"

// Pacer draws a smoothed highlight bar under the visual line the pointer is
// over, pacing the reader's eye. Motion handlers only feed targets; the bar
// itself moves on the frame tick via the follower.
type Pacer struct {
	follower *Follower
	detect   DetectConfig
	theme    Theme

	linesPaced int
	ticks      int
	lastTop    float64
}

// NewPacer creates a disabled pacer.
func NewPacer(s Settings, theme Theme) *Pacer {
	return &Pacer{
		follower: NewFollower(FollowerConfig{Ease: s.Ease, InstantHide: s.InstantHide}),
		detect:   s.DetectConfig(),
		theme:    theme,
	}
}

// Apply updates tuning from a settings change without touching enablement.
func (p *Pacer) Apply(s Settings) {
	p.follower.SetEase(s.Ease)
	p.follower.cfg.InstantHide = s.InstantHide
	p.detect = s.DetectConfig()
}

// Enable starts the pacer with a neutral follower state.
func (p *Pacer) Enable(viewport Rect) {
	p.follower.Enable(viewport)
	p.lastTop = math.NaN()
}

// Disable stops the pacer; nothing mutates its overlay afterwards.
func (p *Pacer) Disable() {
	p.follower.Disable()
}

// Enabled reports whether the pacer is running.
func (p *Pacer) Enabled() bool {
	return p.follower.Enabled()
}

// HandleMotion runs a detection pass at a document-space point and updates
// the follower target. A nil detection clears the target so the bar fades.
func (p *Pacer) HandleMotion(doc *Document, x, y float64) {
	if !p.follower.Enabled() {
		return
	}
	line := DetectLineAt(doc, x, y, p.detect)
	if line == nil {
		p.follower.ClearTarget()
		return
	}
	if line.Top != p.lastTop {
		p.linesPaced++
		p.lastTop = line.Top
	}
	p.follower.SetTarget(*line)
}

// Suspend reacts to a scroll event.
func (p *Pacer) Suspend() {
	p.follower.Suspend()
}

// Tick advances the smoothing one frame.
func (p *Pacer) Tick() {
	if p.follower.Enabled() {
		p.ticks++
	}
	p.follower.Tick()
}

// LinesPaced returns how many distinct lines the pacer has locked onto,
// feeding the usage statistics.
func (p *Pacer) LinesPaced() int {
	return p.linesPaced
}

// Ticks returns how many frames the pacer has been active for, feeding the
// usage statistics.
func (p *Pacer) Ticks() int {
	return p.ticks
}

// Draw composites the bar onto the frame buffer. scrollY maps document rows
// to screen rows. Opacity maps to style steps: a faint underline while
// fading, background highlight once settled.
func (p *Pacer) Draw(buf *Buffer, scrollY float64) {
	if !p.follower.Visible() {
		return
	}
	rect, opacity := p.follower.State()
	rect = rect.Translate(0, -scrollY)
	row := int(math.Round(rect.Top))
	x0 := int(math.Round(rect.Left))
	x1 := int(math.Round(rect.Right()))

	buf.MapRegion(x0, row, x1, row+1, func(c Cell) Cell {
		switch {
		case opacity > 0.6:
			c.Style.BG = p.theme.PacerBG
			c.Style.Underline = true
		case opacity > 0.25:
			c.Style.Underline = true
		default:
			c.Style.Underline = true
			c.Style.Faint = true
		}
		return c
	})
}
