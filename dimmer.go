package glide

import "math"

// Dimmer de-emphasizes everything outside a focus region. In band mode the
// region is a fixed-height window centered on the pointer row; in focused-box
// mode it is the detected visual line, found through the same sampler/merger
// path as the pacer. Either way the region rides the follower, so it glides
// rather than teleports.
type Dimmer struct {
	follower *Follower
	detect   DetectConfig
	theme    Theme

	mode       DimMode
	bandHeight int
	viewWidth  float64
}

// NewDimmer creates a disabled dimmer.
func NewDimmer(s Settings, theme Theme) *Dimmer {
	return &Dimmer{
		follower:   NewFollower(FollowerConfig{Ease: s.Ease, InstantHide: s.InstantHide}),
		detect:     s.DetectConfig(),
		theme:      theme,
		mode:       s.DimMode,
		bandHeight: s.BandHeight,
	}
}

// Apply updates tuning from a settings change.
func (d *Dimmer) Apply(s Settings) {
	d.follower.SetEase(s.Ease)
	d.follower.cfg.InstantHide = s.InstantHide
	d.detect = s.DetectConfig()
	d.bandHeight = s.BandHeight
	if s.DimMode != d.mode {
		d.SetMode(s.DimMode)
	}
}

// Mode returns the current focus-region mode.
func (d *Dimmer) Mode() DimMode {
	return d.mode
}

// SetMode switches region shape. A mode change is one of the few places the
// overlay may move discontinuously, so the target is cleared and the region
// re-establishes itself on the next motion.
func (d *Dimmer) SetMode(mode DimMode) {
	d.mode = mode
	d.follower.ClearTarget()
}

// Enable starts the dimmer.
func (d *Dimmer) Enable(viewport Rect) {
	d.viewWidth = viewport.Width
	d.follower.Enable(viewport)
}

// Disable stops the dimmer.
func (d *Dimmer) Disable() {
	d.follower.Disable()
}

// Enabled reports whether the dimmer is running.
func (d *Dimmer) Enabled() bool {
	return d.follower.Enabled()
}

// HandleMotion updates the focus-region target from a document-space point.
func (d *Dimmer) HandleMotion(doc *Document, x, y float64) {
	if !d.follower.Enabled() {
		return
	}
	switch d.mode {
	case DimFocusedBox:
		line := DetectLineAt(doc, x, y, d.detect)
		if line == nil {
			d.follower.ClearTarget()
			return
		}
		d.follower.SetTarget(*line)
	default:
		h := float64(d.bandHeight)
		d.follower.SetTarget(Rect{
			Top:    y - h/2,
			Left:   0,
			Width:  d.viewWidth,
			Height: h,
		})
	}
}

// Suspend reacts to a scroll event.
func (d *Dimmer) Suspend() {
	d.follower.Suspend()
}

// Tick advances the smoothing one frame.
func (d *Dimmer) Tick() {
	d.follower.Tick()
}

// Draw dims the frame outside the focus region. Opacity maps to dim depth:
// faint only while the region settles, faint plus gray foreground at rest.
func (d *Dimmer) Draw(buf *Buffer, scrollY float64) {
	if !d.follower.Visible() {
		return
	}
	rect, opacity := d.follower.State()
	rect = rect.Translate(0, -scrollY)
	y0 := int(math.Round(rect.Top))
	y1 := int(math.Round(rect.Bottom()))
	if y1 <= y0 {
		y1 = y0 + 1
	}

	gray := d.theme.DimGray
	dim := func(c Cell) Cell {
		if opacity > 0.6 {
			c.Style = c.Style.Dimmed(gray)
		} else {
			c.Style.Faint = true
		}
		return c
	}

	if d.mode == DimFocusedBox {
		x0 := int(math.Round(rect.Left))
		x1 := int(math.Round(rect.Right()))
		buf.MapOutsideRegion(x0, y0, x1, y1, dim)
		return
	}
	buf.MapOutsideRows(y0, y1, dim)
}
