package glide

// FollowerConfig tunes the smoothing loop.
type FollowerConfig struct {
	// Ease is the fraction of remaining distance covered per frame, in
	// [0, 1). Higher tracks faster but feels less smooth; 0.12-0.18 reads
	// well in practice.
	Ease float64

	// InstantHide makes a scroll suspend drop opacity to zero immediately
	// instead of fading out.
	InstantHide bool
}

// DefaultFollowerConfig returns the stock easing parameters.
func DefaultFollowerConfig() FollowerConfig {
	return FollowerConfig{Ease: 0.15}
}

// Follower eases a displayed overlay's geometry toward the latest detected
// target, one step per frame. Input handlers only ever set targets; the
// displayed position is mutated exclusively by Tick. The displayed geometry
// is always a convex interpolation between its previous value and the target;
// it never jumps except on enable (reset to neutral) or a configured
// instant-hide suspend.
type Follower struct {
	cfg FollowerConfig

	enabled   bool
	hasTarget bool
	target    Rect

	// Displayed state. Height snaps to the target; top/left/width ease.
	top, left, width float64
	height           float64
	opacity          float64
}

// NewFollower creates a disabled follower.
func NewFollower(cfg FollowerConfig) *Follower {
	if cfg.Ease <= 0 || cfg.Ease >= 1 {
		cfg.Ease = DefaultFollowerConfig().Ease
	}
	return &Follower{cfg: cfg}
}

// Enable resets current and target to a neutral state derived from the
// viewport - vertical center, full width, invisible - so the first frame
// never snaps from stale geometry.
func (f *Follower) Enable(viewport Rect) {
	f.enabled = true
	f.hasTarget = false
	f.top = viewport.CenterY()
	f.left = viewport.Left
	f.width = viewport.Width
	f.height = 1
	f.opacity = 0
}

// Disable stops the follower. No further mutation happens until re-enabled.
func (f *Follower) Disable() {
	f.enabled = false
	f.hasTarget = false
}

// Enabled reports whether the follower is running.
func (f *Follower) Enabled() bool {
	return f.enabled
}

// SetTarget records the latest detected rectangle. Called from input
// handlers; takes effect on the next Tick.
func (f *Follower) SetTarget(r Rect) {
	if !f.enabled {
		return
	}
	f.target = r
	f.hasTarget = true
}

// ClearTarget drops the target; the overlay fades out on subsequent ticks.
func (f *Follower) ClearTarget() {
	f.hasTarget = false
}

// Suspend reacts to a scroll: the target is cleared so the overlay cannot
// swim across repositioned content, and with InstantHide set the overlay
// vanishes this frame instead of fading.
func (f *Follower) Suspend() {
	f.hasTarget = false
	if f.cfg.InstantHide {
		f.opacity = 0
	}
}

// SetEase updates the ease factor, clamping to the valid range.
func (f *Follower) SetEase(ease float64) {
	if ease > 0 && ease < 1 {
		f.cfg.Ease = ease
	}
}

// Tick advances the interpolation one frame. With a target, each displayed
// axis moves ease x remaining distance; without one, only opacity moves,
// easing toward zero (hide by fade, not by jump).
func (f *Follower) Tick() {
	if !f.enabled {
		return
	}
	if !f.hasTarget {
		f.opacity += (0 - f.opacity) * f.cfg.Ease
		return
	}
	f.top += (f.target.Top - f.top) * f.cfg.Ease
	f.left += (f.target.Left - f.left) * f.cfg.Ease
	f.width += (f.target.Width - f.width) * f.cfg.Ease
	f.height = f.target.Height
	f.opacity += (1 - f.opacity) * f.cfg.Ease
}

// State returns the displayed rectangle and opacity.
func (f *Follower) State() (Rect, float64) {
	return Rect{Top: f.top, Left: f.left, Width: f.width, Height: f.height}, f.opacity
}

// Visible reports whether the overlay is worth drawing at all.
func (f *Follower) Visible() bool {
	return f.enabled && f.opacity > 0.02
}
