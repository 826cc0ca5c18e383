package glide

import (
	"sort"
	"strings"
)

// DetectConfig tunes the line detector. The zero value is unusable; start
// from DefaultDetectConfig. The numbers are empirical, not load-bearing:
// callers working in terminal cells rather than pixels scale them (see
// CellDetectConfig).
type DetectConfig struct {
	// ToleranceFactor is the fraction of the reference line height within
	// which a fragment's vertical center counts as the same visual line.
	ToleranceFactor float64

	// MinLineWidth is the narrowest merged line worth reporting; anything
	// thinner is treated as "not over readable text".
	MinLineWidth float64

	// GroupFloor is the minimum vertical-center distance used when grouping
	// fragments in ScanVisibleLines, guarding against degenerate tiny rects.
	GroupFloor float64

	// Preformatted is the ordered matcher list consulted by IsPreformatted.
	// Nil means DefaultPreMatchers.
	Preformatted []PreMatcher
}

// DefaultDetectConfig returns the detector defaults in pixel-scale units.
func DefaultDetectConfig() DetectConfig {
	return DetectConfig{
		ToleranceFactor: 0.6,
		MinLineWidth:    20,
		GroupFloor:      2,
	}
}

// CellDetectConfig returns defaults scaled for one-cell-tall rows: the line
// pitch is 1, so the group floor must stay below it, and a few glyphs of
// width are enough to count as a line.
func CellDetectConfig() DetectConfig {
	return DetectConfig{
		ToleranceFactor: 0.6,
		MinLineWidth:    4,
		GroupFloor:      0.25,
	}
}

func (c DetectConfig) matchers() []PreMatcher {
	if c.Preformatted != nil {
		return c.Preformatted
	}
	return DefaultPreMatchers
}

// PreMatcher reports whether a single block looks preformatted. Matchers are
// applied to the block and each of its ancestors in turn.
type PreMatcher func(*Block) bool

// MatchPreKind matches blocks of the preformatted kind.
func MatchPreKind(b *Block) bool {
	return b.Kind == KindPre
}

// preClassHints are case-insensitive substrings of class names that mark a
// block as code/terminal content.
var preClassHints = []string{"terminal", "console", "code", "highlight"}

// MatchPreClass matches blocks whose class contains a code-ish hint.
func MatchPreClass(b *Block) bool {
	if b.Class == "" {
		return false
	}
	class := strings.ToLower(b.Class)
	for _, hint := range preClassHints {
		if strings.Contains(class, hint) {
			return true
		}
	}
	return false
}

// DefaultPreMatchers is the stock matcher list.
var DefaultPreMatchers = []PreMatcher{MatchPreKind, MatchPreClass}

// IsPreformatted reports whether b or any ancestor satisfies a matcher.
// Preformatted blocks are read as whole lines regardless of glyph extents,
// so their merged line spans the block's content width.
func IsPreformatted(b *Block, matchers []PreMatcher) bool {
	for cur := b; cur != nil; cur = cur.parent {
		for _, m := range matchers {
			if m(cur) {
				return true
			}
		}
	}
	return false
}

// Sample is the geometry found under a point: the fragment rectangle, its
// vertical center, and the line height to derive the merge tolerance from.
type Sample struct {
	Hit        *Hit
	Rect       Rect
	CenterY    float64
	LineHeight float64
}

// SampleAt resolves the text fragment under a document-space point. Returns
// nil when there is no text, the text is editable, or the fragment has zero
// height - all normal states, never errors. Side-effect-free.
func SampleAt(doc *Document, x, y float64) *Sample {
	hit := doc.HitTest(x, y)
	if hit == nil {
		return nil
	}
	if hit.Run.Editable {
		return nil
	}
	if hit.Box.Rect.Height <= 0 {
		return nil
	}
	return &Sample{
		Hit:        hit,
		Rect:       hit.Box.Rect,
		CenterY:    hit.Box.Rect.CenterY(),
		LineHeight: hit.Box.Rect.Height,
	}
}

// BlockOf walks up from the run to the nearest block-level container.
// The document root is the fallback; the result is never nil.
func BlockOf(doc *Document, r *Run) *Block {
	b := r.Block()
	for b != nil {
		if b.Kind.blockLevel() {
			return b
		}
		b = b.parent
	}
	return doc.Root()
}

// mergeable reports whether a run's fragments participate in line merging.
// Interactive runs are skipped so overlays never ride over links or buttons.
func mergeable(r *Run) bool {
	return !r.Interactive && !r.Editable && strings.TrimSpace(r.Text) != ""
}

// eachRunUnder visits every run inside the block's subtree.
func eachRunUnder(b *Block, fn func(*Run)) {
	for _, r := range b.Runs {
		fn(r)
	}
	for _, c := range b.Blocks {
		eachRunUnder(c, fn)
	}
}

// MergeLine buckets the block's fragment rectangles into the visual line at
// refCenterY and returns their exact min/max envelope. Fragments qualify when
// their vertical center is within ToleranceFactor x refLineHeight of the
// reference center - wide enough to re-join same-line fragments split across
// inline markup, tight enough to exclude the lines above and below.
//
// Preformatted blocks get the result's left/right overridden with the block's
// padding-adjusted content edges. Returns nil when nothing qualifies or the
// result is narrower than MinLineWidth.
func MergeLine(block *Block, refCenterY, refLineHeight float64, pre bool, cfg DetectConfig) *Rect {
	tolerance := cfg.ToleranceFactor * refLineHeight

	var merged Rect
	found := false
	eachRunUnder(block, func(r *Run) {
		if !mergeable(r) {
			return
		}
		for _, box := range r.Boxes {
			if abs(box.Rect.CenterY()-refCenterY) > tolerance {
				continue
			}
			if !found {
				merged = box.Rect
				found = true
			} else {
				merged = merged.Union(box.Rect)
			}
		}
	})
	if !found {
		return nil
	}

	if pre {
		left := block.ContentLeft()
		right := block.ContentRight()
		merged.Left = left
		merged.Width = right - left
	}
	if merged.Width < cfg.MinLineWidth {
		return nil
	}
	return &merged
}

// DetectLineAt is the full sampler -> resolver -> merger path: the visual
// line under a document-space point, or nil when the point is not over
// readable text.
func DetectLineAt(doc *Document, x, y float64, cfg DetectConfig) *Rect {
	sample := SampleAt(doc, x, y)
	if sample == nil {
		return nil
	}
	block := BlockOf(doc, sample.Hit.Run)
	pre := IsPreformatted(block, cfg.matchers())
	return MergeLine(block, sample.CenterY, sample.LineHeight, pre, cfg)
}

// ScanVisibleLines collects every fragment rectangle intersecting the
// viewport and greedily groups them into visual lines: sorted by (top, left),
// a rectangle joins the most recent group whose vertical-center distance is
// within max(GroupFloor, height x ToleranceFactor), else it starts a new
// group. Each group is unioned into one rectangle. The result is ordered
// top-to-bottom and the grouping is idempotent: re-grouping the output
// yields the same groups.
func ScanVisibleLines(doc *Document, viewport Rect, cfg DetectConfig) []Rect {
	if !doc.Laid() {
		return nil
	}
	var rects []Rect
	doc.eachRun(func(r *Run) bool {
		if !mergeable(r) {
			return true
		}
		for _, box := range r.Boxes {
			if box.Rect.Intersects(viewport) {
				rects = append(rects, box.Rect)
			}
		}
		return true
	})
	if len(rects) == 0 {
		return nil
	}

	sort.Slice(rects, func(i, j int) bool {
		if rects[i].Top != rects[j].Top {
			return rects[i].Top < rects[j].Top
		}
		return rects[i].Left < rects[j].Left
	})

	var lines []Rect
	for _, r := range rects {
		tol := max(cfg.GroupFloor, r.Height*cfg.ToleranceFactor)
		if n := len(lines); n > 0 && abs(lines[n-1].CenterY()-r.CenterY()) <= tol {
			lines[n-1] = lines[n-1].Union(r)
			continue
		}
		lines = append(lines, r)
	}
	return lines
}
