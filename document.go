package glide

// BlockKind classifies a block-level container.
type BlockKind int

const (
	KindRoot BlockKind = iota
	KindParagraph
	KindHeading
	KindListItem
	KindQuote
	KindPre
	KindPlain  // generic container, the div of the model
	KindInline // inline wrapper, not a line-detection boundary
)

// blockLevel reports whether a kind acts as a boundary for line detection.
// KindInline containers are transparent: the resolver walks through them.
func (k BlockKind) blockLevel() bool {
	return k != KindInline
}

// Block is a container in the document tree. Blocks hold child blocks or
// inline runs, never both at once in practice, though nothing enforces it.
type Block struct {
	Kind    BlockKind
	Class   string  // free-form class hint, e.g. "highlight" on code fences
	Level   int     // heading level, 0 otherwise
	Padding float64 // horizontal content inset, cells

	parent *Block
	Blocks []*Block
	Runs   []*Run

	// Box is the block's border box in document coordinates, set by layout.
	Box Rect
}

// Parent returns the enclosing block, nil for the root.
func (b *Block) Parent() *Block {
	return b.parent
}

// AddBlock appends a child block and returns it.
func (b *Block) AddBlock(child *Block) *Block {
	child.parent = b
	b.Blocks = append(b.Blocks, child)
	return child
}

// AddRun appends an inline run and returns it.
func (b *Block) AddRun(r *Run) *Run {
	r.block = b
	b.Runs = append(b.Runs, r)
	return r
}

// ContentLeft returns the left edge of the content box.
func (b *Block) ContentLeft() float64 {
	return b.Box.Left + b.Padding
}

// ContentRight returns the right edge of the content box.
func (b *Block) ContentRight() float64 {
	return b.Box.Right() - b.Padding
}

// Run is an inline text run. A run wraps into one or more LineBoxes when the
// document is laid out; until then Boxes is nil.
type Run struct {
	Text string

	Bold   bool
	Italic bool
	Code   bool

	// Interactive marks runs a click would activate (links, buttons).
	// The merger skips these so an underline overlay never rides over a link.
	Interactive bool

	// Editable marks text inside an input region. The sampler refuses to
	// sample editable runs. Nothing in the markdown path sets this; embedding
	// callers can.
	Editable bool

	// Href is set for link runs.
	Href string

	block *Block
	Boxes []LineBox
}

// Block returns the run's containing block.
func (r *Run) Block() *Block {
	return r.block
}

// LineBox is one wrapped fragment of a run: the text that landed on a single
// visual row and its rectangle in document coordinates.
type LineBox struct {
	Rect Rect
	Text string
}

// Document is an ordered tree of blocks plus the results of the last Layout
// call. Coordinates everywhere are document-space cells; the viewport maps
// into this space by adding its scroll offset.
type Document struct {
	root *Block

	// Layout results.
	Width  int
	Height float64
	laid   bool
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{root: &Block{Kind: KindRoot}}
}

// Root returns the root block, the fallback boundary for line detection.
func (d *Document) Root() *Block {
	return d.root
}

// Laid reports whether the document has been laid out.
func (d *Document) Laid() bool {
	return d.laid
}

// eachRun visits every run in document order.
func (d *Document) eachRun(fn func(*Run) bool) {
	var walk func(b *Block) bool
	walk = func(b *Block) bool {
		for _, r := range b.Runs {
			if !fn(r) {
				return false
			}
		}
		for _, c := range b.Blocks {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(d.root)
}

// Hit is the result of a successful HitTest: the run and fragment under a
// point, and the column offset into the fragment's text.
type Hit struct {
	Run    *Run
	Box    LineBox
	Column int
}

// HitTest resolves the text under a document-space point. It returns nil when
// the point is over whitespace, padding, or no text at all - callers treat
// that as a normal state, not an error.
func (d *Document) HitTest(x, y float64) *Hit {
	if !d.laid {
		return nil
	}
	var hit *Hit
	d.eachRun(func(r *Run) bool {
		for _, box := range r.Boxes {
			if box.Rect.Contains(x, y) {
				hit = &Hit{Run: r, Box: box, Column: int(x - box.Rect.Left)}
				return false
			}
		}
		return true
	})
	return hit
}
