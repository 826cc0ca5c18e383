package glide

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// RSVP presents one word at a time at a configurable pace, with a highlighted
// pivot letter the eye can anchor on. Timing runs off the same frame tick as
// the followers.
type RSVP struct {
	theme Theme

	words   []string
	idx     int
	enabled bool
	playing bool
	wpm     int

	accum     time.Duration
	wordsRead int
}

// NewRSVP creates an idle reader.
func NewRSVP(s Settings, theme Theme) *RSVP {
	return &RSVP{theme: theme, wpm: s.RSVPWPM}
}

// Apply updates tuning from a settings change.
func (r *RSVP) Apply(s Settings) {
	r.wpm = s.RSVPWPM
}

// SplitWords segments text into presentation words using Unicode word
// boundaries, dropping whitespace-only segments. Punctuation stays attached
// to its neighboring segment where the boundary rules put it.
func SplitWords(text string) []string {
	var words []string
	rest := text
	state := -1
	var seg string
	for len(rest) > 0 {
		seg, rest, state = uniseg.FirstWordInString(rest, state)
		if strings.TrimSpace(seg) == "" {
			continue
		}
		// Bare punctuation segments glue onto the previous word.
		if isPunctSegment(seg) && len(words) > 0 {
			words[len(words)-1] += seg
			continue
		}
		words = append(words, seg)
	}
	return words
}

func isPunctSegment(seg string) bool {
	for _, r := range seg {
		switch r {
		case '.', ',', ';', ':', '!', '?', ')', ']', '"', '\'', '…':
		default:
			return false
		}
	}
	return true
}

// collectText flattens the readable text of a block subtree in order.
func collectText(b *Block) string {
	var sb strings.Builder
	eachRunUnder(b, func(r *Run) {
		if strings.TrimSpace(r.Text) == "" {
			return
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(r.Text)
	})
	return sb.String()
}

// Start loads words from the given block, or the whole document when block
// is nil, and begins playing. Returns false when there is nothing to read.
func (r *RSVP) Start(doc *Document, block *Block) bool {
	if block == nil {
		block = doc.Root()
	}
	words := SplitWords(collectText(block))
	if len(words) == 0 {
		return false
	}
	r.words = words
	r.idx = 0
	r.accum = 0
	r.enabled = true
	r.playing = true
	return true
}

// Stop ends the session.
func (r *RSVP) Stop() {
	r.enabled = false
	r.playing = false
}

// Enabled reports whether a session is active.
func (r *RSVP) Enabled() bool {
	return r.enabled
}

// Playing reports whether the session is advancing.
func (r *RSVP) Playing() bool {
	return r.playing
}

// TogglePause flips play state.
func (r *RSVP) TogglePause() {
	if r.enabled {
		r.playing = !r.playing
	}
}

// Back steps one word backwards and pauses the clock for that word.
func (r *RSVP) Back() {
	if r.idx > 0 {
		r.idx--
	}
	r.accum = 0
}

// Forward steps one word ahead.
func (r *RSVP) Forward() {
	if r.idx < len(r.words)-1 {
		r.idx++
		r.wordsRead++
	}
	r.accum = 0
}

// SetWPM adjusts speed, clamped to a readable range.
func (r *RSVP) SetWPM(wpm int) {
	if wpm < 60 {
		wpm = 60
	}
	if wpm > 1200 {
		wpm = 1200
	}
	r.wpm = wpm
}

// WPM returns the current speed.
func (r *RSVP) WPM() int {
	return r.wpm
}

// WordsRead returns how many words have been presented, for usage stats.
func (r *RSVP) WordsRead() int {
	return r.wordsRead
}

// delayFor returns the display time for a word: the base WPM interval,
// stretched for long words and after clause/sentence punctuation.
func (r *RSVP) delayFor(word string) time.Duration {
	base := time.Minute / time.Duration(r.wpm)
	mult := 1.0
	if uniseg.GraphemeClusterCount(word) > 8 {
		mult *= 1.5
	}
	switch {
	case strings.HasSuffix(word, "."), strings.HasSuffix(word, "!"),
		strings.HasSuffix(word, "?"), strings.HasSuffix(word, "…"):
		mult *= 2.0
	case strings.HasSuffix(word, ","), strings.HasSuffix(word, ";"),
		strings.HasSuffix(word, ":"):
		mult *= 1.3
	}
	return time.Duration(float64(base) * mult)
}

// Tick advances the word clock by one frame interval. At the end of the text
// the session pauses on the last word rather than vanishing.
func (r *RSVP) Tick(dt time.Duration) {
	if !r.enabled || !r.playing {
		return
	}
	r.accum += dt
	if r.accum < r.delayFor(r.Current()) {
		return
	}
	r.accum = 0
	if r.idx >= len(r.words)-1 {
		r.playing = false
		return
	}
	r.idx++
	r.wordsRead++
}

// Current returns the word on display.
func (r *RSVP) Current() string {
	if len(r.words) == 0 {
		return ""
	}
	return r.words[r.idx]
}

// PivotIndex returns the grapheme index the eye should anchor on, roughly
// 30% into the word.
func PivotIndex(word string) int {
	n := uniseg.GraphemeClusterCount(word)
	if n <= 1 {
		return 0
	}
	return (n - 1) * 3 / 10
}

// View renders the reader card: the current word with its pivot grapheme
// highlighted, plus progress and speed.
func (r *RSVP) View() string {
	if !r.enabled {
		return ""
	}
	word := r.Current()
	pivot := PivotIndex(word)

	var sb strings.Builder
	g := uniseg.NewGraphemes(word)
	for i := 0; g.Next(); i++ {
		if i == pivot {
			sb.WriteString(r.theme.RSVPPivot.Render(g.Str()))
		} else {
			sb.WriteString(g.Str())
		}
	}

	state := "playing"
	if !r.playing {
		state = "paused"
	}
	meta := fmt.Sprintf("%d/%d · %d wpm · %s", r.idx+1, len(r.words), r.wpm, state)
	return r.theme.RSVPCard.Render(sb.String() + "\n\n" + meta)
}
