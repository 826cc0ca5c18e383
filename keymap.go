package glide

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// Action names something a shortcut can trigger.
type Action string

const (
	ActionTogglePacer  Action = "toggle-pacer"
	ActionToggleDimmer Action = "toggle-dimmer"
	ActionCycleDimMode Action = "cycle-dim-mode"
	ActionToggleRSVP   Action = "toggle-rsvp"
	ActionRSVPPause    Action = "rsvp-pause"
	ActionRSVPBack     Action = "rsvp-back"
	ActionRSVPForward  Action = "rsvp-forward"
	ActionSpeedUp      Action = "speed-up"
	ActionSpeedDown    Action = "speed-down"
	ActionNextLine     Action = "next-line"
	ActionPrevLine     Action = "prev-line"
	ActionOpenSettings Action = "open-settings"
	ActionQuit         Action = "quit"
)

// Chord is a physical key code plus modifier flags. Comparable, so the
// dispatcher is a flat map lookup.
type Chord struct {
	Code  string // "p", "tab", "up", "space", ...
	Ctrl  bool
	Alt   bool
	Shift bool
}

// String formats the chord in ctrl+shift+p order.
func (c Chord) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	parts = append(parts, c.Code)
	return strings.Join(parts, "+")
}

// ParseChord parses "ctrl+shift+p" style strings. The final segment is the
// key code; earlier segments must be modifiers.
func ParseChord(s string) (Chord, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return Chord{}, fmt.Errorf("empty chord %q", s)
	}
	parts := strings.Split(trimmed, "+")
	code := parts[len(parts)-1]
	parts = parts[:len(parts)-1]
	if code == "" {
		// A trailing separator means the key itself is "+" ("+", "ctrl++").
		code = "+"
		if len(parts) > 0 {
			parts = parts[:len(parts)-1]
		}
	}
	var c Chord
	for _, p := range parts {
		switch p {
		case "ctrl":
			c.Ctrl = true
		case "alt", "meta":
			c.Alt = true
		case "shift":
			c.Shift = true
		default:
			return Chord{}, fmt.Errorf("unknown modifier %q in chord %q", p, s)
		}
	}
	c.Code = code
	return c, nil
}

// ChordFromKey converts a bubbletea key event into a chord. Uppercase letters
// fold into shift+lowercase so that table entries match regardless of how the
// terminal reports them.
func ChordFromKey(msg tea.KeyMsg) Chord {
	s := msg.String()
	var c Chord
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+"):
			c.Ctrl = true
			s = strings.TrimPrefix(s, "ctrl+")
		case strings.HasPrefix(s, "alt+"):
			c.Alt = true
			s = strings.TrimPrefix(s, "alt+")
		case strings.HasPrefix(s, "shift+"):
			c.Shift = true
			s = strings.TrimPrefix(s, "shift+")
		default:
			if s == " " {
				s = "space"
			}
			runes := []rune(s)
			if len(runes) == 1 && unicode.IsUpper(runes[0]) {
				c.Shift = true
				s = string(unicode.ToLower(runes[0]))
			}
			c.Code = s
			return c
		}
	}
}

// Keymap is the user-configurable shortcut table: one chord per action, flat
// lookup, no chord sequences. Binding a chord that another action already
// holds steals it (last write wins), mirroring how the settings store behaves.
type Keymap struct {
	byAction map[Action]Chord
	byChord  map[Chord]Action
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{
		byAction: make(map[Action]Chord),
		byChord:  make(map[Chord]Action),
	}
}

// DefaultKeymap returns the stock bindings.
func DefaultKeymap() *Keymap {
	km := NewKeymap()
	for action, chord := range map[Action]string{
		ActionTogglePacer:  "p",
		ActionToggleDimmer: "d",
		ActionCycleDimMode: "shift+d",
		ActionToggleRSVP:   "r",
		ActionRSVPPause:    "space",
		ActionRSVPBack:     "left",
		ActionRSVPForward:  "right",
		ActionSpeedUp:      "+",
		ActionSpeedDown:    "-",
		ActionNextLine:     "j",
		ActionPrevLine:     "k",
		ActionOpenSettings: "s",
		ActionQuit:         "q",
	} {
		c, _ := ParseChord(chord)
		km.Bind(action, c)
	}
	return km
}

// Bind assigns a chord to an action, displacing any previous holder of the
// chord and any previous chord of the action.
func (km *Keymap) Bind(action Action, chord Chord) {
	if old, ok := km.byAction[action]; ok {
		delete(km.byChord, old)
	}
	if prev, ok := km.byChord[chord]; ok {
		delete(km.byAction, prev)
	}
	km.byAction[action] = chord
	km.byChord[chord] = action
}

// ChordFor returns the chord bound to an action.
func (km *Keymap) ChordFor(action Action) (Chord, bool) {
	c, ok := km.byAction[action]
	return c, ok
}

// Dispatch matches a chord against the table.
func (km *Keymap) Dispatch(chord Chord) (Action, bool) {
	a, ok := km.byChord[chord]
	return a, ok
}

// Bindings returns the table as action -> chord string, sorted by action.
// This is the settings-file representation.
func (km *Keymap) Bindings() map[string]string {
	out := make(map[string]string, len(km.byAction))
	for a, c := range km.byAction {
		out[string(a)] = c.String()
	}
	return out
}

// LoadBindings merges a settings-file table into the keymap. Unparseable
// chords are skipped; entries are applied in sorted order so that collisions
// resolve deterministically.
func (km *Keymap) LoadBindings(bindings map[string]string) {
	actions := make([]string, 0, len(bindings))
	for a := range bindings {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	for _, a := range actions {
		c, err := ParseChord(bindings[a])
		if err != nil {
			continue
		}
		km.Bind(Action(a), c)
	}
}

// Clone returns an independent copy of the keymap.
func (km *Keymap) Clone() *Keymap {
	out := NewKeymap()
	for a, c := range km.byAction {
		out.Bind(a, c)
	}
	return out
}
