package glide

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestParseChord(t *testing.T) {
	cases := []struct {
		in   string
		want Chord
	}{
		{"p", Chord{Code: "p"}},
		{"ctrl+p", Chord{Code: "p", Ctrl: true}},
		{"ctrl+shift+p", Chord{Code: "p", Ctrl: true, Shift: true}},
		{"alt+tab", Chord{Code: "tab", Alt: true}},
		{"meta+x", Chord{Code: "x", Alt: true}},
		{"Shift+Up", Chord{Code: "up", Shift: true}},
		{"space", Chord{Code: "space"}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseChord(tc.in)
			if err != nil {
				t.Fatalf("ParseChord(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}

	t.Run("round trip", func(t *testing.T) {
		c := Chord{Code: "d", Ctrl: true, Shift: true}
		back, err := ParseChord(c.String())
		if err != nil {
			t.Fatal(err)
		}
		if back != c {
			t.Errorf("got %+v, want %+v", back, c)
		}
	})

	t.Run("rejects garbage modifiers", func(t *testing.T) {
		if _, err := ParseChord("hyper+x"); err == nil {
			t.Error("expected error for unknown modifier")
		}
	})
}

func TestChordFromKey(t *testing.T) {
	cases := []struct {
		name string
		msg  tea.KeyMsg
		want Chord
	}{
		{"plain rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}, Chord{Code: "p"}},
		{"uppercase folds to shift", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("D")}, Chord{Code: "d", Shift: true}},
		{"ctrl key", tea.KeyMsg{Type: tea.KeyCtrlC}, Chord{Code: "c", Ctrl: true}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, Chord{Code: "space"}},
		{"arrow", tea.KeyMsg{Type: tea.KeyLeft}, Chord{Code: "left"}},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, Chord{Code: "x", Alt: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ChordFromKey(tc.msg); got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestKeymapDispatch(t *testing.T) {
	km := DefaultKeymap()

	t.Run("default binding matches", func(t *testing.T) {
		action, ok := km.Dispatch(Chord{Code: "p"})
		if !ok || action != ActionTogglePacer {
			t.Errorf("got %v/%v, want toggle-pacer", action, ok)
		}
	})

	t.Run("unbound chord misses", func(t *testing.T) {
		if _, ok := km.Dispatch(Chord{Code: "z", Ctrl: true}); ok {
			t.Error("unexpected match for unbound chord")
		}
	})

	t.Run("modifiers distinguish chords", func(t *testing.T) {
		plain, _ := km.Dispatch(Chord{Code: "d"})
		shifted, _ := km.Dispatch(Chord{Code: "d", Shift: true})
		if plain == shifted {
			t.Errorf("d and shift+d dispatched the same action %v", plain)
		}
	})
}

func TestKeymapRebind(t *testing.T) {
	t.Run("rebinding moves the action", func(t *testing.T) {
		km := DefaultKeymap()
		km.Bind(ActionTogglePacer, Chord{Code: "x"})

		if action, ok := km.Dispatch(Chord{Code: "x"}); !ok || action != ActionTogglePacer {
			t.Errorf("new chord: got %v/%v", action, ok)
		}
		if _, ok := km.Dispatch(Chord{Code: "p"}); ok {
			t.Error("old chord still bound")
		}
	})

	t.Run("binding steals a taken chord", func(t *testing.T) {
		km := DefaultKeymap()
		km.Bind(ActionTogglePacer, Chord{Code: "d"}) // d was toggle-dimmer

		if action, _ := km.Dispatch(Chord{Code: "d"}); action != ActionTogglePacer {
			t.Errorf("got %v, want toggle-pacer", action)
		}
		if _, ok := km.ChordFor(ActionToggleDimmer); ok {
			t.Error("displaced action should be unbound")
		}
	})
}

func TestKeymapBindingsRoundTrip(t *testing.T) {
	km := DefaultKeymap()
	km.Bind(ActionQuit, Chord{Code: "c", Ctrl: true})

	loaded := NewKeymap()
	loaded.LoadBindings(km.Bindings())

	for _, action := range []Action{ActionQuit, ActionTogglePacer, ActionNextLine} {
		want, _ := km.ChordFor(action)
		got, ok := loaded.ChordFor(action)
		if !ok || got != want {
			t.Errorf("%s: got %+v/%v, want %+v", action, got, ok, want)
		}
	}

	t.Run("unparseable entries are skipped", func(t *testing.T) {
		loaded := NewKeymap()
		loaded.LoadBindings(map[string]string{"quit": "bogus+q", "next-line": "j"})
		if _, ok := loaded.ChordFor(ActionQuit); ok {
			t.Error("bogus chord should be skipped")
		}
		if _, ok := loaded.ChordFor(ActionNextLine); !ok {
			t.Error("valid entry should load")
		}
	})
}
