package glide

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SettingsPanel is the options surface: a modal list of tunables and
// rebindable shortcuts. It edits a copy of the settings; the caller publishes
// the result when the panel closes with changes.
type SettingsPanel struct {
	theme    Theme
	settings Settings
	keymap   *Keymap

	idx       int
	capturing bool
	changed   bool
}

// panelActions are the rebindable shortcuts, in display order.
var panelActions = []Action{
	ActionTogglePacer,
	ActionToggleDimmer,
	ActionCycleDimMode,
	ActionToggleRSVP,
	ActionRSVPPause,
	ActionSpeedUp,
	ActionSpeedDown,
	ActionNextLine,
	ActionPrevLine,
	ActionOpenSettings,
	ActionQuit,
}

// panelTunables is the count of non-keybinding rows before the shortcut list.
const panelTunables = 6

// NewSettingsPanel opens a panel over a copy of the settings.
func NewSettingsPanel(s Settings, theme Theme) *SettingsPanel {
	return &SettingsPanel{
		theme:    theme,
		settings: s,
		keymap:   s.Keymap(),
	}
}

// Settings returns the edited settings.
func (p *SettingsPanel) Settings() Settings {
	p.settings.Keys = p.keymap.Bindings()
	return p.settings
}

// Changed reports whether anything was edited.
func (p *SettingsPanel) Changed() bool {
	return p.changed
}

func (p *SettingsPanel) rowCount() int {
	return panelTunables + len(panelActions)
}

// HandleKey processes a key event. Returns true when the panel should close.
// While capturing, the next key - whatever it is - becomes the binding for
// the selected action.
func (p *SettingsPanel) HandleKey(msg tea.KeyMsg) bool {
	if p.capturing {
		chord := ChordFromKey(msg)
		action := panelActions[p.idx-panelTunables]
		p.keymap.Bind(action, chord)
		p.capturing = false
		p.changed = true
		return false
	}

	switch msg.String() {
	case "esc", "q":
		return true
	case "up", "k":
		if p.idx > 0 {
			p.idx--
		}
	case "down", "j":
		if p.idx < p.rowCount()-1 {
			p.idx++
		}
	case "enter":
		if p.idx >= panelTunables {
			p.capturing = true
		}
	case "left", "h":
		p.adjust(-1)
	case "right", "l":
		p.adjust(1)
	}
	return false
}

// adjust nudges the selected tunable.
func (p *SettingsPanel) adjust(dir int) {
	s := &p.settings
	switch p.idx {
	case 0:
		s.PacerEnabled = !s.PacerEnabled
	case 1:
		s.DimmerEnabled = !s.DimmerEnabled
	case 2:
		if s.DimMode == DimBand {
			s.DimMode = DimFocusedBox
		} else {
			s.DimMode = DimBand
		}
	case 3:
		s.Ease += 0.01 * float64(dir)
		if s.Ease < 0.05 {
			s.Ease = 0.05
		}
		if s.Ease > 0.5 {
			s.Ease = 0.5
		}
	case 4:
		s.BandHeight += dir
		if s.BandHeight < 1 {
			s.BandHeight = 1
		}
		if s.BandHeight > 15 {
			s.BandHeight = 15
		}
	case 5:
		s.RSVPWPM += 25 * dir
		*s = s.Normalize()
	default:
		return
	}
	p.changed = true
}

// View renders the panel.
func (p *SettingsPanel) View() string {
	s := p.settings
	rows := []string{
		fmt.Sprintf("pacer           %s", onOff(s.PacerEnabled)),
		fmt.Sprintf("dimmer          %s", onOff(s.DimmerEnabled)),
		fmt.Sprintf("dim mode        %s", s.DimMode),
		fmt.Sprintf("ease            %.2f", s.Ease),
		fmt.Sprintf("band height     %d", s.BandHeight),
		fmt.Sprintf("rsvp speed      %d wpm", s.RSVPWPM),
	}
	for i, action := range panelActions {
		chord, _ := p.keymap.ChordFor(action)
		label := fmt.Sprintf("%-15s %s", action, chord)
		if p.capturing && p.idx == panelTunables+i {
			label = fmt.Sprintf("%-15s press a key...", action)
		}
		rows = append(rows, label)
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("settings"))
	sb.WriteString("\n\n")
	for i, row := range rows {
		marker := "  "
		if i == p.idx {
			marker = "> "
		}
		sb.WriteString(marker + row + "\n")
		if i == panelTunables-1 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n↑/↓ select · ←/→ adjust · enter rebind · esc close")
	return p.theme.Panel.Render(sb.String())
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
