package glide

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme provides the styles for document text and the overlay chrome.
type Theme struct {
	Base    Style // default document text
	Heading Style
	Code    Style
	Link    Style // interactive runs
	Bullet  Style

	// DimGray is the foreground the dimmer pushes de-emphasized cells to.
	DimGray lipgloss.Color

	// PacerBG highlights the pacer line at full opacity.
	PacerBG lipgloss.Color

	// Chrome styles (lipgloss, rendered outside the cell grid).
	StatusBar lipgloss.Style
	Toast     lipgloss.Style
	RSVPCard  lipgloss.Style
	RSVPPivot lipgloss.Style
	Panel     lipgloss.Style
}

// ThemeDark is the default theme for dark terminals.
var ThemeDark = Theme{
	Base:    Style{},
	Heading: Style{FG: lipgloss.Color("14"), Bold: true},
	Code:    Style{FG: lipgloss.Color("10")},
	Link:    Style{FG: lipgloss.Color("12"), Underline: true},
	Bullet:  Style{FG: lipgloss.Color("8")},
	DimGray: lipgloss.Color("240"),
	PacerBG: lipgloss.Color("236"),

	StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("248")).Background(lipgloss.Color("236")),
	Toast:     lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1),
	RSVPCard:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 4),
	RSVPPivot: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	Panel:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 2),
}

// ThemeLight mirrors ThemeDark for light terminals.
var ThemeLight = Theme{
	Base:    Style{},
	Heading: Style{FG: lipgloss.Color("4"), Bold: true},
	Code:    Style{FG: lipgloss.Color("2")},
	Link:    Style{FG: lipgloss.Color("4"), Underline: true},
	Bullet:  Style{FG: lipgloss.Color("7")},
	DimGray: lipgloss.Color("250"),
	PacerBG: lipgloss.Color("254"),

	StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Background(lipgloss.Color("252")),
	Toast:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("3")).Padding(0, 1),
	RSVPCard:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 4),
	RSVPPivot: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	Panel:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 2),
}

// DetectTheme picks a theme from the terminal background.
func DetectTheme() Theme {
	if termenv.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// RunStyle maps a run's flags onto the theme.
func (t Theme) RunStyle(r *Run, block *Block) Style {
	s := t.Base
	switch {
	case r.Interactive:
		s = t.Link
	case r.Code:
		s = t.Code
	case block != nil && block.Kind == KindHeading:
		s = t.Heading
	case r.Text == "•":
		s = t.Bullet
	}
	if r.Bold {
		s.Bold = true
	}
	if r.Italic {
		s.Italic = true
	}
	return s
}
