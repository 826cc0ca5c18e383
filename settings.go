package glide

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// DimMode selects the dimmer's focus region shape.
type DimMode string

const (
	// DimBand keeps a fixed-height horizontal window around the pointer row.
	DimBand DimMode = "band"
	// DimFocusedBox keeps the detected visual line, via the same
	// sampler/merger path the pacer uses.
	DimFocusedBox DimMode = "box"
)

// Settings is the persisted configuration shared by every surface: feature
// toggles, visual parameters, the keybinding table, and usage statistics.
// There is no schema evolution beyond the shallow merge in LoadSettings.
type Settings struct {
	PacerEnabled  bool    `toml:"pacer_enabled"`
	DimmerEnabled bool    `toml:"dimmer_enabled"`
	DimMode       DimMode `toml:"dim_mode"`

	// Visual parameters. Empirically chosen defaults, tunable, not
	// load-bearing.
	Ease            float64 `toml:"ease"`
	ToleranceFactor float64 `toml:"tolerance_factor"`
	MinLineWidth    float64 `toml:"min_line_width"`
	BandHeight      int     `toml:"band_height"`
	InstantHide     bool    `toml:"instant_hide"`

	RSVPWPM int `toml:"rsvp_wpm"`

	Keys map[string]string `toml:"keys"`

	Stats Stats `toml:"stats"`
}

// Stats is the usage counters surface-independent code accumulates.
type Stats struct {
	WordsRead   int `toml:"words_read"`
	PacerTicks  int `toml:"pacer_ticks"`
	Sessions    int `toml:"sessions"`
	LinesPaced  int `toml:"lines_paced"`
	RSVPStarted int `toml:"rsvp_started"`
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		DimMode:         DimBand,
		Ease:            0.15,
		ToleranceFactor: 0.6,
		MinLineWidth:    4,
		BandHeight:      3,
		RSVPWPM:         300,
		Keys:            DefaultKeymap().Bindings(),
	}
}

// Normalize clamps out-of-range values back to usable ones.
func (s Settings) Normalize() Settings {
	if s.Ease <= 0 || s.Ease >= 1 {
		s.Ease = 0.15
	}
	if s.ToleranceFactor <= 0 {
		s.ToleranceFactor = 0.6
	}
	if s.MinLineWidth < 1 {
		s.MinLineWidth = 4
	}
	if s.BandHeight < 1 {
		s.BandHeight = 3
	}
	if s.RSVPWPM < 60 {
		s.RSVPWPM = 60
	}
	if s.RSVPWPM > 1200 {
		s.RSVPWPM = 1200
	}
	if s.DimMode != DimBand && s.DimMode != DimFocusedBox {
		s.DimMode = DimBand
	}
	if s.Keys == nil {
		s.Keys = DefaultKeymap().Bindings()
	}
	return s
}

// DetectConfig derives the detector tuning from the settings, in cell units.
func (s Settings) DetectConfig() DetectConfig {
	cfg := CellDetectConfig()
	cfg.ToleranceFactor = s.ToleranceFactor
	cfg.MinLineWidth = s.MinLineWidth
	return cfg
}

// Keymap materializes the binding table.
func (s Settings) Keymap() *Keymap {
	km := DefaultKeymap()
	km.LoadBindings(s.Keys)
	return km
}

// settingsKey is the store key the settings object lives under.
const settingsKey = "settings"

// LoadSettings reads the settings from the store and shallow-merges them
// onto the defaults: fields absent from the stored document keep their
// default value, present fields win. A missing key yields the defaults.
func LoadSettings(store Store) (Settings, error) {
	s := DefaultSettings()
	data, err := store.Get(settingsKey)
	if errors.Is(err, ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("load settings: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}
	return s.Normalize(), nil
}

// SaveSettings writes the whole settings object, last write wins.
func SaveSettings(store Store, s Settings) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := store.Set(settingsKey, buf.Bytes()); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
