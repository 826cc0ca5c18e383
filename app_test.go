package glide

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func testApp(t *testing.T) (*App, <-chan Message) {
	t.Helper()
	doc := ParseText([]byte(strings.Repeat("a paragraph of readable text\n\n", 10)))
	bus := NewBus()
	app := NewApp(doc, "test", DefaultSettings(), ThemeDark, bus)
	sub, cancel := bus.Subscribe()
	t.Cleanup(cancel)
	app.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	return app, sub
}

// nextMsg drains our test subscription, skipping nothing.
func nextMsg(t *testing.T, sub <-chan Message) Message {
	t.Helper()
	select {
	case msg := <-sub:
		return msg
	default:
		t.Fatal("no bus message published")
		return nil
	}
}

func TestAppTogglePacer(t *testing.T) {
	app, sub := testApp(t)

	app.Update(keyRune('p'))
	if !app.pacer.Enabled() {
		t.Fatal("pacer not enabled")
	}
	msg, ok := nextMsg(t, sub).(FeatureToggled)
	if !ok || msg.Feature != "pacer" || !msg.Enabled {
		t.Errorf("published %+v, want pacer on", msg)
	}

	app.Update(keyRune('p'))
	if app.pacer.Enabled() {
		t.Error("second press should disable")
	}
}

func TestAppScrollClamps(t *testing.T) {
	app, _ := testApp(t)

	app.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	if app.scrollY != 0 {
		t.Errorf("scrollY = %d after wheel up at top, want 0", app.scrollY)
	}

	for i := 0; i < 100; i++ {
		app.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	}
	if app.scrollY != app.maxScroll() {
		t.Errorf("scrollY = %d, want clamp at %d", app.scrollY, app.maxScroll())
	}
}

func TestAppScrollSuspendsOverlays(t *testing.T) {
	app, _ := testApp(t)
	app.Update(keyRune('p'))
	app.pacer.follower.SetTarget(Rect{Top: 2, Left: 0, Width: 20, Height: 1})

	app.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if app.pacer.follower.hasTarget {
		t.Error("scroll should clear the pacer target")
	}
}

func TestAppLineNavigation(t *testing.T) {
	app, _ := testApp(t)

	app.Update(keyRune('j'))
	if !app.pacer.Enabled() {
		t.Fatal("line navigation should switch the pacer on")
	}
	first := app.navCenter

	app.Update(keyRune('j'))
	if app.navCenter <= first {
		t.Errorf("navCenter %v after second step, want below %v", app.navCenter, first)
	}

	app.Update(keyRune('k'))
	if app.navCenter != first {
		t.Errorf("navCenter %v after stepping back, want %v", app.navCenter, first)
	}
}

func TestAppSettingsChangedApplies(t *testing.T) {
	app, _ := testApp(t)

	s := app.settings
	s.PacerEnabled = true
	s.RSVPWPM = 500
	app.handleBus(SettingsChanged{Settings: s})

	if !app.pacer.Enabled() {
		t.Error("remote settings change should enable the pacer")
	}
	if app.rsvp.WPM() != 500 {
		t.Errorf("rsvp wpm = %d, want 500", app.rsvp.WPM())
	}

	// Idempotent: applying the same settings again changes nothing.
	app.handleBus(SettingsChanged{Settings: s})
	if !app.pacer.Enabled() {
		t.Error("re-applying identical settings flipped the pacer")
	}
}

func TestAppStateRequest(t *testing.T) {
	app, _ := testApp(t)
	app.Update(keyRune('p'))

	reply := make(chan StateReply, 1)
	app.handleBus(StateRequest{Reply: reply})

	got := <-reply
	if !got.PacerOn {
		t.Error("state reply missing pacer enablement")
	}
}

func TestAppQuitFlushesStats(t *testing.T) {
	app, sub := testApp(t)
	app.Update(keyRune('j')) // enables pacer, locks a line
	<-sub                    // the FeatureToggled from auto-enable
	app.Update(frameMsg(time.Now()))
	app.Update(frameMsg(time.Now()))

	cmd := app.perform(ActionQuit)
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	update, ok := nextMsg(t, sub).(UpdateSettings)
	if !ok {
		t.Fatal("quit should publish an UpdateSettings flush")
	}
	if update.Settings.Stats.Sessions != 1 {
		t.Errorf("Sessions = %d, want 1", update.Settings.Stats.Sessions)
	}
	if update.Settings.Stats.LinesPaced != app.pacer.LinesPaced() {
		t.Errorf("LinesPaced = %d, want %d", update.Settings.Stats.LinesPaced, app.pacer.LinesPaced())
	}
	if got := update.Settings.Stats.PacerTicks; got != 2 {
		t.Errorf("PacerTicks = %d after two frames, want 2", got)
	}
}

func TestAppViewRenders(t *testing.T) {
	app, _ := testApp(t)
	view := app.View()
	if view == "" {
		t.Fatal("empty view")
	}
	if !strings.Contains(view, "readable text") {
		t.Error("document text missing from view")
	}
	if !strings.Contains(view, "test") {
		t.Error("title missing from status bar")
	}
}

func TestAppOpensPanel(t *testing.T) {
	app, sub := testApp(t)
	app.Update(keyRune('s'))
	if app.panel == nil {
		t.Fatal("panel not open")
	}

	// Keys route to the panel, not the dispatcher.
	app.Update(tea.KeyMsg{Type: tea.KeyRight}) // toggles pacer row
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.panel != nil {
		t.Fatal("panel still open after esc")
	}

	update, ok := nextMsg(t, sub).(UpdateSettings)
	if !ok {
		t.Fatal("closing a changed panel should publish UpdateSettings")
	}
	if !update.Settings.PacerEnabled {
		t.Error("panel edit lost on close")
	}
}
