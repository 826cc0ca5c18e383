package glide

import (
	"testing"
	"time"
)

func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	a, cancelA := bus.Subscribe()
	b, cancelB := bus.Subscribe()
	defer cancelA()
	defer cancelB()

	bus.Publish(FeatureToggled{Feature: "pacer", Enabled: true})

	for name, ch := range map[string]<-chan Message{"a": a, "b": b} {
		select {
		case msg := <-ch:
			toggled, ok := msg.(FeatureToggled)
			if !ok || toggled.Feature != "pacer" || !toggled.Enabled {
				t.Errorf("%s: got %+v", name, msg)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s: no message", name)
		}
	}
}

func TestBusCancelClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	cancel()
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}
	// Publishing after cancel must not panic.
	bus.Publish(FeatureToggled{Feature: "dimmer"})
}

func TestBusSlowSubscriberMissesInsteadOfBlocking(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(FeatureToggled{Feature: "pacer"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on slow subscriber")
	}
	// The subscriber got a bounded prefix, not all 100.
	n := 0
	for {
		select {
		case <-ch:
			n++
			continue
		default:
		}
		break
	}
	if n == 0 || n > 16 {
		t.Errorf("got %d buffered messages, want 1..16", n)
	}
}

func TestControllerPersistsToggles(t *testing.T) {
	store := NewMemStore()
	bus := NewBus()
	ctrl := NewController(store, bus)
	if err := ctrl.Start(); err != nil {
		t.Fatal(err)
	}
	defer ctrl.Stop()

	// A surface listening for the announcement.
	sub, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(FeatureToggled{Feature: "pacer", Enabled: true})

	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-sub:
			changed, ok := msg.(SettingsChanged)
			if !ok {
				continue // our own FeatureToggled echo
			}
			if !changed.Settings.PacerEnabled {
				t.Error("announced settings missing the toggle")
			}
			s, err := LoadSettings(store)
			if err != nil {
				t.Fatal(err)
			}
			if !s.PacerEnabled {
				t.Error("toggle not persisted")
			}
			return
		case <-deadline:
			t.Fatal("no SettingsChanged announcement")
		}
	}
}

func TestControllerSettingsSignal(t *testing.T) {
	store := NewMemStore()
	seed := DefaultSettings()
	seed.RSVPWPM = 777
	if err := SaveSettings(store, seed); err != nil {
		t.Fatal(err)
	}

	bus := NewBus()
	ctrl := NewController(store, bus)
	if err := ctrl.Start(); err != nil {
		t.Fatal(err)
	}
	defer ctrl.Stop()

	// Start loads the persisted settings into the signal.
	if got := ctrl.Settings().Get().RSVPWPM; got != 777 {
		t.Errorf("signal after start: RSVPWPM = %d, want 777", got)
	}

	// A persisted toggle shows up in the signal without re-reading the store.
	bus.Publish(FeatureToggled{Feature: "pacer", Enabled: true})
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ctrl.Settings().Get().PacerEnabled {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("signal never picked up the toggle")
}

func TestControllerPersistsUpdates(t *testing.T) {
	store := NewMemStore()
	bus := NewBus()
	ctrl := NewController(store, bus)
	if err := ctrl.Start(); err != nil {
		t.Fatal(err)
	}
	defer ctrl.Stop()

	s := DefaultSettings()
	s.RSVPWPM = 700
	bus.Publish(UpdateSettings{Settings: s})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, err := LoadSettings(store)
		if err == nil && got.RSVPWPM == 700 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("update never persisted")
}
