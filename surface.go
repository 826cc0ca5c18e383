package glide

// Controller is the background surface: the one owner of the settings store.
// Other surfaces never write the store directly - they publish messages, the
// controller merges and persists, then announces the result. Persistence is
// last-write-wins; there is no transactional guarantee.
type Controller struct {
	store    Store
	bus      *Bus
	settings *Signal[Settings]

	msgs      <-chan Message
	cancelBus func()
	unwatch   func()
	done      chan struct{}
}

// NewController wires a controller to a store and bus.
func NewController(store Store, bus *Bus) *Controller {
	return &Controller{
		store:    store,
		bus:      bus,
		settings: NewSignal(DefaultSettings()),
	}
}

// Settings is the controller's live view of the persisted settings.
// Same-process surfaces can Get it synchronously or Subscribe for changes
// instead of re-reading the store.
func (c *Controller) Settings() *Signal[Settings] {
	return c.settings
}

// Start loads the persisted settings and begins processing messages and store
// change notifications. The returned error reports a failed initial load; the
// controller still runs on defaults.
func (c *Controller) Start() error {
	s, err := LoadSettings(c.store)
	c.settings.Set(s)

	c.msgs, c.cancelBus = c.bus.Subscribe()
	c.unwatch = c.store.Watch(func(key string) {
		if key != settingsKey {
			return
		}
		// An external write: re-read and fan out.
		s, err := LoadSettings(c.store)
		if err != nil {
			return
		}
		c.settings.Set(s)
		c.bus.Publish(SettingsChanged{Settings: s})
	})
	c.done = make(chan struct{})
	go c.loop()
	return err
}

// Stop shuts the controller down, deregistering symmetrically.
func (c *Controller) Stop() {
	if c.unwatch != nil {
		c.unwatch()
		c.unwatch = nil
	}
	if c.cancelBus != nil {
		c.cancelBus()
		c.cancelBus = nil
	}
	if c.done != nil {
		<-c.done
	}
}

func (c *Controller) loop() {
	defer close(c.done)
	for msg := range c.msgs {
		switch msg := msg.(type) {
		case FeatureToggled:
			s := c.settings.Get()
			switch msg.Feature {
			case "pacer":
				s.PacerEnabled = msg.Enabled
			case "dimmer":
				s.DimmerEnabled = msg.Enabled
			}
			// Saving triggers the store watch, which updates the signal and
			// fans out SettingsChanged to every surface.
			_ = SaveSettings(c.store, s)

		case UpdateSettings:
			// A surface replaced the whole object (e.g. the options
			// panel). Persist as-is; the watch announces it.
			_ = SaveSettings(c.store, msg.Settings.Normalize())
		}
	}
}
