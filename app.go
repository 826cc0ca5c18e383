package glide

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FrameInterval is the tick the followers and RSVP clock run on (~30fps).
const FrameInterval = 33 * time.Millisecond

// DetectInterval is the minimum gap between detection passes. Mouse motion
// arrives much faster than detection is worth paying for; the gate bounds CPU
// cost, not correctness.
const DetectInterval = 30 * time.Millisecond

type frameMsg time.Time

type busMsg struct{ inner Message }

// App is the content surface: the document viewport plus the overlay
// features, driven by one bubbletea event loop. All feature state lives here;
// the store is reached only through the bus.
type App struct {
	doc   *Document
	title string
	theme Theme

	settings Settings
	keymap   *Keymap
	bus      *Bus

	pacer   *Pacer
	dimmer  *Dimmer
	rsvp    *RSVP
	toaster *Toaster

	width, height int
	scrollY       int

	lastDetect time.Time
	pointerX   int
	pointerY   int
	pointerOK  bool

	// navCenter tracks the last keyboard-navigated line, NaN when idle.
	navCenter float64

	panel *SettingsPanel

	busCh     <-chan Message
	busCancel func()
}

// NewApp wires the content surface. The bus may be shared with a Controller;
// the app never writes the store itself.
func NewApp(doc *Document, title string, settings Settings, theme Theme, bus *Bus) *App {
	settings = settings.Normalize()
	a := &App{
		doc:       doc,
		title:     title,
		theme:     theme,
		settings:  settings,
		keymap:    settings.Keymap(),
		bus:       bus,
		pacer:     NewPacer(settings, theme),
		dimmer:    NewDimmer(settings, theme),
		rsvp:      NewRSVP(settings, theme),
		toaster:   NewToaster(theme),
		navCenter: math.NaN(),
	}
	a.busCh, a.busCancel = bus.Subscribe()
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.frameCmd(), a.waitBus())
}

func (a *App) frameCmd() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (a *App) waitBus() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-a.busCh
		if !ok {
			return nil
		}
		return busMsg{inner: msg}
	}
}

// contentHeight is the viewport height; the bottom row is the status bar.
func (a *App) contentHeight() int {
	if a.height <= 1 {
		return a.height
	}
	return a.height - 1
}

// viewportRect is the visible document region in document coordinates.
func (a *App) viewportRect() Rect {
	return Rect{
		Top:    float64(a.scrollY),
		Left:   0,
		Width:  float64(a.width),
		Height: float64(a.contentHeight()),
	}
}

func (a *App) maxScroll() int {
	m := int(a.doc.Height) - a.contentHeight()
	if m < 0 {
		return 0
	}
	return m
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.doc.Layout(a.width)
		if a.scrollY > a.maxScroll() {
			a.scrollY = a.maxScroll()
		}
		// Relayout moved everything; followers restart from neutral.
		if a.pacer.Enabled() {
			a.pacer.Enable(a.viewportRect())
		}
		if a.dimmer.Enabled() {
			a.dimmer.Enable(a.viewportRect())
		}
		return a, nil

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case frameMsg:
		a.pacer.Tick()
		a.dimmer.Tick()
		a.rsvp.Tick(FrameInterval)
		return a, a.frameCmd()

	case busMsg:
		a.handleBus(msg.inner)
		return a, a.waitBus()
	}
	return a, nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.scrollBy(-3)
		return nil
	case tea.MouseButtonWheelDown:
		a.scrollBy(3)
		return nil
	}
	if msg.Action != tea.MouseActionMotion {
		return nil
	}

	a.pointerX, a.pointerY = msg.X, msg.Y
	a.pointerOK = true

	now := time.Now()
	if now.Sub(a.lastDetect) < DetectInterval {
		return nil
	}
	a.lastDetect = now

	docY := float64(msg.Y + a.scrollY)
	a.pacer.HandleMotion(a.doc, float64(msg.X), docY)
	a.dimmer.HandleMotion(a.doc, float64(msg.X), docY)
	return nil
}

// scrollBy moves the viewport and suspends the overlays: they must not swim
// across repositioned content, and only a fresh pointer move brings them back.
func (a *App) scrollBy(delta int) {
	y := a.scrollY + delta
	if y < 0 {
		y = 0
	}
	if y > a.maxScroll() {
		y = a.maxScroll()
	}
	if y == a.scrollY {
		return
	}
	a.scrollY = y
	a.pacer.Suspend()
	a.dimmer.Suspend()
	a.navCenter = math.NaN()
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.panel != nil {
		if a.panel.HandleKey(msg) {
			if a.panel.Changed() {
				a.bus.Publish(UpdateSettings{Settings: a.panel.Settings()})
			}
			a.panel = nil
		}
		return nil
	}

	action, ok := a.keymap.Dispatch(ChordFromKey(msg))
	if !ok {
		return nil
	}
	return a.perform(action)
}

func (a *App) perform(action Action) tea.Cmd {
	switch action {
	case ActionTogglePacer:
		on := !a.pacer.Enabled()
		a.setPacer(on)
		a.toast("pacer " + onOff(on))
		a.bus.Publish(FeatureToggled{Feature: "pacer", Enabled: on})

	case ActionToggleDimmer:
		on := !a.dimmer.Enabled()
		a.setDimmer(on)
		a.toast("dimmer " + onOff(on))
		a.bus.Publish(FeatureToggled{Feature: "dimmer", Enabled: on})

	case ActionCycleDimMode:
		mode := DimBand
		if a.dimmer.Mode() == DimBand {
			mode = DimFocusedBox
		}
		a.dimmer.SetMode(mode)
		a.settings.DimMode = mode
		a.toast("dim mode: " + string(mode))
		a.bus.Publish(UpdateSettings{Settings: a.settings})

	case ActionToggleRSVP:
		if a.rsvp.Enabled() {
			a.rsvp.Stop()
			return nil
		}
		block := a.blockUnderPointer()
		if !a.rsvp.Start(a.doc, block) {
			a.toast("nothing to read")
			return nil
		}
		a.settings.Stats.RSVPStarted++

	case ActionRSVPPause:
		a.rsvp.TogglePause()

	case ActionRSVPBack:
		a.rsvp.Back()

	case ActionRSVPForward:
		a.rsvp.Forward()

	case ActionSpeedUp:
		a.rsvp.SetWPM(a.rsvp.WPM() + 25)
		a.settings.RSVPWPM = a.rsvp.WPM()
		a.toast(fmt.Sprintf("%d wpm", a.rsvp.WPM()))
		a.bus.Publish(UpdateSettings{Settings: a.settings})

	case ActionSpeedDown:
		a.rsvp.SetWPM(a.rsvp.WPM() - 25)
		a.settings.RSVPWPM = a.rsvp.WPM()
		a.toast(fmt.Sprintf("%d wpm", a.rsvp.WPM()))
		a.bus.Publish(UpdateSettings{Settings: a.settings})

	case ActionNextLine:
		a.navigateLine(1)

	case ActionPrevLine:
		a.navigateLine(-1)

	case ActionOpenSettings:
		a.settings.Keys = a.keymap.Bindings()
		a.panel = NewSettingsPanel(a.settings, a.theme)

	case ActionQuit:
		a.flushStats()
		a.busCancel()
		return tea.Quit
	}
	return nil
}

// blockUnderPointer resolves the block the pointer last hovered, nil for the
// whole document.
func (a *App) blockUnderPointer() *Block {
	if !a.pointerOK {
		return nil
	}
	sample := SampleAt(a.doc, float64(a.pointerX), float64(a.pointerY+a.scrollY))
	if sample == nil {
		return nil
	}
	return BlockOf(a.doc, sample.Hit.Run)
}

// navigateLine steps the pacer through the visible lines top-to-bottom (or
// back up), turning the pacer on if it was off. At the edges of the viewport
// it scrolls one line and keeps going.
func (a *App) navigateLine(dir int) {
	if !a.pacer.Enabled() {
		a.setPacer(true)
		a.toast("pacer on")
		a.bus.Publish(FeatureToggled{Feature: "pacer", Enabled: true})
	}

	lines := ScanVisibleLines(a.doc, a.viewportRect(), a.settings.DetectConfig())
	if len(lines) == 0 {
		return
	}

	idx := -1
	if !math.IsNaN(a.navCenter) {
		for i, l := range lines {
			if math.Abs(l.CenterY()-a.navCenter) < 0.5 {
				idx = i
				break
			}
		}
	}
	idx += dir
	if idx < 0 {
		a.scrollBy(-1)
		idx = 0
	}
	if idx >= len(lines) {
		a.scrollBy(1)
		idx = len(lines) - 1
	}

	line := lines[idx]
	a.navCenter = line.CenterY()
	a.pacer.follower.SetTarget(line)
}

func (a *App) setPacer(on bool) {
	if on {
		a.pacer.Enable(a.viewportRect())
	} else {
		a.pacer.Disable()
	}
	a.settings.PacerEnabled = on
}

func (a *App) setDimmer(on bool) {
	if on {
		a.dimmer.Enable(a.viewportRect())
	} else {
		a.dimmer.Disable()
	}
	a.settings.DimmerEnabled = on
}

func (a *App) toast(text string) {
	a.toaster.Show(text, DefaultToastDuration)
}

// handleBus applies cross-surface messages.
func (a *App) handleBus(msg Message) {
	switch msg := msg.(type) {
	case SettingsChanged:
		a.applySettings(msg.Settings)
	case StateRequest:
		select {
		case msg.Reply <- StateReply{
			Settings: a.settings,
			PacerOn:  a.pacer.Enabled(),
			DimmerOn: a.dimmer.Enabled(),
			RSVPOn:   a.rsvp.Enabled(),
		}:
		default:
		}
	}
}

// applySettings propagates a settings change into every component through
// its explicit update method.
func (a *App) applySettings(s Settings) {
	a.settings = s
	a.keymap = s.Keymap()
	a.pacer.Apply(s)
	a.dimmer.Apply(s)
	a.rsvp.Apply(s)
	if s.PacerEnabled != a.pacer.Enabled() {
		a.setPacer(s.PacerEnabled)
	}
	if s.DimmerEnabled != a.dimmer.Enabled() {
		a.setDimmer(s.DimmerEnabled)
	}
}

// flushStats folds this session's counters into the persisted statistics.
func (a *App) flushStats() {
	a.settings.Stats.WordsRead += a.rsvp.WordsRead()
	a.settings.Stats.LinesPaced += a.pacer.LinesPaced()
	a.settings.Stats.PacerTicks += a.pacer.Ticks()
	a.settings.Stats.Sessions++
	a.bus.Publish(UpdateSettings{Settings: a.settings})
}

// drawDocument writes every laid-out fragment that intersects the viewport.
func drawDocument(buf *Buffer, doc *Document, theme Theme, scrollY int) {
	view := Rect{
		Top:    float64(scrollY),
		Width:  float64(buf.Width()),
		Height: float64(buf.Height()),
	}
	doc.eachRun(func(r *Run) bool {
		style := theme.RunStyle(r, r.Block())
		for _, box := range r.Boxes {
			if !box.Rect.Intersects(view) {
				continue
			}
			screen := box.Rect.Translate(0, -float64(scrollY))
			buf.WriteString(int(screen.Left), int(screen.Top), box.Text, style)
		}
		return true
	})
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}

	contentH := a.contentHeight()
	var content string
	switch {
	case a.panel != nil:
		content = lipgloss.Place(a.width, contentH, lipgloss.Center, lipgloss.Center, a.panel.View())
	case a.rsvp.Enabled():
		content = lipgloss.Place(a.width, contentH, lipgloss.Center, lipgloss.Center, a.rsvp.View())
	default:
		buf := NewBuffer(a.width, contentH)
		drawDocument(buf, a.doc, a.theme, a.scrollY)
		a.dimmer.Draw(buf, float64(a.scrollY))
		a.pacer.Draw(buf, float64(a.scrollY))
		content = buf.Render()
	}

	return content + "\n" + a.statusBar()
}

func (a *App) statusBar() string {
	left := a.title
	var flags string
	if a.pacer.Enabled() {
		flags += " [pacer]"
	}
	if a.dimmer.Enabled() {
		flags += " [dim:" + string(a.dimmer.Mode()) + "]"
	}
	if a.rsvp.Enabled() {
		flags += fmt.Sprintf(" [rsvp %dwpm]", a.rsvp.WPM())
	}

	pct := 100
	if m := a.maxScroll(); m > 0 {
		pct = a.scrollY * 100 / m
	}
	right := fmt.Sprintf("%3d%%", pct)
	if t := a.toaster.View(time.Now()); t != "" {
		right = t + " " + right
	}

	gap := a.width - lipgloss.Width(left+flags) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	line := fmt.Sprintf(" %s%s%*s%s ", left, flags, gap, "", right)
	return a.theme.StatusBar.Width(a.width).Render(line)
}
