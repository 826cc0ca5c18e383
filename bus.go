package glide

import "sync"

// Message is a one-shot notification between surfaces. Delivery is
// best-effort fan-out with no ordering or transactional guarantee beyond
// last-write-wins on the store underneath.
type Message interface {
	message()
}

// UpdateSettings asks the background controller to persist a replacement
// settings object.
type UpdateSettings struct {
	Settings Settings
}

// SettingsChanged announces that the persisted settings object changed.
// Published only by the controller, after the write landed.
type SettingsChanged struct {
	Settings Settings
}

// FeatureToggled announces that a surface flipped a feature.
type FeatureToggled struct {
	Feature string // "pacer", "dimmer", "rsvp"
	Enabled bool
}

// StateRequest asks the content surface for its current state. The reply
// arrives on the embedded channel.
type StateRequest struct {
	Reply chan StateReply
}

// StateReply is the content surface's answer to a StateRequest.
type StateReply struct {
	Settings Settings
	PacerOn  bool
	DimmerOn bool
	RSVPOn   bool
}

func (UpdateSettings) message()  {}
func (SettingsChanged) message() {}
func (FeatureToggled) message()  {}
func (StateRequest) message()    {}

// Bus fans messages out to every subscriber. A subscriber that falls behind
// misses messages rather than blocking the publisher.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan Message
	nextID int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Message)}
}

// Subscribe returns a message channel and its cancel function.
func (b *Bus) Subscribe() (<-chan Message, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan Message, 16)
	b.subs[id] = ch
	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if old, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(old)
		}
	}
}

// Publish delivers msg to every subscriber without blocking.
func (b *Bus) Publish(msg Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}
