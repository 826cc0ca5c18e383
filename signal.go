package glide

import "sync"

// Signal is a single-value container that notifies on change. Surfaces read
// the controller's settings signal instead of ambient globals; the
// unsubscribe handle keeps registration symmetric with the feature lifecycle.
// Listeners run outside the lock, on the goroutine that called Set.
type Signal[T any] struct {
	mu        sync.Mutex
	value     T
	listeners []func(T)
}

// NewSignal creates a signal holding an initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores a new value and notifies every listener.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	fns := make([]func(T), len(s.listeners))
	copy(fns, s.listeners)
	s.mu.Unlock()
	for _, fn := range fns {
		if fn != nil {
			fn(v)
		}
	}
}

// Subscribe adds a change listener and returns an unsubscribe function.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// Zero out to allow GC, don't reorder
		s.listeners[idx] = nil
	}
}
