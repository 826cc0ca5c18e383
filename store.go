package glide

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound reports a key with no stored value.
var ErrNotFound = errors.New("key not found")

// Store is the host key-value store the settings layer sits on. Writes are
// last-write-wins; Watch delivers change notifications to subscribers in the
// same process. No durability or cross-process guarantees.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
	// Watch registers a callback fired after every successful Set. The
	// returned function cancels the registration.
	Watch(fn func(key string)) func()
}

// watchList is the shared subscriber bookkeeping for store implementations.
type watchList struct {
	mu       sync.Mutex
	watchers map[int]func(string)
	nextID   int
}

func (w *watchList) add(fn func(string)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watchers == nil {
		w.watchers = make(map[int]func(string))
	}
	id := w.nextID
	w.nextID++
	w.watchers[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.watchers, id)
	}
}

func (w *watchList) notify(key string) {
	w.mu.Lock()
	fns := make([]func(string), 0, len(w.watchers))
	for _, fn := range w.watchers {
		fns = append(fns, fn)
	}
	w.mu.Unlock()
	for _, fn := range fns {
		fn(key)
	}
}

// MemStore is an in-memory store for tests and ephemeral sessions.
type MemStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	watches watchList
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

// Get implements Store.
func (m *MemStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Set implements Store.
func (m *MemStore) Set(key string, data []byte) error {
	m.mu.Lock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.data[key] = cp
	m.mu.Unlock()
	m.watches.notify(key)
	return nil
}

// Watch implements Store.
func (m *MemStore) Watch(fn func(key string)) func() {
	return m.watches.add(fn)
}

// FileStore persists each key as a file under a directory. Writes go through
// a temp file and rename so a crash never leaves a half-written value.
type FileStore struct {
	dir     string
	watches watchList
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// DefaultStoreDir returns the per-user config directory for glide.
func DefaultStoreDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "glide"), nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".toml")
}

// Get implements Store.
func (f *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Set implements Store.
func (f *FileStore) Set(key string, data []byte) error {
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	f.watches.notify(key)
	return nil
}

// Watch implements Store. Notifications cover writes through this store
// instance only; cross-process watching is out of scope.
func (f *FileStore) Watch(fn func(key string)) func() {
	return f.watches.add(fn)
}
