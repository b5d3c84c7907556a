package render

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// ErrUnknownDriver is returned for renderer names that were never registered.
var ErrUnknownDriver = errors.New("render: unknown driver")

// Factory builds a renderer on first use.
type Factory func() (Renderer, error)

// Manager resolves renderers by driver name and caches them.
type Manager struct {
	mu        sync.RWMutex
	def       string
	factories map[string]Factory
	drivers   map[string]Renderer
}

// NewManager returns a Manager with the bootstrap and tailwind drivers
// registered and def as the default driver.
func NewManager(def string) *Manager {
	m := &Manager{
		def:       def,
		factories: make(map[string]Factory),
		drivers:   make(map[string]Renderer),
	}
	m.Register("bootstrap", func() (Renderer, error) { return NewBootstrap(), nil })
	m.Register("tailwind", func() (Renderer, error) { return NewTailwind(), nil })
	return m
}

// Register adds or replaces a driver.
func (m *Manager) Register(name string, f Factory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.factories[name] = f
	delete(m.drivers, name)
}

// DefaultDriver returns the name used when Driver is called with "".
func (m *Manager) DefaultDriver() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.def
}

// SetDefaultDriver changes the default driver name.
func (m *Manager) SetDefaultDriver(name string) {
	m.mu.Lock()
	m.def = name
	m.mu.Unlock()
}

// Has reports whether name is registered.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.factories[name]
	return ok
}

// Drivers lists the registered driver names.
func (m *Manager) Drivers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.factories))
	for name := range m.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Driver returns the renderer registered as name, or the default one.
func (m *Manager) Driver(name string) (Renderer, error) {
	if name == "" {
		name = m.DefaultDriver()
	}

	m.mu.RLock()
	r, ok := m.drivers[name]
	m.mu.RUnlock()
	if ok {
		return r, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.drivers[name]; ok {
		return r, nil
	}
	f, ok := m.factories[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDriver, "driver %q", name)
	}
	r, err := f()
	if err != nil {
		return nil, errors.Wrapf(err, "create driver %q", name)
	}
	m.drivers[name] = r
	return r, nil
}

// Default returns the default renderer.
func (m *Manager) Default() (Renderer, error) {
	return m.Driver("")
}
