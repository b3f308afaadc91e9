// Package props manages the custom pointer properties an add-on attaches to
// host types.
//
// Every property name is prefixed with the add-on namespace, which must be
// set with SetName before the first Add:
//
//	m := props.Default()
//	m.SetName("myaddon")
//	names, err := m.Add("Scene", props.Property{Name: "settings", Type: Settings})
//	// names == []string{"myaddon_settings"}
package props

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/host"
)

var (
	// ErrNoNamespace is returned when the namespace is used before SetName.
	ErrNoNamespace = errors.New("property namespace not set")

	// ErrPropertyNotFound is returned by Get for a missing property.
	ErrPropertyNotFound = errors.New("property not found")
)

// Property is a pointer property to add: Name is unprefixed.
type Property struct {
	Name string
	Type *addon.Class
}

// Managed is a property the manager attached.
type Managed struct {
	Name  string
	Owner host.HostType
}

// Manager tracks properties attached through it.
type Manager struct {
	mu       sync.Mutex
	host     host.PropertyHost
	disabled addon.DisabledChecker
	name     string
	props    []Managed
}

// New creates a manager over a host property system. disabled may be nil.
func New(ph host.PropertyHost, disabled addon.DisabledChecker) *Manager {
	return &Manager{host: ph, disabled: disabled}
}

var (
	defaultManager     *Manager
	defaultManagerOnce sync.Once
)

// Default returns the process-wide manager. It has no host until SetHost
// is called.
func Default() *Manager {
	defaultManagerOnce.Do(func() {
		defaultManager = New(nil, addon.DefaultMarkers())
	})
	return defaultManager
}

// SetHost replaces the host property system.
func (m *Manager) SetHost(ph host.PropertyHost) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.host = ph
}

// SetName sets the namespace. Only the first non-empty name takes effect.
func (m *Manager) SetName(ns string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.name != "" {
		return
	}
	m.name = ns
}

// Name returns the namespace, or "" before SetName.
func (m *Manager) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}

// Add attaches each property to owner under "<namespace>_<name>" and
// returns the attached names. Properties whose type is disabled are
// skipped.
func (m *Manager) Add(owner host.HostType, props ...Property) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.name == "" {
		return nil, fmt.Errorf("add: %w; call SetName first", ErrNoNamespace)
	}
	if m.host == nil {
		return nil, fmt.Errorf("add: no property host")
	}

	names := make([]string, 0, len(props))
	for _, p := range props {
		if p.Type == nil {
			return names, fmt.Errorf("property %s: %w", p.Name, addon.ErrNilClass)
		}
		if m.disabled != nil && m.disabled.IsDisabled(p.Type) {
			continue
		}
		full := m.name + "_" + p.Name
		if err := m.host.AttachPointer(owner, full, p.Type); err != nil {
			return names, fmt.Errorf("property %s.%s: %w", owner, full, err)
		}
		names = append(names, full)
		m.props = append(m.props, Managed{Name: full, Owner: owner})
	}
	return names, nil
}

// Get reads a property from src. With mangle set, a name that does not
// already carry the namespace prefix gets it.
func (m *Manager) Get(src host.PropertySource, attr string, mangle bool) (any, error) {
	m.mu.Lock()
	ns := m.name
	m.mu.Unlock()

	if ns == "" {
		return nil, fmt.Errorf("get: %w; call SetName first", ErrNoNamespace)
	}

	name := attr
	if mangle && !strings.HasPrefix(attr, ns+"_") {
		name = ns + "_" + attr
	}
	if v, ok := src.Property(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrPropertyNotFound, attr)
}

// Delete detaches the named (prefixed) property. It reports whether the
// property was attached through this manager.
func (m *Manager) Delete(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.props {
		if p.Name != name {
			continue
		}
		if m.host != nil {
			_ = m.host.DetachPointer(p.Owner, p.Name)
		}
		m.props = append(m.props[:i], m.props[i+1:]...)
		return true
	}
	return false
}

// Properties returns the attached properties in order.
func (m *Manager) Properties() []Managed {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Managed, len(m.props))
	copy(out, m.props)
	return out
}

// Unregister detaches every property. The list is cleared even when the
// host rejects a removal; those errors are returned joined.
func (m *Manager) Unregister() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, p := range m.props {
		if m.host == nil {
			break
		}
		if err := m.host.DetachPointer(p.Owner, p.Name); err != nil {
			errs = append(errs, err)
		}
	}
	m.props = nil
	return errors.Join(errs...)
}
