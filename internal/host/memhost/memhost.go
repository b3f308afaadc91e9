// Package memhost is an in-memory host used by tests and by dry runs of the
// addonctl command.
package memhost

import (
	"fmt"
	"sync"

	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/host"
	"github.com/dshills/addonkit/internal/i18n"
)

// Option configures a Host.
type Option func(*Host)

// WithHeadless makes AddonKeyConfig report no active key configuration.
func WithHeadless() Option {
	return func(h *Host) {
		h.headless = true
	}
}

// Host implements every host collaborator interface in memory.
type Host struct {
	mu sync.Mutex

	registered map[*addon.Class]bool
	order      []*addon.Class
	failures   map[string]error
	log        []string

	headless  bool
	keyconfig *KeyConfig

	pointers     map[host.HostType]map[string]*addon.Class
	translations map[string]i18n.Table
}

// New creates an empty in-memory host.
func New(opts ...Option) *Host {
	h := &Host{
		registered:   make(map[*addon.Class]bool),
		failures:     make(map[string]error),
		keyconfig:    &KeyConfig{},
		pointers:     make(map[host.HostType]map[string]*addon.Class),
		translations: make(map[string]i18n.Table),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Bundle returns h as a host.Host.
func (h *Host) Bundle() host.Host {
	return host.Host{
		Classes:      h,
		KeyConfigs:   h,
		Properties:   h,
		Translations: h,
	}
}

// FailRegister makes the next RegisterClass of the class with idname fail with err.
func (h *Host) FailRegister(idname string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failures[idname] = err
}

// RegisterClass implements host.ClassRegistry.
func (h *Host) RegisterClass(c *addon.Class) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err, ok := h.failures[c.IDName()]; ok {
		delete(h.failures, c.IDName())
		return err
	}
	if h.registered[c] {
		return fmt.Errorf("register %s: %w", c.IDName(), host.ErrAlreadyRegistered)
	}
	h.registered[c] = true
	h.order = append(h.order, c)
	h.log = append(h.log, "register "+c.IDName())
	return nil
}

// UnregisterClass implements host.ClassRegistry.
func (h *Host) UnregisterClass(c *addon.Class) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.registered[c] {
		return fmt.Errorf("unregister %s: %w", c.IDName(), host.ErrNotRegistered)
	}
	delete(h.registered, c)
	for i, rc := range h.order {
		if rc == c {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	h.log = append(h.log, "unregister "+c.IDName())
	return nil
}

// Registered returns the registered classes in registration order.
func (h *Host) Registered() []*addon.Class {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*addon.Class, len(h.order))
	copy(out, h.order)
	return out
}

// IsRegistered reports whether c is currently registered.
func (h *Host) IsRegistered(c *addon.Class) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.registered[c]
}

// Log returns every class registry call in the order it succeeded.
func (h *Host) Log() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.log))
	copy(out, h.log)
	return out
}

// AddonKeyConfig implements host.KeyConfigs.
func (h *Host) AddonKeyConfig() (host.KeyConfig, bool) {
	if h.headless {
		return nil, false
	}
	return h.keyconfig, true
}

// KeyConfig returns the add-on key configuration regardless of headless mode.
func (h *Host) KeyConfig() *KeyConfig {
	return h.keyconfig
}

// AttachPointer implements host.PropertyHost. Attaching an existing name
// replaces it.
func (h *Host) AttachPointer(owner host.HostType, name string, cls *addon.Class) error {
	if cls == nil {
		return addon.ErrNilClass
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	props, ok := h.pointers[owner]
	if !ok {
		props = make(map[string]*addon.Class)
		h.pointers[owner] = props
	}
	props[name] = cls
	return nil
}

// DetachPointer implements host.PropertyHost.
func (h *Host) DetachPointer(owner host.HostType, name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	props := h.pointers[owner]
	if _, ok := props[name]; !ok {
		return fmt.Errorf("%s.%s: %w", owner, name, host.ErrNotFound)
	}
	delete(props, name)
	if len(props) == 0 {
		delete(h.pointers, owner)
	}
	return nil
}

// Pointer returns the class attached to owner under name.
func (h *Host) Pointer(owner host.HostType, name string) (*addon.Class, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cls, ok := h.pointers[owner][name]
	return cls, ok
}

// PointerCount returns the number of attached pointer properties.
func (h *Host) PointerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, props := range h.pointers {
		n += len(props)
	}
	return n
}

// Register implements host.Translations.
func (h *Host) Register(namespace string, table i18n.Table) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.translations[namespace]; ok {
		return fmt.Errorf("translations %q: %w", namespace, host.ErrAlreadyRegistered)
	}
	h.translations[namespace] = table
	return nil
}

// Unregister implements host.Translations.
func (h *Host) Unregister(namespace string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.translations[namespace]; !ok {
		return fmt.Errorf("translations %q: %w", namespace, host.ErrNotRegistered)
	}
	delete(h.translations, namespace)
	return nil
}

// Translation returns the table registered under namespace.
func (h *Host) Translation(namespace string) (i18n.Table, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.translations[namespace]
	return t, ok
}

// Object is a host object with named properties.
type Object map[string]any

// Property implements host.PropertySource.
func (o Object) Property(name string) (any, bool) {
	v, ok := o[name]
	return v, ok
}
