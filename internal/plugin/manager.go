package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/input/keymap"
	"github.com/dshills/addonkit/internal/props"
)

// Manager registers one add-on with the host.
//
// NewManager loads the add-on once. Register hands its classes to the host
// and runs the modules' register hooks; Unregister undoes both and tears
// down the keymaps and properties the add-on created.
type Manager struct {
	mu sync.Mutex

	loader *Loader
	dirs   []string
	name   string
	result *Result
	state  State
}

// NewManager loads the add-on at path from its targetDirs.
//
// The properties namespace is set only by WithAddonName. Without it, property
// registration fails with props.ErrNoNamespace and translations are not
// registered.
//
// Unless WithKeymaps and WithProperties are given, the process-wide keymap
// and properties managers are used. They are pointed at the host's
// collaborators when WithHost is given.
func NewManager(path string, targetDirs []string, opts ...Option) (*Manager, error) {
	root, err := NewRoot(path)
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)
	if o.keymaps == nil {
		o.keymaps = keymap.Default()
	}
	if o.props == nil {
		o.props = props.Default()
	}
	if o.host.KeyConfigs != nil {
		o.keymaps.SetHost(o.host.KeyConfigs)
	}
	if o.host.Properties != nil {
		o.props.SetHost(o.host.Properties)
	}
	if o.name != "" {
		o.props.SetName(o.name)
	}

	loader, err := newLoader(root, o)
	if err != nil {
		return nil, err
	}
	res, err := loader.Load(targetDirs, o.category)
	if err != nil {
		_ = loader.Close()
		return nil, err
	}

	return &Manager{
		loader: loader,
		dirs:   append([]string(nil), targetDirs...),
		name:   o.name,
		result: res,
	}, nil
}

// Name returns the namespace given with WithAddonName, or "".
func (m *Manager) Name() string {
	return m.name
}

// Root returns the add-on location.
func (m *Manager) Root() Root {
	return m.loader.Root()
}

// State returns the registration state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Modules returns the imported modules in discovery order.
func (m *Manager) Modules() []*addon.Module {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*addon.Module(nil), m.result.Modules...)
}

// Classes returns the classes in registration order.
func (m *Manager) Classes() []*addon.Class {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*addon.Class(nil), m.result.Classes...)
}

// Diagnostics returns the problems met while loading.
func (m *Manager) Diagnostics() []Diagnostic {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Diagnostic(nil), m.result.Diagnostics...)
}

// Register registers every class in ranked order, then runs the modules'
// register hooks in discovery order, then registers translations.
//
// Registration is all-or-nothing: if any step fails, whatever was already
// registered is unregistered again and the error is returned.
func (m *Manager) Register() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.register()
}

func (m *Manager) register() error {
	if m.state == StateRegistered {
		return ErrAlreadyRegistered
	}
	h := m.loader.host
	if h.Classes == nil {
		return ErrNoHost
	}

	classes := m.result.Classes
	for i, c := range classes {
		if err := h.Classes.RegisterClass(c); err != nil {
			err = fmt.Errorf("register %s: %w", c.IDName(), err)
			return errors.Join(err, m.unregisterClasses(classes[:i]))
		}
	}

	for i, mod := range m.result.Modules {
		if err := mod.Call(addon.HookRegister); err != nil {
			// Modules whose register hook already ran get their unregister hook.
			return errors.Join(err, m.teardown(m.result.Modules[:i], false))
		}
	}

	if m.hasTranslations() {
		if err := h.Translations.Register(m.name, m.loader.translations); err != nil {
			err = fmt.Errorf("register translations: %w", err)
			return errors.Join(err, m.teardown(m.result.Modules, false))
		}
	}

	m.state = StateRegistered
	m.loader.logger.Info("registered", "addon", m.loader.Root().Package, "classes", len(classes))
	return nil
}

// Unregister unregisters every class in reverse ranked order, runs the
// modules' unregister hooks, then removes the add-on's keymaps, properties
// and translations. Every step is attempted; their errors are joined.
func (m *Manager) Unregister() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unregister()
}

func (m *Manager) unregister() error {
	if m.state != StateRegistered {
		return ErrNotRegistered
	}
	err := m.teardown(m.result.Modules, true)
	m.state = StateUnregistered
	m.loader.logger.Info("unregistered", "addon", m.loader.Root().Package)
	return err
}

// teardown reverses registration. mods are the modules whose unregister
// hook runs.
func (m *Manager) teardown(mods []*addon.Module, translations bool) error {
	errs := []error{m.unregisterClasses(m.result.Classes)}

	for _, mod := range mods {
		if err := mod.Call(addon.HookUnregister); err != nil {
			errs = append(errs, err)
		}
	}

	errs = append(errs, m.loader.keymaps.Unregister(), m.loader.props.Unregister())

	h := m.loader.host
	if translations && m.hasTranslations() {
		if err := h.Translations.Unregister(m.name); err != nil {
			errs = append(errs, fmt.Errorf("unregister translations: %w", err))
		}
	}
	return errors.Join(errs...)
}

// hasTranslations reports whether a table and a namespace were both given.
func (m *Manager) hasTranslations() bool {
	return m.loader.translations != nil && m.name != "" && m.loader.host.Translations != nil
}

func (m *Manager) unregisterClasses(classes []*addon.Class) error {
	var errs []error
	for i := len(classes) - 1; i >= 0; i-- {
		if err := m.loader.host.Classes.UnregisterClass(classes[i]); err != nil {
			errs = append(errs, fmt.Errorf("unregister %s: %w", classes[i].IDName(), err))
		}
	}
	return errors.Join(errs...)
}

// Reload re-executes every module in place and recomputes the classes. A
// registered add-on is unregistered first and registered again after.
// Without debug mode Reload does nothing.
func (m *Manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loader.debug {
		return nil
	}

	wasRegistered := m.state == StateRegistered
	if wasRegistered {
		if err := m.unregister(); err != nil {
			return err
		}
	}

	if err := m.loader.Reload(m.result.Modules); err != nil {
		return err
	}
	m.result.Classes = m.loader.Classes(m.result.Modules, m.loader.category)
	m.loader.logger.Info("reloaded", "addon", m.loader.Root().Package, "classes", len(m.result.Classes))

	if wasRegistered {
		return m.register()
	}
	return nil
}

// Close unregisters the add-on if it is registered and releases the loader.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	if m.state == StateRegistered {
		errs = append(errs, m.unregister())
	}
	errs = append(errs, m.loader.Close())
	return errors.Join(errs...)
}
