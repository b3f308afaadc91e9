package addon

import "fmt"

// Lifecycle hook names a module may define.
const (
	HookRegister   = "register"
	HookUnregister = "unregister"
)

// Hook is a zero-argument lifecycle callback exposed by a module.
type Hook func() error

// Module is one imported add-on source file.
type Module struct {
	// ID is the dotted module identifier (e.g. "my_addon.operators.a").
	ID string

	// Path is the source file the module was executed from.
	Path string

	// Classes are the module's class members in definition order.
	Classes []*Class

	// Hooks are the module's lifecycle callbacks by name.
	Hooks map[string]Hook
}

// Has reports whether the module defines the named hook.
func (m *Module) Has(name string) bool {
	h, ok := m.Hooks[name]
	return ok && h != nil
}

// Call invokes the named hook. A missing hook is not an error.
func (m *Module) Call(name string) error {
	if !m.Has(name) {
		return nil
	}
	if err := m.Hooks[name](); err != nil {
		return fmt.Errorf("module %s: %s: %w", m.ID, name, err)
	}
	return nil
}

// String returns the module identifier.
func (m *Module) String() string {
	return m.ID
}
