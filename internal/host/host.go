// Package host declares the host application's collaborator interfaces.
//
// The loader never reimplements the host's class registry, input bindings,
// property system, translation tables or text drawing. It calls into them
// through these interfaces. Package memhost provides an in-memory
// implementation for tests and dry runs.
package host

import (
	"errors"

	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/i18n"
)

// Host-boundary errors.
var (
	// ErrAlreadyRegistered indicates the object is already known to the host.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrNotRegistered indicates the object is not known to the host.
	ErrNotRegistered = errors.New("not registered")

	// ErrNotFound indicates a keymap item, pointer or draw handler is missing.
	ErrNotFound = errors.New("not found")
)

// HostType names a host type that custom properties are attached to
// (e.g. "Scene", "Object", "WindowManager").
type HostType string

// ClassRegistry is the host's live class registry.
type ClassRegistry interface {
	RegisterClass(c *addon.Class) error
	UnregisterClass(c *addon.Class) error
}

// KeymapSpec locates a keymap.
type KeymapSpec struct {
	Name       string
	SpaceType  string
	RegionType string
	Modal      bool
	Tool       bool
}

// ItemSpec describes one input binding.
type ItemSpec struct {
	IDName      string
	Type        string
	Value       string
	KeyModifier string
	Any         bool
	Shift       bool
	Ctrl        bool
	Alt         bool
	OSKey       bool
}

// KeyConfigs gives access to the add-on key configuration.
type KeyConfigs interface {
	// AddonKeyConfig returns false when no key configuration is active,
	// as in background mode.
	AddonKeyConfig() (KeyConfig, bool)
}

// KeyConfig is an editable key configuration.
type KeyConfig interface {
	// NewKeymap creates the keymap described by spec, or returns the
	// existing one.
	NewKeymap(spec KeymapSpec) (Keymap, error)
}

// Keymap is a named set of input bindings.
type Keymap interface {
	Spec() KeymapSpec
	NewItem(spec ItemSpec) (KeymapItem, error)
	RemoveItem(item KeymapItem) error
}

// KeymapItem is one input binding owned by a Keymap.
type KeymapItem interface {
	IDName() string
}

// PropertyHost attaches pointer properties to host types.
type PropertyHost interface {
	AttachPointer(owner HostType, name string, cls *addon.Class) error
	DetachPointer(owner HostType, name string) error
}

// PropertySource is a host object whose properties can be read by name.
type PropertySource interface {
	Property(name string) (any, bool)
}

// Translations is the host's localization registry.
type Translations interface {
	Register(namespace string, table i18n.Table) error
	Unregister(namespace string) error
}

// Host bundles the collaborators a registration run needs. Nil members are
// treated as absent.
type Host struct {
	Classes      ClassRegistry
	KeyConfigs   KeyConfigs
	Properties   PropertyHost
	Translations Translations
}
