package keymap

import (
	"github.com/google/uuid"

	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/host"
)

// Defaults applied to unset Key and Location fields.
const (
	DefaultModifier   = "NONE"
	DefaultTrigger    = "PRESS"
	DefaultName       = "Window"
	DefaultSpaceType  = "EMPTY"
	DefaultRegionType = "WINDOW"
)

// Key describes a binding of an input event to an operator.
type Key struct {
	Operator *addon.Class
	Key      string
	Modifier string
	Trigger  string
	Any      bool
	Shift    bool
	Ctrl     bool
	Alt      bool
	OSKey    bool
}

func (k Key) itemSpec() host.ItemSpec {
	mod := k.Modifier
	if mod == "" {
		mod = DefaultModifier
	}
	trigger := k.Trigger
	if trigger == "" {
		trigger = DefaultTrigger
	}
	return host.ItemSpec{
		IDName:      k.Operator.IDName(),
		Type:        k.Key,
		Value:       trigger,
		KeyModifier: mod,
		Any:         k.Any,
		Shift:       k.Shift,
		Ctrl:        k.Ctrl,
		Alt:         k.Alt,
		OSKey:       k.OSKey,
	}
}

// Location selects the keymap bindings are added to.
type Location struct {
	Name       string
	SpaceType  string
	RegionType string
	Modal      bool
	Tool       bool
}

func (l Location) spec() host.KeymapSpec {
	spec := host.KeymapSpec{
		Name:       l.Name,
		SpaceType:  l.SpaceType,
		RegionType: l.RegionType,
		Modal:      l.Modal,
		Tool:       l.Tool,
	}
	if spec.Name == "" {
		spec.Name = DefaultName
	}
	if spec.SpaceType == "" {
		spec.SpaceType = DefaultSpaceType
	}
	if spec.RegionType == "" {
		spec.RegionType = DefaultRegionType
	}
	return spec
}

// Binding pairs a host keymap with an item the manager added to it.
type Binding struct {
	ID       uuid.UUID
	Keymap   host.Keymap
	Item     host.KeymapItem
	Operator *addon.Class
}
