package addon

import (
	"fmt"
	"sort"
	"sync"
)

// Capability names a host extension point a class can implement.
type Capability string

// Recognized capabilities.
const (
	Operator                Capability = "Operator"
	Panel                   Capability = "Panel"
	Menu                    Capability = "Menu"
	Header                  Capability = "Header"
	UIList                  Capability = "UIList"
	PropertyGroup           Capability = "PropertyGroup"
	AddonPreferences        Capability = "AddonPreferences"
	Preferences             Capability = "Preferences"
	RenderEngine            Capability = "RenderEngine"
	Node                    Capability = "Node"
	NodeSocket              Capability = "NodeSocket"
	NodeTree                Capability = "NodeTree"
	Gizmo                   Capability = "Gizmo"
	GizmoGroup              Capability = "GizmoGroup"
	Macro                   Capability = "Macro"
	KeyingSetInfo           Capability = "KeyingSetInfo"
	OperatorFileListElement Capability = "OperatorFileListElement"
	ShaderNode              Capability = "ShaderNode"
	CompositorNode          Capability = "CompositorNode"
	TextureNode             Capability = "TextureNode"
	GeometryNode            Capability = "GeometryNode"
)

var defaultCapabilities = []Capability{
	Operator, Panel, Menu, Header, UIList, PropertyGroup, AddonPreferences,
	Preferences, RenderEngine, Node, NodeSocket, NodeTree, Gizmo, GizmoGroup,
	Macro, KeyingSetInfo, OperatorFileListElement, ShaderNode, CompositorNode,
	TextureNode, GeometryNode,
}

// DefaultCapabilities returns the capability set used when none is configured.
func DefaultCapabilities() []Capability {
	caps := make([]Capability, len(defaultCapabilities))
	copy(caps, defaultCapabilities)
	return caps
}

var (
	basesMu sync.Mutex
	bases   = make(map[Capability]*Class)
)

// Base returns the process-wide base type for a capability.
// Repeated calls return the same pointer.
func Base(c Capability) *Class {
	basesMu.Lock()
	defer basesMu.Unlock()

	if b, ok := bases[c]; ok {
		return b
	}
	b := &Class{
		name:  string(c),
		base:  c,
		roles: map[Capability]bool{c: true},
		attrs: make(map[string]any),
		own:   make(map[string]bool),
		seq:   nextSeq(),
	}
	bases[c] = b
	return b
}

// Bases returns the base types for caps, sorted by capability name.
func Bases(caps []Capability) []*Class {
	sorted := make([]Capability, len(caps))
	copy(sorted, caps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	out := make([]*Class, 0, len(sorted))
	for _, c := range sorted {
		out = append(out, Base(c))
	}
	return out
}

// ParseCapability returns the recognized capability named s.
func ParseCapability(s string) (Capability, error) {
	for _, c := range defaultCapabilities {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCapability, s)
}
