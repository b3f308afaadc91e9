package addon

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// Well-known class attributes.
const (
	// AttrIDName is the host-visible unique identifier of a class.
	AttrIDName = "idname"
	// AttrCategory is the sidebar category a panel is shown under.
	AttrCategory = "category"
	// AttrLabel is the display label of a class.
	AttrLabel = "label"
)

var classSeq atomic.Uint64

func nextSeq() uint64 {
	return classSeq.Add(1)
}

// Class is an add-on class: a named type created by add-on code that may
// implement one or more host capabilities.
//
// A Class is not safe for concurrent mutation. Classes are created and
// normalized on the loader's goroutine.
type Class struct {
	name    string
	module  string
	parents []*Class
	roles   map[Capability]bool
	base    Capability
	seq     uint64
	attrs   map[string]any
	// own marks attributes computed for this class alone. They are not
	// inherited by subclasses.
	own map[string]bool

	// Value is the runtime object backing the class (a Lua table for classes
	// defined in Lua). The loader never inspects it.
	Value any
}

// NewClass defines a class. Its roles are the union of the roles of parents,
// resolved now and never recomputed.
func NewClass(name, module string, parents ...*Class) *Class {
	c := &Class{
		name:    name,
		module:  module,
		parents: make([]*Class, 0, len(parents)),
		roles:   make(map[Capability]bool),
		attrs:   make(map[string]any),
		own:     make(map[string]bool),
		seq:     nextSeq(),
	}
	for _, p := range parents {
		if p == nil {
			continue
		}
		c.parents = append(c.parents, p)
		for r := range p.roles {
			c.roles[r] = true
		}
	}
	return c
}

// Name returns the class's type name.
func (c *Class) Name() string { return c.name }

// Module returns the identifier of the module that defined the class.
func (c *Class) Module() string { return c.module }

// Parents returns the parents given at definition.
func (c *Class) Parents() []*Class {
	out := make([]*Class, len(c.parents))
	copy(out, c.parents)
	return out
}

// Seq returns the definition sequence number. Classes defined later have
// larger numbers.
func (c *Class) Seq() uint64 { return c.seq }

// IsBase reports whether c is a capability base type rather than an add-on class.
func (c *Class) IsBase() bool { return c.base != "" }

// Roles returns the capabilities the class implements, sorted.
func (c *Class) Roles() []Capability {
	out := make([]Capability, 0, len(c.roles))
	for r := range c.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Implements reports whether c is a proper implementation of at least one of
// caps. A base type never implements its own capability.
func (c *Class) Implements(caps ...Capability) bool {
	if c.IsBase() {
		return false
	}
	for _, cap := range caps {
		if c.roles[cap] {
			return true
		}
	}
	return false
}

// Attr returns a host-visible attribute.
func (c *Class) Attr(name string) (any, bool) {
	v, ok := c.attrs[name]
	return v, ok
}

// HasAttr reports whether the attribute is set on c itself.
func (c *Class) HasAttr(name string) bool {
	_, ok := c.attrs[name]
	return ok
}

// LookupAttr resolves an attribute on c or, failing that, on its parents,
// depth-first in declaration order.
func (c *Class) LookupAttr(name string) (any, bool) {
	if v, ok := c.attrs[name]; ok {
		return v, true
	}
	return c.inherited(name, make(map[*Class]bool))
}

func (c *Class) inherited(name string, seen map[*Class]bool) (any, bool) {
	for _, p := range c.parents {
		if seen[p] {
			continue
		}
		seen[p] = true
		if v, ok := p.attrs[name]; ok && !p.own[name] {
			return v, true
		}
		if v, ok := p.inherited(name, seen); ok {
			return v, true
		}
	}
	return nil, false
}

// SetAttr sets a host-visible attribute.
func (c *Class) SetAttr(name string, value any) {
	c.attrs[name] = value
	delete(c.own, name)
}

// SetOwnAttr sets an attribute that belongs to c alone: it is visible on c
// but subclasses do not inherit it.
func (c *Class) SetOwnAttr(name string, value any) {
	c.attrs[name] = value
	if c.own == nil {
		c.own = make(map[string]bool)
	}
	c.own[name] = true
}

// Attrs returns a copy of all attributes.
func (c *Class) Attrs() map[string]any {
	out := make(map[string]any, len(c.attrs))
	for k, v := range c.attrs {
		out[k] = v
	}
	return out
}

// IDName returns the idname attribute, inherited or not, falling back to the
// type name.
func (c *Class) IDName() string {
	if v, ok := c.LookupAttr(AttrIDName); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return c.name
}

// String returns a string representation of the class.
func (c *Class) String() string {
	if c.IsBase() {
		return fmt.Sprintf("<base %s>", c.name)
	}
	if c.module == "" {
		return c.name
	}
	return c.module + "." + c.name
}
