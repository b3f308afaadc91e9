package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/addonkit/internal/addon"
	plua "github.com/dshills/addonkit/internal/plugin/lua"
)

// CoreModule implements class definition and the loader markers.
type CoreModule struct {
	ctx *Context
}

// NewCoreModule creates the core module.
func NewCoreModule(ctx *Context) *CoreModule {
	return &CoreModule{ctx: ctx}
}

// Name returns the module name.
func (m *CoreModule) Name() string {
	return "core"
}

// Register installs class, disable, priority, is_disabled and types.
func (m *CoreModule) Register(L *lua.LState, tbl *lua.LTable) error {
	types := L.NewTable()
	for _, c := range addon.DefaultCapabilities() {
		types.RawSetString(string(c), plua.ClassValue(L, addon.Base(c)))
	}

	L.SetField(tbl, "types", types)
	L.SetField(tbl, "class", L.NewFunction(m.class))
	L.SetField(tbl, "disable", L.NewFunction(m.disable))
	L.SetField(tbl, "priority", L.NewFunction(m.priority))
	L.SetField(tbl, "is_disabled", L.NewFunction(m.isDisabled))
	return nil
}

// class(name, parents, attrs?) -> class
// parents is a class or a list of classes.
func (m *CoreModule) class(L *lua.LState) int {
	name := L.CheckString(1)
	if name == "" {
		L.ArgError(1, "class name cannot be empty")
		return 0
	}

	var parents []*addon.Class
	switch v := L.Get(2).(type) {
	case *lua.LUserData:
		parents = append(parents, plua.CheckClass(L, 2))
	case *lua.LTable:
		for i := 1; i <= v.Len(); i++ {
			p, ok := plua.ToClass(v.RawGetInt(i))
			if !ok {
				L.ArgError(2, "parents must be classes")
				return 0
			}
			parents = append(parents, p)
		}
	case *lua.LNilType:
	default:
		L.ArgError(2, "class or list of classes expected")
		return 0
	}

	c := addon.NewClass(name, m.ctx.current(), parents...)
	if attrs, ok := L.Get(3).(*lua.LTable); ok {
		plua.SetAttrs(c, attrs)
	}
	L.Push(plua.ClassValue(L, c))
	return 1
}

// disable(cls) -> cls
func (m *CoreModule) disable(L *lua.LState) int {
	c := plua.CheckClass(L, 1)
	if err := m.ctx.markers().Disable(c); err != nil {
		plua.RaiseError(L, err)
		return 0
	}
	L.Push(L.Get(1))
	return 1
}

// priority(cls, n) -> cls
// priority(n) -> function(cls) -> cls
func (m *CoreModule) priority(L *lua.LState) int {
	if n, ok := L.Get(1).(lua.LNumber); ok {
		rank := int(n)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			return m.setPriority(L, 1, rank)
		}))
		return 1
	}
	return m.setPriority(L, 1, L.CheckInt(2))
}

func (m *CoreModule) setPriority(L *lua.LState, n, rank int) int {
	c := plua.CheckClass(L, n)
	if err := m.ctx.markers().SetPriority(c, rank); err != nil {
		plua.RaiseError(L, err)
		return 0
	}
	L.Push(L.Get(n))
	return 1
}

// is_disabled(cls) -> bool
func (m *CoreModule) isDisabled(L *lua.LState) int {
	c := plua.CheckClass(L, 1)
	L.Push(lua.LBool(m.ctx.markers().IsDisabled(c)))
	return 1
}
