package api

import (
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/addonkit/internal/host"
	plua "github.com/dshills/addonkit/internal/plugin/lua"
	"github.com/dshills/addonkit/internal/props"
)

// PropsModule implements the addon.props API module.
type PropsModule struct {
	ctx *Context
}

// NewPropsModule creates a new props module.
func NewPropsModule(ctx *Context) *PropsModule {
	return &PropsModule{ctx: ctx}
}

// Name returns the module name.
func (m *PropsModule) Name() string {
	return "props"
}

// Register registers the module into the addon table.
func (m *PropsModule) Register(L *lua.LState, tbl *lua.LTable) error {
	mod := L.NewTable()
	L.SetField(mod, "add", L.NewFunction(m.add))
	L.SetField(mod, "delete", L.NewFunction(m.del))
	L.SetField(mod, "name", L.NewFunction(m.name))
	L.SetField(tbl, "props", mod)
	return nil
}

// add(owner, { name = Class, ... }) -> {prefixed names}
// Properties are attached in name order.
func (m *PropsModule) add(L *lua.LState) int {
	owner := L.CheckString(1)
	defs := L.CheckTable(2)

	var names []string
	defs.ForEach(func(k, _ lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			names = append(names, string(ks))
		}
	})
	sort.Strings(names)

	list := make([]props.Property, 0, len(names))
	for _, name := range names {
		c, ok := plua.ToClass(defs.RawGetString(name))
		if !ok {
			L.ArgError(2, "property "+name+" must be a class")
			return 0
		}
		list = append(list, props.Property{Name: name, Type: c})
	}

	attached, err := m.ctx.Props.Add(host.HostType(owner), list...)
	if err != nil {
		plua.RaiseError(L, err)
		return 0
	}
	out := L.NewTable()
	for _, n := range attached {
		out.Append(lua.LString(n))
	}
	L.Push(out)
	return 1
}

// delete(name) -> bool
func (m *PropsModule) del(L *lua.LState) int {
	L.Push(lua.LBool(m.ctx.Props.Delete(L.CheckString(1))))
	return 1
}

// name() -> namespace or nil
func (m *PropsModule) name(L *lua.LState) int {
	ns := m.ctx.Props.Name()
	if ns == "" {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(ns))
	return 1
}
