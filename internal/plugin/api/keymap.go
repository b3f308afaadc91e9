package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/addonkit/internal/input/keymap"
	plua "github.com/dshills/addonkit/internal/plugin/lua"
)

// KeymapModule implements the addon.keymap API module.
type KeymapModule struct {
	ctx *Context
}

// NewKeymapModule creates a new keymap module.
func NewKeymapModule(ctx *Context) *KeymapModule {
	return &KeymapModule{ctx: ctx}
}

// Name returns the module name.
func (m *KeymapModule) Name() string {
	return "keymap"
}

// Register registers the module into the addon table.
func (m *KeymapModule) Register(L *lua.LState, tbl *lua.LTable) error {
	mod := L.NewTable()
	L.SetField(mod, "add", L.NewFunction(m.add))
	L.SetField(mod, "delete", L.NewFunction(m.del))
	L.SetField(tbl, "keymap", mod)
	return nil
}

// add(keys, location?) -> {binding ids}
// keys is one key table or a list of them:
//
//	{ operator = OpA, key = "A", trigger = "PRESS", key_modifier = "NONE",
//	  any = false, shift = false, ctrl = true, alt = false, oskey = false }
//
// location: { name, space_type, region_type, modal, tool }
func (m *KeymapModule) add(L *lua.LState) int {
	arg := L.CheckTable(1)

	var keys []keymap.Key
	if arg.RawGetString("operator") != lua.LNil {
		keys = append(keys, m.toKey(L, arg))
	} else {
		for i := 1; i <= arg.Len(); i++ {
			kt, ok := arg.RawGetInt(i).(*lua.LTable)
			if !ok {
				L.ArgError(1, "key table or list of key tables expected")
				return 0
			}
			keys = append(keys, m.toKey(L, kt))
		}
	}

	var loc keymap.Location
	if lt, ok := L.Get(2).(*lua.LTable); ok {
		b := plua.NewBridge(L)
		loc.Name, _ = b.GetTableString(lt, "name")
		loc.SpaceType, _ = b.GetTableString(lt, "space_type")
		loc.RegionType, _ = b.GetTableString(lt, "region_type")
		loc.Modal, _ = b.GetTableBool(lt, "modal")
		loc.Tool, _ = b.GetTableBool(lt, "tool")
	}

	bindings, err := m.ctx.Keymaps.Add(keys, loc)
	if err != nil {
		plua.RaiseError(L, err)
		return 0
	}

	ids := L.NewTable()
	for _, b := range bindings {
		ids.Append(lua.LString(b.ID.String()))
	}
	L.Push(ids)
	return 1
}

func (m *KeymapModule) toKey(L *lua.LState, t *lua.LTable) keymap.Key {
	op, ok := plua.ToClass(t.RawGetString("operator"))
	if !ok {
		L.ArgError(1, "key.operator must be a class")
	}
	b := plua.NewBridge(L)
	k := keymap.Key{Operator: op}
	k.Key, _ = b.GetTableString(t, "key")
	k.Modifier, _ = b.GetTableString(t, "key_modifier")
	k.Trigger, _ = b.GetTableString(t, "trigger")
	k.Any, _ = b.GetTableBool(t, "any")
	k.Shift, _ = b.GetTableBool(t, "shift")
	k.Ctrl, _ = b.GetTableBool(t, "ctrl")
	k.Alt, _ = b.GetTableBool(t, "alt")
	k.OSKey, _ = b.GetTableBool(t, "oskey")
	if k.Key == "" {
		L.ArgError(1, "key.key cannot be empty")
	}
	return k
}

// delete(operator) -> bool
func (m *KeymapModule) del(L *lua.LState) int {
	op := plua.CheckClass(L, 1)
	L.Push(lua.LBool(m.ctx.Keymaps.DeleteOperator(op)))
	return 1
}
