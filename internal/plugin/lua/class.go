package lua

import (
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/addonkit/internal/addon"
)

const classTypeName = "addonkit.class"

// ClassValue returns the Lua value for c. The same userdata is returned on
// every call so classes compare equal in Lua.
//
// Base types are shared by every state and get a fresh userdata per call;
// callers expose them once (as addon.types) to keep identity.
func ClassValue(L *lua.LState, c *addon.Class) lua.LValue {
	if c == nil {
		return lua.LNil
	}
	if ud, ok := c.Value.(*lua.LUserData); ok && !c.IsBase() {
		return ud
	}
	ud := L.NewUserData()
	ud.Value = c
	L.SetMetatable(ud, classMetatable(L))
	if !c.IsBase() {
		c.Value = ud
	}
	return ud
}

// ToClass returns the class carried by lv, if any.
func ToClass(lv lua.LValue) (*addon.Class, bool) {
	ud, ok := lv.(*lua.LUserData)
	if !ok {
		return nil, false
	}
	c, ok := ud.Value.(*addon.Class)
	return c, ok
}

// CheckClass returns the class argument at position n or raises an
// argument error.
func CheckClass(L *lua.LState, n int) *addon.Class {
	c, ok := ToClass(L.Get(n))
	if !ok {
		L.ArgError(n, "class expected")
		return nil
	}
	return c
}

func classMetatable(L *lua.LState) lua.LValue {
	mt := L.GetTypeMetatable(classTypeName)
	if mt != lua.LNil {
		return mt
	}
	tbl := L.NewTypeMetatable(classTypeName)
	L.SetField(tbl, "__index", L.NewFunction(classIndex))
	L.SetField(tbl, "__newindex", L.NewFunction(classNewIndex))
	L.SetField(tbl, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(CheckClass(L, 1).String()))
		return 1
	}))
	return tbl
}

// classIndex serves attribute reads. __name, __module and __roles describe
// the class itself.
func classIndex(L *lua.LState) int {
	c := CheckClass(L, 1)
	key := L.CheckString(2)

	switch key {
	case "__name":
		L.Push(lua.LString(c.Name()))
		return 1
	case "__module":
		L.Push(lua.LString(c.Module()))
		return 1
	case "__roles":
		roles := L.NewTable()
		for _, r := range c.Roles() {
			roles.Append(lua.LString(r))
		}
		L.Push(roles)
		return 1
	}

	if v, ok := c.LookupAttr(key); ok {
		L.Push(AttrToLua(L, v))
		return 1
	}
	L.Push(lua.LNil)
	return 1
}

func classNewIndex(L *lua.LState) int {
	c := CheckClass(L, 1)
	key := L.CheckString(2)
	c.SetAttr(key, AttrFromLua(L.Get(3)))
	return 0
}

// AttrFromLua converts a Lua value to a class attribute. Scalars become Go
// values, classes become *addon.Class and tables become []any or
// map[string]any. Anything else, functions included, is kept as a Lua value.
func AttrFromLua(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LString:
		return string(v)
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case *lua.LTable:
		return NewBridge(nil).ToGoValue(v)
	}
	if c, ok := ToClass(lv); ok {
		return c
	}
	return lv
}

// AttrToLua converts a class attribute back to a Lua value. Tables are
// rebuilt on every call.
func AttrToLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case *addon.Class:
		return ClassValue(L, val)
	case []any:
		t := L.NewTable()
		for _, e := range val {
			t.Append(AttrToLua(L, e))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for k, e := range val {
			t.RawSetString(k, AttrToLua(L, e))
		}
		return t
	}
	return NewBridge(L).ToLuaValue(v)
}

// SetAttrs copies the fields of t onto c in key order.
func SetAttrs(c *addon.Class, t *lua.LTable) {
	keys := make([]string, 0)
	t.ForEach(func(k, _ lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			keys = append(keys, string(ks))
		}
	})
	sort.Strings(keys)
	for _, k := range keys {
		c.SetAttr(k, AttrFromLua(t.RawGetString(k)))
	}
}
