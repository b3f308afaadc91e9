package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Resolver loads add-on modules for require. It returns the module's Lua
// value (its returned table or its environment).
type Resolver func(L *lua.LState, id string) (lua.LValue, error)

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L *lua.LState

	permissions map[Permission]bool
	resolver    Resolver
}

// Permission grants add-on code access beyond the sandbox.
type Permission string

// Available permissions.
const (
	// PermissionUnsafe opens the io, os and debug libraries.
	PermissionUnsafe Permission = "unsafe"
)

// safeModules are the built-in libraries require may return.
var safeModules = map[string]bool{
	"string":    true,
	"table":     true,
	"math":      true,
	"coroutine": true,
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{
		L:           L,
		permissions: make(map[Permission]bool),
	}
}

// Install sets up the sandbox restrictions.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installSafeRequire()
}

// SetResolver routes require calls for non-builtin names to r.
func (s *Sandbox) SetResolver(r Resolver) {
	s.resolver = r
}

// installSafeRequire replaces require. Only built-in safe libraries,
// preloaded Go modules and modules found by the resolver can be loaded;
// package.path and package.cpath are cleared so nothing is read from disk
// behind the resolver's back.
func (s *Sandbox) installSafeRequire() {
	pkg, ok := s.L.GetGlobal("package").(*lua.LTable)
	if ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := s.L.GetGlobal("require")

	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)

		if safeModules[name] || s.isPreloaded(name) {
			L.Push(originalRequire)
			L.Push(lua.LString(name))
			L.Call(1, 1)
			return 1
		}

		switch name {
		case "io", "os", "debug":
			if !s.permissions[PermissionUnsafe] {
				L.RaiseError("module %q requires the unsafe permission", name)
			}
			L.Push(L.GetGlobal(name))
			return 1
		}

		if s.resolver == nil {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		v, err := s.resolver(L, name)
		if err != nil {
			RaiseError(L, err)
			return 0
		}
		L.Push(v)
		return 1
	}))
}

func (s *Sandbox) isPreloaded(name string) bool {
	pkg, ok := s.L.GetGlobal("package").(*lua.LTable)
	if !ok {
		return false
	}
	preload, ok := pkg.RawGetString("preload").(*lua.LTable)
	if !ok {
		return false
	}
	return preload.RawGetString(name) != lua.LNil
}

// Grant enables a permission.
func (s *Sandbox) Grant(p Permission) {
	s.permissions[p] = true
	if p == PermissionUnsafe {
		lua.OpenIo(s.L)
		lua.OpenOs(s.L)
		lua.OpenDebug(s.L)
	}
}

// Has returns true if the permission is granted.
func (s *Sandbox) Has(p Permission) bool {
	return s.permissions[p]
}

// Check returns an error if the permission is not granted.
func (s *Sandbox) Check(p Permission) error {
	if !s.permissions[p] {
		return fmt.Errorf("permission not granted: %s", p)
	}
	return nil
}
