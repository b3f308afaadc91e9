package api

import (
	"fmt"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"

	plua "github.com/dshills/addonkit/internal/plugin/lua"
)

// ModuleName is the name add-on code requires the API under.
const ModuleName = "addon"

// Module is one part of the addon Lua module.
type Module interface {
	// Name returns the module name (e.g., "core", "keymap").
	Name() string

	// Register installs the module's functions into the addon table.
	Register(L *lua.LState, addon *lua.LTable) error
}

// Registry manages API modules and their installation.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates a new API registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
	}
}

// NewDefaultRegistry creates a registry holding every module ctx supports.
func NewDefaultRegistry(ctx *Context) *Registry {
	r := NewRegistry()
	_ = r.Register(NewCoreModule(ctx))
	_ = r.Register(NewConstantsModule())
	if ctx.Keymaps != nil {
		_ = r.Register(NewKeymapModule(ctx))
	}
	if ctx.Props != nil {
		_ = r.Register(NewPropsModule(ctx))
	}
	return r
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[mod.Name()]; exists {
		return fmt.Errorf("module %q already registered", mod.Name())
	}
	r.modules[mod.Name()] = mod
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mod, ok := r.modules[name]
	return mod, ok
}

// List returns all registered module names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install builds the addon table from every module and exposes it as a
// global and through require.
func (r *Registry) Install(state *plua.State) error {
	L := state.LuaState()
	tbl := L.NewTable()

	for _, name := range r.List() {
		mod, _ := r.Get(name)
		if err := mod.Register(L, tbl); err != nil {
			return fmt.Errorf("failed to register module %q: %w", name, err)
		}
	}

	state.SetGlobal(ModuleName, tbl)
	state.Preload(ModuleName, func(L *lua.LState) int {
		L.Push(tbl)
		return 1
	})
	return nil
}
