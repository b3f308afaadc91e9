package lua

import (
	"context"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds one top-level execution, including every
// module it requires.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps gopher-lua with the sandbox used for add-on code.
//
// IMPORTANT: gopher-lua's LState is not goroutine-safe. A State and everything
// built on it (Importer, hooks) must be used from one goroutine at a time.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	permissions      []Permission

	sandbox *Sandbox
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the execution timeout. Zero disables it.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// WithPermissions grants sandbox permissions at creation.
func WithPermissions(perms ...Permission) StateOption {
	return func(s *State) {
		s.permissions = append(s.permissions, perms...)
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) (*State, error) {
	state := &State{
		executionTimeout: DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(state)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	state.L = L

	openSafeLibraries(L)

	state.sandbox = NewSandbox(L)
	state.sandbox.Install()
	for _, p := range state.permissions {
		state.sandbox.Grant(p)
	}

	return state, nil
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenPackage(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	lua.OpenCoroutine(L)

	// io, os and debug are only opened through PermissionUnsafe.
}

// NewEnv creates a module environment. Reads fall through to the globals;
// writes stay in the environment.
func (s *State) NewEnv(name, path string) *lua.LTable {
	env := s.L.NewTable()
	mt := s.L.NewTable()
	mt.RawSetString("__index", s.L.Get(lua.GlobalsIndex))
	s.L.SetMetatable(env, mt)
	env.RawSetString("_NAME", lua.LString(name))
	if path != "" {
		env.RawSetString("_FILE", lua.LString(path))
	}
	return env
}

// ExecFile runs the chunk at path in env and returns its first result.
func (s *State) ExecFile(path string, env *lua.LTable) (lua.LValue, error) {
	if s.closed {
		return lua.LNil, ErrStateClosed
	}
	fn, err := s.L.LoadFile(path)
	if err != nil {
		return lua.LNil, err
	}
	if env != nil {
		fn.Env = env
	}
	return s.call(fn)
}

// CallFunction calls fn with args and returns its first result.
func (s *State) CallFunction(fn *lua.LFunction, args ...lua.LValue) (lua.LValue, error) {
	if s.closed {
		return lua.LNil, ErrStateClosed
	}
	return s.call(fn, args...)
}

// call runs fn under the execution timeout. Nested calls (a require inside
// a running chunk) share the outermost deadline.
func (s *State) call(fn *lua.LFunction, args ...lua.LValue) (ret lua.LValue, err error) {
	if s.executionTimeout > 0 && s.L.Context() == nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.executionTimeout)
		s.L.SetContext(ctx)
		defer func() {
			s.L.RemoveContext()
			cancel()
			if err != nil && ctx.Err() != nil {
				err = fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
			}
		}()
	}

	top := s.L.GetTop()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		s.L.SetTop(top)
	}()

	s.L.Push(fn)
	for _, a := range args {
		s.L.Push(a)
	}
	if err := s.L.PCall(len(args), 1, nil); err != nil {
		return lua.LNil, Unwrap(err)
	}
	return s.L.Get(-1), nil
}

// DoString executes a Lua string in the global environment.
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	fn, err := s.L.LoadString(code)
	if err != nil {
		return err
	}
	_, err = s.call(fn)
	return err
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.L.SetGlobal(name, value)
}

// Preload makes a Go-built module available to require.
func (s *State) Preload(name string, loader lua.LGFunction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.L.PreloadModule(name, loader)
}

// LuaState returns the underlying gopher-lua state.
func (s *State) LuaState() *lua.LState {
	return s.L
}

// Sandbox returns the sandbox for permission management.
func (s *State) Sandbox() *Sandbox {
	return s.sandbox
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases all resources associated with the Lua state.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
