package lua

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	state, err := NewState(opts...)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(func() { state.Close() })
	return state
}

func TestStateDoString(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := state.GetGlobal("x"); got != glua.LNumber(2) {
		t.Errorf("x = %v, want 2", got)
	}
}

func TestStateSandbox(t *testing.T) {
	state := newTestState(t)

	for _, fn := range []string{"dofile", "loadfile", "load", "loadstring"} {
		if v := state.GetGlobal(fn); v != glua.LNil {
			t.Errorf("%s should be removed, got %T", fn, v)
		}
	}

	if err := state.DoString(`local s = require("string"); assert(s.upper("a") == "A")`); err != nil {
		t.Errorf("require(string) error = %v", err)
	}
	if err := state.DoString(`require("os")`); err == nil {
		t.Error("require(os) should fail without unsafe permission")
	}
	if err := state.DoString(`require("nothing.here")`); err == nil {
		t.Error("require of unknown module should fail without a resolver")
	}
}

func TestStateUnsafePermission(t *testing.T) {
	state := newTestState(t, WithPermissions(PermissionUnsafe))

	if !state.Sandbox().Has(PermissionUnsafe) {
		t.Fatal("expected unsafe permission")
	}
	if err := state.DoString(`local os = require("os"); assert(os.time() > 0)`); err != nil {
		t.Errorf("require(os) error = %v", err)
	}
}

func TestStatePreload(t *testing.T) {
	state := newTestState(t)
	state.Preload("greeter", func(L *glua.LState) int {
		mod := L.NewTable()
		mod.RawSetString("name", glua.LString("hi"))
		L.Push(mod)
		return 1
	})

	if err := state.DoString(`assert(require("greeter").name == "hi")`); err != nil {
		t.Errorf("require(greeter) error = %v", err)
	}
}

func TestStateExecutionTimeout(t *testing.T) {
	state := newTestState(t, WithExecutionTimeout(50*time.Millisecond))

	err := state.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString() error = %v, want ErrExecutionTimeout", err)
	}
}

func TestStateClosed(t *testing.T) {
	state := newTestState(t)
	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestRaiseErrorKeepsIdentity(t *testing.T) {
	state := newTestState(t)
	sentinel := errors.New("sentinel")
	state.SetGlobal("fail", state.LuaState().NewFunction(func(L *glua.LState) int {
		RaiseError(L, sentinel)
		return 0
	}))

	err := state.DoString(`fail()`)
	if !errors.Is(err, sentinel) {
		t.Fatalf("error = %v, want sentinel", err)
	}

	err = state.DoString(`local ok, e = pcall(fail); assert(not ok); assert(tostring(e) == "sentinel")`)
	if err != nil {
		t.Errorf("tostring on raised error: %v", err)
	}
}

func TestExecFileEnv(t *testing.T) {
	state := newTestState(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "m.lua")
	if err := os.WriteFile(path, []byte("value = 42\nreturn string.upper('ok')"), 0o644); err != nil {
		t.Fatal(err)
	}

	env := state.NewEnv("m", path)
	ret, err := state.ExecFile(path, env)
	if err != nil {
		t.Fatalf("ExecFile() error = %v", err)
	}
	if ret != glua.LString("OK") {
		t.Errorf("ret = %v, want OK", ret)
	}
	if env.RawGetString("value") != glua.LNumber(42) {
		t.Error("global assignment should land in the environment")
	}
	if state.GetGlobal("value") != glua.LNil {
		t.Error("global assignment leaked into _G")
	}
	if got := env.RawGetString("_NAME"); got != glua.LString("m") {
		t.Errorf("_NAME = %v", got)
	}
}

func TestExecFileSyntaxError(t *testing.T) {
	state := newTestState(t)
	path := filepath.Join(t.TempDir(), "bad.lua")
	if err := os.WriteFile(path, []byte("x = = 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := state.ExecFile(path, state.NewEnv("bad", path))
	if err == nil || !strings.Contains(err.Error(), "bad.lua") {
		t.Errorf("ExecFile() error = %v, want syntax error naming the file", err)
	}
}
