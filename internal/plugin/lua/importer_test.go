package lua

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/addonkit/internal/addon"
)

// writeTree creates files below root. Keys are slash-separated paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// newTestImporter returns an importer with a minimal "defs" module that
// defines operator classes.
func newTestImporter(t *testing.T, root string) *Importer {
	t.Helper()
	state := newTestState(t)
	imp := NewImporter(state, NewSearchPath(root))
	state.Preload("defs", func(L *glua.LState) int {
		mod := L.NewTable()
		L.SetField(mod, "class", L.NewFunction(func(L *glua.LState) int {
			c := addon.NewClass(L.CheckString(1), imp.Current(), addon.Base(addon.Operator))
			L.Push(ClassValue(L, c))
			return 1
		}))
		L.Push(mod)
		return 1
	})
	return imp
}

func TestImportCollectsClassesInDefinitionOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/ops/a.lua": `
local defs = require("defs")
Zed = defs.class("Zed")
Alpha = defs.class("Alpha")
local hidden = defs.class("Hidden")
function register() registered = true end
`,
	})
	imp := newTestImporter(t, root)

	m, err := imp.Import("pkg.ops.a")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if m.Path != filepath.Join(root, "pkg", "ops", "a.lua") {
		t.Errorf("Path = %q", m.Path)
	}
	if len(m.Classes) != 2 || m.Classes[0].Name() != "Zed" || m.Classes[1].Name() != "Alpha" {
		t.Fatalf("Classes = %v, want [Zed Alpha]", m.Classes)
	}
	if m.Classes[0].Module() != "pkg.ops.a" {
		t.Errorf("Module() = %q", m.Classes[0].Module())
	}
	if !m.Has(addon.HookRegister) || m.Has(addon.HookUnregister) {
		t.Errorf("hooks = %v", m.Hooks)
	}
	if err := m.Call(addon.HookRegister); err != nil {
		t.Errorf("Call(register) error = %v", err)
	}

	again, err := imp.Import("pkg.ops.a")
	if err != nil || again != m {
		t.Errorf("second Import() = %p, %v; want cached %p", again, err, m)
	}
}

func TestImportReturnedTable(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/m.lua": `
local defs = require("defs")
Global = defs.class("Global")
return { Exported = defs.class("Exported") }
`,
	})
	imp := newTestImporter(t, root)

	m, err := imp.Import("pkg.m")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(m.Classes) != 1 || m.Classes[0].Name() != "Exported" {
		t.Errorf("Classes = %v, want [Exported]", m.Classes)
	}
}

func TestImportRequireSharesModules(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/base.lua": `
local defs = require("defs")
Shared = defs.class("Shared")
`,
		"pkg/user.lua": `
local base = require("pkg.base")
Reexported = base.Shared
`,
	})
	imp := newTestImporter(t, root)

	user, err := imp.Import("pkg.user")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	base, err := imp.Import("pkg.base")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(user.Classes) != 1 || user.Classes[0] != base.Classes[0] {
		t.Errorf("user.Classes = %v, want the class defined by pkg.base", user.Classes)
	}
	if user.Classes[0].Module() != "pkg.base" {
		t.Errorf("Module() = %q, want pkg.base", user.Classes[0].Module())
	}
}

func TestImportAllExcludesFailures(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/good.lua":   `local defs = require("defs"); Good = defs.class("Good")`,
		"pkg/syntax.lua": `this is not lua`,
		"pkg/dep.lua":    `require("pkg.missing")`,
		"pkg/raise.lua":  `error("boom")`,
	})
	imp := newTestImporter(t, root)

	mods, failures := imp.ImportAll([]string{"pkg.good", "pkg.syntax", "pkg.dep", "pkg.raise", "pkg.good"})
	if len(mods) != 1 || mods[0].ID != "pkg.good" {
		t.Fatalf("mods = %v, want [pkg.good]", mods)
	}
	if len(failures) != 3 {
		t.Fatalf("failures = %v, want 3", failures)
	}
	wantIDs := []string{"pkg.syntax", "pkg.dep", "pkg.raise"}
	for i, f := range failures {
		if f.ID != wantIDs[i] {
			t.Errorf("failure %d ID = %q, want %q", i, f.ID, wantIDs[i])
		}
	}
	if !errors.Is(failures[1], ErrModuleNotFound) {
		t.Errorf("dep failure = %v, want ErrModuleNotFound", failures[1])
	}
	if imp.Loaded("pkg.dep") {
		t.Error("failed module should not be cached")
	}

	// A later require of a failed module re-attempts and fails again.
	if _, err := imp.Import("pkg.raise"); err == nil {
		t.Error("Import of failed module should fail again")
	}
}

func TestImportCycle(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/a.lua": `require("pkg.b")`,
		"pkg/b.lua": `require("pkg.a")`,
	})
	imp := newTestImporter(t, root)

	_, err := imp.Import("pkg.a")
	if !errors.Is(err, ErrImportCycle) {
		t.Errorf("Import() error = %v, want ErrImportCycle", err)
	}
}

func TestImportNotFound(t *testing.T) {
	imp := newTestImporter(t, t.TempDir())

	_, err := imp.Import("pkg.nope")
	if !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("Import() error = %v, want ErrModuleNotFound", err)
	}
	_, err = imp.Import("pkg..bad")
	if !errors.Is(err, ErrInvalidModuleID) {
		t.Errorf("Import() error = %v, want ErrInvalidModuleID", err)
	}
}

func TestReloadInPlace(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/r.lua": `local defs = require("defs"); First = defs.class("First")`,
	})
	imp := newTestImporter(t, root)

	m, err := imp.Import("pkg.r")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	old := m.Classes[0]

	writeTree(t, root, map[string]string{
		"pkg/r.lua": `local defs = require("defs"); First = nil; Second = defs.class("Second")`,
	})
	if err := imp.Reload(m); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if len(m.Classes) != 1 || m.Classes[0].Name() != "Second" || m.Classes[0] == old {
		t.Errorf("Classes after reload = %v", m.Classes)
	}

	stray := &addon.Module{ID: "pkg.other"}
	if err := imp.Reload(stray); !errors.Is(err, ErrNotImported) {
		t.Errorf("Reload(stray) error = %v, want ErrNotImported", err)
	}
}

func TestSearchPath(t *testing.T) {
	p := NewSearchPath()
	if !p.Add("/a") || p.Add("/a/") {
		t.Error("Add should be idempotent on cleaned paths")
	}
	p.Add("/b")
	if got := p.Roots(); len(got) != 2 || got[0] != "/a" || got[1] != "/b" {
		t.Errorf("Roots() = %v", got)
	}
	if !p.Remove("/a") || p.Remove("/a") {
		t.Error("Remove should report changes only once")
	}
	if p.Contains("/a") || !p.Contains("/b") || p.Len() != 1 {
		t.Errorf("Roots() = %v", p.Roots())
	}
	if DefaultSearchPath() != DefaultSearchPath() {
		t.Error("DefaultSearchPath should be a singleton")
	}
}

func TestClassValueIdentity(t *testing.T) {
	state := newTestState(t)
	L := state.LuaState()
	c := addon.NewClass("OpA", "m", addon.Base(addon.Operator))
	c.SetAttr("label", "A")

	v1 := ClassValue(L, c)
	v2 := ClassValue(L, c)
	if v1 != v2 {
		t.Fatal("ClassValue should return the same userdata")
	}
	got, ok := ToClass(v1)
	if !ok || got != c {
		t.Fatal("ToClass should return the class")
	}

	state.SetGlobal("OpA", v1)
	err := state.DoString(`
assert(OpA.label == "A")
assert(OpA.__name == "OpA")
assert(OpA.__roles[1] == "Operator")
OpA.description = "does A"
assert(tostring(OpA) == "m.OpA")
`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if v, _ := c.Attr("description"); v != "does A" {
		t.Errorf("description = %v", v)
	}
}

func TestTableAttributes(t *testing.T) {
	state := newTestState(t)
	L := state.LuaState()
	dep := addon.NewClass("Dep", "m", addon.Base(addon.PropertyGroup))
	c := addon.NewClass("OpA", "m", addon.Base(addon.Operator))

	state.SetGlobal("OpA", ClassValue(L, c))
	state.SetGlobal("Dep", ClassValue(L, dep))
	err := state.DoString(`
OpA.options = { "REGISTER", "UNDO" }
OpA.limits = { min = 1, max = 2.5, uses = Dep }
assert(OpA.options[2] == "UNDO")
assert(OpA.limits.uses == Dep)
assert(OpA.limits.uses.__name == "Dep")
`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	opts, _ := c.Attr("options")
	list, ok := opts.([]any)
	if !ok || len(list) != 2 || list[0] != "REGISTER" || list[1] != "UNDO" {
		t.Errorf("options = %#v", opts)
	}
	lim, _ := c.Attr("limits")
	m, ok := lim.(map[string]any)
	if !ok {
		t.Fatalf("limits = %#v", lim)
	}
	if m["min"] != int64(1) || m["max"] != 2.5 || m["uses"] != dep {
		t.Errorf("limits = %#v", m)
	}
}
