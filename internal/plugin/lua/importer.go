package lua

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/addonkit/internal/addon"
)

// ImporterOption configures an Importer.
type ImporterOption func(*Importer)

// WithImportLogger sets the logger used for import events.
func WithImportLogger(l *log.Logger) ImporterOption {
	return func(imp *Importer) {
		imp.logger = l
	}
}

type entry struct {
	mod   *addon.Module
	env   *lua.LTable
	value lua.LValue
}

// Importer executes add-on modules by dotted identifier.
//
// Each module runs in its own environment table. Its members are the
// environment's fields, or the fields of the table the chunk returns.
// Successful imports are cached; failed ones are not, so a later require of
// a failed module tries again and fails at that point.
//
// An Importer shares its State's goroutine restriction.
type Importer struct {
	state  *State
	path   *SearchPath
	logger *log.Logger

	entries map[string]*entry
	loading []string
}

// NewImporter creates an importer and installs it as the state's require
// resolver.
func NewImporter(state *State, path *SearchPath, opts ...ImporterOption) *Importer {
	imp := &Importer{
		state:   state,
		path:    path,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(imp)
	}
	if imp.logger == nil {
		imp.logger = log.New(io.Discard)
	}
	state.Sandbox().SetResolver(imp.require)
	return imp
}

// SearchPath returns the path modules are resolved against.
func (imp *Importer) SearchPath() *SearchPath {
	return imp.path
}

// Current returns the identifier of the module being executed, or "".
func (imp *Importer) Current() string {
	if len(imp.loading) == 0 {
		return ""
	}
	return imp.loading[len(imp.loading)-1]
}

// Loaded reports whether id has been imported successfully.
func (imp *Importer) Loaded(id string) bool {
	_, ok := imp.entries[id]
	return ok
}

// Import executes the module id, or returns the cached module.
func (imp *Importer) Import(id string) (*addon.Module, error) {
	e, err := imp.load(id)
	if err != nil {
		return nil, err
	}
	return e.mod, nil
}

// ImportAll imports ids in order. A module that fails is reported and
// excluded from the result; the remaining modules are still imported.
func (imp *Importer) ImportAll(ids []string) ([]*addon.Module, []*ImportError) {
	var (
		mods     []*addon.Module
		failures []*ImportError
		seen     = make(map[*addon.Module]bool)
	)
	for _, id := range ids {
		m, err := imp.Import(id)
		if err != nil {
			var ie *ImportError
			if !errors.As(err, &ie) || ie.ID != id {
				ie = &ImportError{ID: id, Err: err}
			}
			imp.logger.Error("import failed", "module", id, "err", ie.Err)
			failures = append(failures, ie)
			continue
		}
		if !seen[m] {
			seen[m] = true
			mods = append(mods, m)
		}
	}
	return mods, failures
}

// Reload re-executes m in its existing environment and refreshes its
// classes and hooks. m keeps its identity.
func (imp *Importer) Reload(m *addon.Module) error {
	e, ok := imp.entries[m.ID]
	if !ok || e.mod != m {
		return fmt.Errorf("%w: %s", ErrNotImported, m.ID)
	}

	value, err := imp.exec(m.ID, m.Path, e.env)
	if err != nil {
		return &ImportError{ID: m.ID, Path: m.Path, Err: err}
	}
	e.value = value
	imp.collect(e)
	imp.setLoaded(m.ID, imp.moduleValue(e))
	imp.logger.Debug("reloaded", "module", m.ID, "classes", len(m.Classes))
	return nil
}

// require resolves require calls from add-on code.
func (imp *Importer) require(L *lua.LState, id string) (lua.LValue, error) {
	e, err := imp.load(id)
	if err != nil {
		return lua.LNil, err
	}
	return imp.moduleValue(e), nil
}

func (imp *Importer) load(id string) (*entry, error) {
	if e, ok := imp.entries[id]; ok {
		return e, nil
	}
	for _, l := range imp.loading {
		if l == id {
			return nil, &ImportError{ID: id, Err: fmt.Errorf("%w: %s", ErrImportCycle, id)}
		}
	}

	path, err := imp.path.Resolve(id)
	if err != nil {
		return nil, &ImportError{ID: id, Err: err}
	}

	e := &entry{
		mod: &addon.Module{ID: id, Path: path},
		env: imp.state.NewEnv(id, path),
	}
	value, err := imp.exec(id, path, e.env)
	if err != nil {
		return nil, &ImportError{ID: id, Path: path, Err: err}
	}
	e.value = value
	imp.collect(e)

	imp.entries[id] = e
	imp.setLoaded(id, imp.moduleValue(e))
	imp.logger.Debug("imported", "module", id, "classes", len(e.mod.Classes))
	return e, nil
}

func (imp *Importer) exec(id, path string, env *lua.LTable) (lua.LValue, error) {
	imp.loading = append(imp.loading, id)
	defer func() { imp.loading = imp.loading[:len(imp.loading)-1] }()

	return imp.state.ExecFile(path, env)
}

// moduleValue is what require returns for a module.
func (imp *Importer) moduleValue(e *entry) lua.LValue {
	if t, ok := e.value.(*lua.LTable); ok {
		return t
	}
	return e.env
}

func (imp *Importer) setLoaded(id string, v lua.LValue) {
	pkg, ok := imp.state.L.GetGlobal("package").(*lua.LTable)
	if !ok {
		return
	}
	if loaded, ok := pkg.RawGetString("loaded").(*lua.LTable); ok {
		loaded.RawSetString(id, v)
	}
}

// collect rebuilds the module's classes and hooks from its members.
func (imp *Importer) collect(e *entry) {
	members := e.env
	if t, ok := e.value.(*lua.LTable); ok {
		members = t
	}

	var classes []*addon.Class
	seen := make(map[*addon.Class]bool)
	members.ForEach(func(_, v lua.LValue) {
		c, ok := ToClass(v)
		if !ok || c.IsBase() || seen[c] {
			return
		}
		seen[c] = true
		classes = append(classes, c)
	})
	sort.Slice(classes, func(i, j int) bool { return classes[i].Seq() < classes[j].Seq() })
	e.mod.Classes = classes

	b := NewBridge(imp.state.L)
	hooks := make(map[string]addon.Hook)
	for _, name := range []string{addon.HookRegister, addon.HookUnregister} {
		fn, ok := b.GetTableFunc(members, name)
		if !ok {
			continue
		}
		hooks[name] = func() error {
			_, err := imp.state.CallFunction(fn)
			return err
		}
	}
	e.mod.Hooks = hooks
}
