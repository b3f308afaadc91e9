package plugin

import (
	"errors"

	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/plugin/api"
	plua "github.com/dshills/addonkit/internal/plugin/lua"
)

// Result is the outcome of loading an add-on.
type Result struct {
	// Modules are the successfully imported modules in discovery order.
	Modules []*addon.Module

	// Classes are the registrable classes in ranked order, normalized.
	Classes []*addon.Class

	// Diagnostics are the non-fatal problems met while loading.
	Diagnostics []Diagnostic
}

// Loader discovers, imports and ranks the classes of one add-on.
//
// A Loader owns a Lua state and must be used from one goroutine at a time.
type Loader struct {
	root Root
	options

	state     *plua.State
	importer  *plua.Importer
	addedPath bool
	closed    bool
}

// NewLoader creates a loader for the add-on at path, which may be the add-on
// directory or a file inside it. The add-on's parent directory is added to
// the search path so its modules import by package name.
func NewLoader(path string, opts ...Option) (*Loader, error) {
	root, err := NewRoot(path)
	if err != nil {
		return nil, err
	}
	return newLoader(root, newOptions(opts))
}

func newLoader(root Root, o options) (*Loader, error) {
	l := &Loader{root: root, options: o}

	var stateOpts []plua.StateOption
	if l.timeout > 0 {
		stateOpts = append(stateOpts, plua.WithExecutionTimeout(l.timeout))
	}
	var err error
	l.state, err = plua.NewState(stateOpts...)
	if err != nil {
		return nil, err
	}
	l.importer = plua.NewImporter(l.state, l.path, plua.WithImportLogger(l.logger))

	reg := api.NewDefaultRegistry(&api.Context{
		Markers: l.markers,
		Tracker: l.importer,
		Keymaps: l.keymaps,
		Props:   l.props,
	})
	if err := reg.Install(l.state); err != nil {
		_ = l.state.Close()
		return nil, err
	}

	l.addedPath = l.path.Add(root.Parent)
	l.logger.Debug("loader ready", "package", root.Package, "dir", root.Dir)
	return l, nil
}

// Root returns the add-on location.
func (l *Loader) Root() Root {
	return l.root
}

// Debug reports whether debug mode is on.
func (l *Loader) Debug() bool {
	return l.debug
}

// Importer returns the importer modules are loaded with.
func (l *Loader) Importer() *plua.Importer {
	return l.importer
}

// Load discovers and imports the modules of dirs, then extracts, ranks and
// normalizes their classes. Panels without a category are placed in
// category when it is non-empty.
//
// Only structural problems (a missing target directory) return an error.
// Modules that fail to import are left out of the result and reported as
// diagnostics.
func (l *Loader) Load(dirs []string, category string) (*Result, error) {
	if l.closed {
		return nil, ErrLoaderClosed
	}

	ids, diags, err := NewDiscoverer(l.root, l.manifests, l.debug, l.logger).Discover(dirs)
	if err != nil {
		return nil, err
	}

	mods, failures := l.importer.ImportAll(ids)
	for _, f := range failures {
		diags = append(diags, importDiagnostic(f.ID, f.Path, f.Err))
	}

	res := &Result{
		Modules:     mods,
		Classes:     l.Classes(mods, category),
		Diagnostics: diags,
	}
	l.logger.Info("loaded", "package", l.root.Package, "modules", len(mods),
		"classes", len(res.Classes), "diagnostics", len(diags))
	return res, nil
}

// Classes extracts, ranks and normalizes the classes of mods.
func (l *Loader) Classes(mods []*addon.Module, category string) []*addon.Class {
	classes := Rank(Extract(mods, l.caps, l.markers), l.markers)
	Normalize(classes, category)
	return classes
}

// Reload re-executes mods in place. Every module is attempted; the errors
// of those that fail are joined.
func (l *Loader) Reload(mods []*addon.Module) error {
	if l.closed {
		return ErrLoaderClosed
	}
	var errs []error
	for _, m := range mods {
		if err := l.importer.Reload(m); err != nil {
			l.logger.Error("reload failed", "module", m.ID, "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close releases the Lua state and removes the search path entry the loader
// added.
func (l *Loader) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if l.addedPath {
		l.path.Remove(l.root.Parent)
	}
	return l.state.Close()
}
