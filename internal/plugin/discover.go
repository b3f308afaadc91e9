package plugin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	plua "github.com/dshills/addonkit/internal/plugin/lua"
)

// System directories never descended into.
var skipDirs = map[string]bool{
	"__luacache__": true,
	"__pycache__":  true,
	"node_modules": true,
}

// Discoverer enumerates the module identifiers of an add-on's target
// directories.
type Discoverer struct {
	root      Root
	debug     bool
	manifests ManifestReader
	logger    *log.Logger
}

// NewDiscoverer creates a discoverer for root. A nil reader reads manifests
// with a LuaManifestReader.
func NewDiscoverer(root Root, manifests ManifestReader, debug bool, logger *log.Logger) *Discoverer {
	if manifests == nil {
		manifests = NewLuaManifestReader(0)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Discoverer{
		root:      root,
		debug:     debug,
		manifests: manifests,
		logger:    logger,
	}
}

// Discover returns the identifiers of every module under dirs, in directory
// walk order. Each entry of dirs names a directory directly inside the add-on
// root; a name given twice is walked once.
//
// A missing target fails the whole call before anything is walked. Manifests
// that fail and directories that cannot be read are reported as diagnostics.
func (d *Discoverer) Discover(dirs []string) ([]string, []Diagnostic, error) {
	walks, err := d.walkAll(dirs)
	if err != nil {
		return nil, nil, err
	}

	var (
		ids   []string
		diags []Diagnostic
	)
	for _, w := range walks {
		d.logger.Debug("discovered", "target", w.target, "modules", len(w.ids))
		ids = append(ids, w.ids...)
		diags = append(diags, w.diags...)
	}
	return ids, diags, nil
}

// Directories returns every directory Discover descends into for dirs,
// targets included. Directories excluded by a manifest are left out.
func (d *Discoverer) Directories(dirs []string) ([]string, error) {
	walks, err := d.walkAll(dirs)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, w := range walks {
		out = append(out, w.dirs...)
	}
	return out, nil
}

func (d *Discoverer) walkAll(dirs []string) ([]*walk, error) {
	targets := make([]string, 0, len(dirs))
	seen := make(map[string]bool, len(dirs))
	for _, name := range dirs {
		name = strings.Trim(filepath.Clean(name), string(filepath.Separator))
		if seen[name] {
			continue
		}
		if err := d.checkTarget(name); err != nil {
			return nil, err
		}
		seen[name] = true
		targets = append(targets, name)
	}

	walks := make([]*walk, 0, len(targets))
	for _, target := range targets {
		ignore := NewIgnoreSet()
		if !d.debug {
			ignore.Add(DebugFragment)
		}
		w := &walk{d: d, target: target}
		w.dir(d.root.Target(target), "", ignore)
		walks = append(walks, w)
	}
	return walks, nil
}

func (d *Discoverer) checkTarget(name string) error {
	if name == "" || name == "." || strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, name)
	}
	path := d.root.Target(name)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}
	return nil
}

// walk collects the modules of one target directory.
type walk struct {
	d      *Discoverer
	target string
	dirs   []string
	ids    []string
	diags  []Diagnostic
}

// dir visits path, whose dotted position in the target is rel. inherited
// holds the fragments of the target and of every manifest above path.
func (w *walk) dir(path, rel string, inherited IgnoreSet) {
	w.dirs = append(w.dirs, path)
	ignore := inherited
	fragments, err := w.d.manifests.Ignore(path)
	if err != nil {
		w.d.logger.Warn("manifest failed", "dir", path, "err", err)
		w.diags = append(w.diags, manifestDiagnostic(filepath.Join(path, ManifestName), err))
	} else if len(fragments) > 0 {
		ignore = inherited.Merge(NewIgnoreSet(reroot(rel, fragments)...))
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		w.diags = append(w.diags, warningDiagnostic(CodeUnreadableDir, path,
			fmt.Sprintf("Skipped unreadable directory %s.", path), err))
		return
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			if strings.HasPrefix(name, ".") || skipDirs[name] {
				continue
			}
			childRel := join(rel, name)
			if strings.Contains(name, ".") {
				w.diags = append(w.diags, warningDiagnostic(CodeInvalidFileName, filepath.Join(path, name),
					fmt.Sprintf("Skipped directory %q: names cannot contain dots.", name), nil))
				continue
			}
			if ignore.Excludes(childRel) {
				w.d.logger.Debug("ignored", "package", childRel)
				continue
			}
			w.dir(filepath.Join(path, name), childRel, ignore)
			continue
		}

		if name == ManifestName || filepath.Ext(name) != plua.SourceExt || strings.HasPrefix(name, ".") {
			continue
		}
		stem := strings.TrimSuffix(name, plua.SourceExt)
		if stem == "" || strings.Contains(stem, ".") {
			w.diags = append(w.diags, warningDiagnostic(CodeInvalidFileName, filepath.Join(path, name),
				fmt.Sprintf("Skipped file %q: module names cannot contain dots.", name), nil))
			continue
		}
		modRel := join(rel, stem)
		if ignore.Excludes(modRel) {
			w.d.logger.Debug("ignored", "module", modRel)
			continue
		}
		w.ids = append(w.ids, w.d.root.ModuleID(w.target, modRel))
	}
}

func join(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "." + name
}
