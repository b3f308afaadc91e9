package plugin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/host/memhost"
	"github.com/dshills/addonkit/internal/input/keymap"
	plua "github.com/dshills/addonkit/internal/plugin/lua"
	"github.com/dshills/addonkit/internal/props"
)

// writeTree creates files below root. Keys are slash-separated paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// fixture is an add-on named my_addon in a temporary directory, with its
// own search path, markers, host and managers.
type fixture struct {
	dir     string
	path    *plua.SearchPath
	markers *addon.Markers
	host    *memhost.Host
	keymaps *keymap.Manager
	props   *props.Manager
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "my_addon")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeTree(t, dir, files)

	f := &fixture{
		dir:     dir,
		path:    plua.NewSearchPath(),
		markers: addon.NewMarkers(),
		host:    memhost.New(),
	}
	f.keymaps = keymap.New(f.host, f.markers)
	f.props = props.New(f.host, f.markers)
	return f
}

func (f *fixture) options(extra ...Option) []Option {
	opts := []Option{
		WithSearchPath(f.path),
		WithMarkers(f.markers),
		WithKeymaps(f.keymaps),
		WithProperties(f.props),
		WithHost(f.host.Bundle()),
	}
	return append(opts, extra...)
}

func (f *fixture) loader(t *testing.T, extra ...Option) *Loader {
	t.Helper()
	l, err := NewLoader(f.dir, f.options(extra...)...)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

// manager creates a manager with the add-on name my_addon. A later
// WithAddonName in extra overrides it.
func (f *fixture) manager(t *testing.T, dirs []string, extra ...Option) *Manager {
	t.Helper()
	opts := append([]Option{WithAddonName("my_addon")}, extra...)
	m, err := NewManager(f.dir, dirs, f.options(opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func names(classes []*addon.Class) []string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = c.Name()
	}
	return out
}

// staticManifests serves ignore fragments from memory, keyed by directory.
type staticManifests map[string][]string

func (s staticManifests) Ignore(dir string) ([]string, error) {
	return s[dir], nil
}
