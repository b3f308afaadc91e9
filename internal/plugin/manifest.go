package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	lua "github.com/yuin/gopher-lua"

	plua "github.com/dshills/addonkit/internal/plugin/lua"
)

const (
	// ManifestName is the package manifest file inside an add-on directory.
	ManifestName = "init.lua"

	// IgnoreField is the manifest member listing excluded module fragments.
	IgnoreField = "ignore"

	defaultManifestTimeout = 2 * time.Second
)

// ManifestReader reads the ignore fragments declared by the package
// manifest of dir. A directory without a manifest, or a manifest that
// declares nothing, yields no fragments and no error.
type ManifestReader interface {
	Ignore(dir string) ([]string, error)
}

// LuaManifestReader executes init.lua in a fresh sandboxed state and reads
// its ignore member, either a global or a field of the returned table.
type LuaManifestReader struct {
	timeout time.Duration
}

// NewLuaManifestReader creates a manifest reader. A zero timeout uses the
// default.
func NewLuaManifestReader(timeout time.Duration) *LuaManifestReader {
	if timeout <= 0 {
		timeout = defaultManifestTimeout
	}
	return &LuaManifestReader{timeout: timeout}
}

// Ignore implements ManifestReader.
func (r *LuaManifestReader) Ignore(dir string) ([]string, error) {
	path := filepath.Join(dir, ManifestName)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, nil
	}

	state, err := plua.NewState(plua.WithExecutionTimeout(r.timeout))
	if err != nil {
		return nil, err
	}
	defer state.Close()

	env := state.NewEnv(filepath.Base(dir), path)
	ret, err := state.ExecFile(path, env)
	if err != nil {
		return nil, err
	}

	value := env.RawGetString(IgnoreField)
	if t, ok := ret.(*lua.LTable); ok {
		if v := t.RawGetString(IgnoreField); v != lua.LNil {
			value = v
		}
	}

	fragments, err := plua.NewBridge(state.LuaState()).StringList(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, path, err)
	}
	for _, f := range fragments {
		if _, err := plua.SplitID(f); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, path, err)
		}
	}
	return fragments, nil
}
