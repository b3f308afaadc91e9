package plugin

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root locates an add-on on disk.
type Root struct {
	// Dir is the absolute add-on directory.
	Dir string

	// Parent is the directory containing Dir. It is the search path entry
	// that makes the add-on importable by package name.
	Parent string

	// Package is the add-on's package name, the base name of Dir.
	Package string
}

// NewRoot resolves path, which may be the add-on directory itself or any
// file directly inside it.
func NewRoot(path string) (Root, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Root{}, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Root{}, fmt.Errorf("%w: %s", ErrNotADirectory, abs)
	}
	if !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	return Root{
		Dir:     abs,
		Parent:  filepath.Dir(abs),
		Package: filepath.Base(abs),
	}, nil
}

// Target returns the absolute path of a target directory.
func (r Root) Target(name string) string {
	return filepath.Join(r.Dir, name)
}

// ModuleID returns the identifier of a module inside target.
func (r Root) ModuleID(target, rel string) string {
	if rel == "" {
		return r.Package + "." + target
	}
	return r.Package + "." + target + "." + rel
}
