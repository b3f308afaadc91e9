package lua

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SourceExt is the extension of add-on source files.
const SourceExt = ".lua"

// SearchPath is an ordered list of directories module identifiers are
// resolved against. The first segment of an identifier names a directory
// directly below one of the roots.
type SearchPath struct {
	mu    sync.RWMutex
	roots []string
}

// NewSearchPath creates a search path with the given roots.
func NewSearchPath(roots ...string) *SearchPath {
	p := &SearchPath{}
	for _, r := range roots {
		p.Add(r)
	}
	return p
}

var (
	defaultSearchPath     *SearchPath
	defaultSearchPathOnce sync.Once
)

// DefaultSearchPath returns the process-wide search path.
func DefaultSearchPath() *SearchPath {
	defaultSearchPathOnce.Do(func() {
		defaultSearchPath = NewSearchPath()
	})
	return defaultSearchPath
}

// Add appends root unless it is already present. It reports whether the
// path changed.
func (p *SearchPath) Add(root string) bool {
	root = filepath.Clean(root)

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, r := range p.roots {
		if r == root {
			return false
		}
	}
	p.roots = append(p.roots, root)
	return true
}

// Remove deletes root. It reports whether the path changed.
func (p *SearchPath) Remove(root string) bool {
	root = filepath.Clean(root)

	p.mu.Lock()
	defer p.mu.Unlock()

	for i, r := range p.roots {
		if r == root {
			p.roots = append(p.roots[:i], p.roots[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether root is on the path.
func (p *SearchPath) Contains(root string) bool {
	root = filepath.Clean(root)

	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, r := range p.roots {
		if r == root {
			return true
		}
	}
	return false
}

// Roots returns a copy of the roots in order.
func (p *SearchPath) Roots() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.roots))
	copy(out, p.roots)
	return out
}

// Len returns the number of roots.
func (p *SearchPath) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.roots)
}

// SplitID validates a dotted identifier and returns its segments.
func SplitID(id string) ([]string, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidModuleID)
	}
	parts := strings.Split(id, ".")
	for _, part := range parts {
		if part == "" || strings.ContainsAny(part, `/\`) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidModuleID, id)
		}
	}
	return parts, nil
}

// Resolve returns the source file for id from the first root holding it.
func (p *SearchPath) Resolve(id string) (string, error) {
	parts, err := SplitID(id)
	if err != nil {
		return "", err
	}
	rel := filepath.Join(parts...) + SourceExt

	for _, root := range p.Roots() {
		path := filepath.Join(root, rel)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrModuleNotFound, id)
}
