package addon

import (
	"fmt"
	"sync"
)

// DisabledChecker reports whether a class carries the disable marker.
type DisabledChecker interface {
	IsDisabled(c *Class) bool
}

// Markers is a side table of per-class loader metadata.
type Markers struct {
	mu       sync.RWMutex
	disabled map[*Class]bool
	priority map[*Class]int
}

// NewMarkers creates an empty marker table.
func NewMarkers() *Markers {
	return &Markers{
		disabled: make(map[*Class]bool),
		priority: make(map[*Class]int),
	}
}

var (
	defaultMarkers     *Markers
	defaultMarkersOnce sync.Once
)

// DefaultMarkers returns the process-wide marker table.
func DefaultMarkers() *Markers {
	defaultMarkersOnce.Do(func() {
		defaultMarkers = NewMarkers()
	})
	return defaultMarkers
}

// Disable marks c as permanently excluded from extraction.
func (m *Markers) Disable(c *Class) error {
	if c == nil {
		return ErrNilClass
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.disabled[c]; ok {
		return fmt.Errorf("%w: disable on %s", ErrDuplicateMarker, c.Name())
	}
	m.disabled[c] = true
	return nil
}

// SetPriority assigns an explicit ordering rank. Lower ranks register first.
func (m *Markers) SetPriority(c *Class, rank int) error {
	if c == nil {
		return ErrNilClass
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.priority[c]; ok {
		return fmt.Errorf("%w: priority on %s", ErrDuplicateMarker, c.Name())
	}
	m.priority[c] = rank
	return nil
}

// IsDisabled reports whether c or any of its ancestors carries the disable
// marker.
func (m *Markers) IsDisabled(c *Class) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := lookup(m.disabled, c)
	return ok
}

// Priority returns the explicit rank of c. A class without its own rank
// takes the first rank found among its ancestors, depth-first.
func (m *Markers) Priority(c *Class) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return lookup(m.priority, c)
}

// lookup finds the marker of c or its nearest marked ancestor. Duplicate
// checks in Disable and SetPriority look at c alone, so a subclass may
// override an inherited rank.
func lookup[V any](table map[*Class]V, c *Class) (V, bool) {
	if c == nil {
		var zero V
		return zero, false
	}
	if v, ok := table[c]; ok {
		return v, true
	}
	return lookupParents(table, c, map[*Class]bool{c: true})
}

func lookupParents[V any](table map[*Class]V, c *Class, seen map[*Class]bool) (V, bool) {
	for _, p := range c.parents {
		if seen[p] {
			continue
		}
		seen[p] = true
		if v, ok := table[p]; ok {
			return v, true
		}
		if v, ok := lookupParents(table, p, seen); ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Reset removes all markers.
func (m *Markers) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disabled = make(map[*Class]bool)
	m.priority = make(map[*Class]int)
}
