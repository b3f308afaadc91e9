package plugin

import (
	"sort"

	"github.com/dshills/addonkit/internal/addon"
)

// MarkerReader exposes the per-class markers consulted by Extract and Rank.
// *addon.Markers implements it.
type MarkerReader interface {
	IsDisabled(c *addon.Class) bool
	Priority(c *addon.Class) (int, bool)
}

// Extract returns the classes of mods that implement one of caps and are
// not disabled. Classes keep module order and definition order inside a
// module; a class reachable from several modules appears once, at its
// first position.
func Extract(mods []*addon.Module, caps []addon.Capability, markers MarkerReader) []*addon.Class {
	var out []*addon.Class
	seen := make(map[*addon.Class]bool)
	for _, m := range mods {
		for _, c := range m.Classes {
			if seen[c] {
				continue
			}
			seen[c] = true
			if !c.Implements(caps...) {
				continue
			}
			if markers != nil && markers.IsDisabled(c) {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// Rank orders classes for registration. Classes with an explicit priority
// come first in ascending priority; the rest follow. Ties keep their input
// order. The input slice is not modified.
func Rank(classes []*addon.Class, markers MarkerReader) []*addon.Class {
	type ranked struct {
		c        *addon.Class
		priority int
		has      bool
	}
	rs := make([]ranked, len(classes))
	for i, c := range classes {
		rs[i].c = c
		if markers != nil {
			rs[i].priority, rs[i].has = markers.Priority(c)
		}
	}

	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if a.has != b.has {
			return a.has
		}
		return a.has && a.priority < b.priority
	})

	out := make([]*addon.Class, len(rs))
	for i, r := range rs {
		out[i] = r.c
	}
	return out
}
