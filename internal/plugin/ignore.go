package plugin

import (
	"sort"
	"strings"
)

// DebugFragment is excluded from every target directory unless debug mode
// is on.
const DebugFragment = "debug"

// IgnoreSet is a set of dotted module fragments relative to a target
// directory. A fragment excludes the module or package it names and
// everything beneath it.
type IgnoreSet map[string]struct{}

// NewIgnoreSet creates a set holding fragments.
func NewIgnoreSet(fragments ...string) IgnoreSet {
	s := make(IgnoreSet, len(fragments))
	s.Add(fragments...)
	return s
}

// Add adds fragments. Empty fragments are ignored.
func (s IgnoreSet) Add(fragments ...string) {
	for _, f := range fragments {
		f = strings.Trim(f, ".")
		if f == "" {
			continue
		}
		s[f] = struct{}{}
	}
}

// Merge returns a new set holding the fragments of s and other.
func (s IgnoreSet) Merge(other IgnoreSet) IgnoreSet {
	out := make(IgnoreSet, len(s)+len(other))
	for f := range s {
		out[f] = struct{}{}
	}
	for f := range other {
		out[f] = struct{}{}
	}
	return out
}

// Excludes reports whether rel, a dotted path relative to the target
// directory, is covered by a fragment. Matching is by whole segments:
// "debug" excludes "debug" and "debug.tools" but not "debugger".
func (s IgnoreSet) Excludes(rel string) bool {
	if _, ok := s[rel]; ok {
		return true
	}
	for i := strings.IndexByte(rel, '.'); i >= 0; {
		if _, ok := s[rel[:i]]; ok {
			return true
		}
		next := strings.IndexByte(rel[i+1:], '.')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return false
}

// Fragments returns the fragments in sorted order.
func (s IgnoreSet) Fragments() []string {
	out := make([]string, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of fragments.
func (s IgnoreSet) Len() int {
	return len(s)
}

// reroot prefixes fragments read from a nested manifest with the manifest
// directory's position inside the target directory.
func reroot(prefix string, fragments []string) []string {
	if prefix == "" {
		return fragments
	}
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.Trim(f, ".")
		if f == "" {
			continue
		}
		out = append(out, prefix+"."+f)
	}
	return out
}
