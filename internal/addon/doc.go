// Package addon defines the core types shared by the add-on loader: recognized
// capabilities, add-on classes, loaded modules and the marker side table.
//
// A class is created once, at definition time, by add-on code running in the
// Lua runtime:
//
//	OpA = addon.class("OpA", addon.types.Operator, { label = "Do A" })
//	addon.priority(OpA, 1)
//
// The parents passed at definition resolve the class's roles immediately, so
// discovery only checks role membership and never walks a type hierarchy.
//
// Markers (disable, priority) are not stored on the class. They live in a
// Markers table keyed by class, which rejects a second application of the same
// marker with ErrDuplicateMarker.
package addon
