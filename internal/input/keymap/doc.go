// Package keymap manages the input bindings an add-on installs into the
// host's key configuration.
//
// A Manager records every binding it creates so they can be removed one at
// a time, per operator, or all at once on unregister. Default returns the
// process-wide manager used by add-on code through addon.keymap.add:
//
//	addon.keymap.add({ operator = OpA, key = "A", ctrl = true },
//	                 { name = "3D View", space_type = "VIEW_3D" })
//
// When the host has no active key configuration (background mode), Add
// installs nothing and returns no bindings.
package keymap
