// Package api provides the "addon" Lua module add-on code is written against.
//
// The module is assembled from API modules registered in a Registry and is
// available both as the global addon and through require("addon"):
//
//	local addon = require("addon")
//
//	OpA = addon.class("OpA", addon.types.Operator, { label = "Do A" })
//	addon.priority(OpA, 1)
//
//	Hidden = addon.disable(addon.class("Hidden", addon.types.Panel))
//
//	function register()
//	    addon.keymap.add({ operator = OpA, key = "A", ctrl = true })
//	end
//
// Fields:
//   - class, disable, priority, is_disabled, types (core)
//   - report, mode, object_type, op (constants)
//   - keymap.add, keymap.delete (keymap, when a keymap manager is configured)
//   - props.add, props.name (props, when a properties manager is configured)
package api
