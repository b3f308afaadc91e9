// Package lua runs add-on source files on gopher-lua.
//
// # State
//
// State wraps a sandboxed LState: dofile, loadfile and load are removed,
// io/os/debug are only available with PermissionUnsafe, and require only
// returns safe built-ins, preloaded Go modules and add-on modules found by
// the importer.
//
// # Importer
//
// Importer executes modules by dotted identifier, resolving them against a
// SearchPath:
//
//	path := lua.NewSearchPath("/path/to/addons")
//	imp := lua.NewImporter(state, path)
//	mod, err := imp.Import("my_addon.operators.a")
//
// Each module runs in its own environment table whose reads fall through to
// the globals. The classes among its members and its register/unregister
// functions become the addon.Module's Classes and Hooks.
//
// # Errors
//
// Go errors raised into Lua with RaiseError keep their identity, so
// errors.Is works on the error returned by Import even when the failure
// happened several requires deep.
package lua
