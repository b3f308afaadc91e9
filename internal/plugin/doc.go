// Package plugin discovers, loads and registers add-ons.
//
// An add-on is a directory of Lua modules. Its classes live in target
// directories (for example "operators" and "panels") directly inside the
// add-on directory:
//
//	my_addon/
//	    init.lua            package manifest, may declare ignore = {...}
//	    operators/
//	        a.lua           module my_addon.operators.a
//	        debug.lua       skipped unless debug mode is on
//	        tools/
//	            init.lua    nested manifest, ignores relative to tools/
//	            b.lua       module my_addon.operators.tools.b
//
// # Loading
//
// A Loader walks the target directories, imports every module found and
// collects the classes that implement a host capability:
//
//	l, err := plugin.NewLoader("path/to/my_addon")
//	if err != nil {
//	    return err
//	}
//	defer l.Close()
//
//	res, err := l.Load([]string{"operators", "panels"}, "My Addon")
//	for _, d := range res.Diagnostics {
//	    fmt.Println(d.Message)
//	}
//
// Modules that fail to import do not stop loading. They are left out of
// the result and reported as diagnostics.
//
// # Registration
//
// A Manager loads once and then registers the classes with the host:
//
//	m, err := plugin.NewManager(path, []string{"operators", "panels"},
//	    plugin.WithHost(h),
//	    plugin.WithCategory("My Addon"),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := m.Register(); err != nil {
//	    return err
//	}
//	defer m.Close()
//
// Classes register in priority order; classes without a priority follow in
// definition order. Unregister reverses everything Register did and also
// removes the keymaps and properties the add-on created.
//
// # Debug mode
//
// With WithDebug(true), modules named by the "debug" fragment are loaded,
// Reload re-executes modules in place and Watch reloads on file changes.
package plugin
