// Package config loads add-on configuration.
//
// An add-on root may contain an addon.toml file providing defaults for the
// loader and registration facade:
//
//	name         = "my_addon"
//	namespace    = "myaddon"
//	category     = "My Addon"
//	debug        = false
//	target_dirs  = ["operators", "panels"]
//	translations = "translations.yaml"
//	capabilities = ["Operator", "Panel"]
//
// A missing file is not an error; defaults derived from the root directory
// are used instead.
package config
