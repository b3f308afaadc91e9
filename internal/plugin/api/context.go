package api

import (
	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/input/keymap"
	"github.com/dshills/addonkit/internal/props"
)

// ModuleTracker reports which module is executing.
type ModuleTracker interface {
	Current() string
}

// Context carries the collaborators API modules call into.
type Context struct {
	// Markers receives disable and priority markers. Nil means
	// addon.DefaultMarkers().
	Markers *addon.Markers

	// Tracker names the module classes are defined in. May be nil.
	Tracker ModuleTracker

	// Keymaps backs addon.keymap. May be nil.
	Keymaps *keymap.Manager

	// Props backs addon.props. May be nil.
	Props *props.Manager
}

func (c *Context) markers() *addon.Markers {
	if c.Markers == nil {
		return addon.DefaultMarkers()
	}
	return c.Markers
}

func (c *Context) current() string {
	if c.Tracker == nil {
		return ""
	}
	return c.Tracker.Current()
}
