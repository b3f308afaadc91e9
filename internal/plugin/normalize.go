package plugin

import "github.com/dshills/addonkit/internal/addon"

// Normalize fills in the attributes the host requires. Every class without
// an idname, declared or inherited, gets its own type name. When category is
// set, panels without a category of their own or from a parent are placed in
// it. Applying Normalize twice changes nothing.
//
// Injected idnames are private to their class so a subclass normalized later
// still derives its idname from its own name.
func Normalize(classes []*addon.Class, category string) {
	for _, c := range classes {
		if _, ok := c.LookupAttr(addon.AttrIDName); !ok {
			c.SetOwnAttr(addon.AttrIDName, c.Name())
		}
		if category == "" || !c.Implements(addon.Panel) {
			continue
		}
		if _, ok := c.LookupAttr(addon.AttrCategory); !ok {
			c.SetAttr(addon.AttrCategory, category)
		}
	}
}
