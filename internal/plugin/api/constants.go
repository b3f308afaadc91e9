package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/addonkit/internal/addon"
)

// ConstantsModule exposes report kinds, modes, object types and operator
// results.
type ConstantsModule struct{}

// NewConstantsModule creates the constants module.
func NewConstantsModule() *ConstantsModule {
	return &ConstantsModule{}
}

// Name returns the module name.
func (m *ConstantsModule) Name() string {
	return "constants"
}

// Register installs one table per constant group.
func (m *ConstantsModule) Register(L *lua.LState, tbl *lua.LTable) error {
	for group, values := range addon.ConstantTables() {
		t := L.NewTable()
		for k, v := range values {
			t.RawSetString(k, lua.LString(v))
		}
		L.SetField(tbl, group, t)
	}
	return nil
}
