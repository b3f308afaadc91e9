package plugin

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/addonkit/internal/addon"
)

func addonTree() map[string]string {
	return map[string]string{
		"operators/a.lua": `
OpA = addon.class("MY_OT_a", addon.types.Operator, { label = "A" })
OpB = addon.priority(addon.class("MY_OT_b", addon.types.Operator), 1)
Hidden = addon.disable(addon.class("MY_OT_hidden", addon.types.Operator))
local helper = addon.class("Helper")
`,
		"operators/broken.lua": `error("boom")`,
		"operators/needs_broken.lua": `
local broken = require("my_addon.operators.broken")
Never = addon.class("MY_OT_never", addon.types.Operator)
`,
		"operators/reuse.lua": `
local a = require("my_addon.operators.a")
Again = a.OpA
OpC = addon.class("MY_OT_c", addon.types.Operator)
`,
		"operators/debug.lua": `DebugOp = addon.class("MY_OT_debug", addon.types.Operator)`,
		"panels/main.lua": `
MainPanel = addon.class("MY_PT_main", addon.types.Panel, { label = "Main" })
SidePanel = addon.class("MY_PT_side", addon.types.Panel, { category = "Side" })
`,
	}
}

func TestLoaderLoad(t *testing.T) {
	f := newFixture(t, addonTree())
	l := f.loader(t)

	res, err := l.Load([]string{"operators", "panels"}, "My Addon")
	require.NoError(t, err)

	var ids []string
	for _, m := range res.Modules {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{
		"my_addon.operators.a",
		"my_addon.operators.reuse",
		"my_addon.panels.main",
	}, ids)

	assert.Equal(t, []string{"MY_OT_b", "MY_OT_a", "MY_OT_c", "MY_PT_main", "MY_PT_side"}, names(res.Classes))
	for _, c := range res.Classes {
		assert.Equal(t, c.Name(), c.IDName())
	}
	cat, _ := res.Classes[3].Attr(addon.AttrCategory)
	assert.Equal(t, "My Addon", cat)
	cat, _ = res.Classes[4].Attr(addon.AttrCategory)
	assert.Equal(t, "Side", cat)

	require.Len(t, res.Diagnostics, 2)
	failed := map[string]Diagnostic{}
	for _, d := range res.Diagnostics {
		assert.Equal(t, CodeImportFailed, d.Code)
		assert.Equal(t, SeverityError, d.Severity)
		assert.Contains(t, d.Message, "Loader: Error: Failed to load")
		failed[d.Module] = d
	}
	assert.Contains(t, failed, "my_addon.operators.broken")
	assert.Contains(t, failed, "my_addon.operators.needs_broken")
	assert.Contains(t, failed["my_addon.operators.broken"].Cause.Error(), "boom")
}

func TestLoaderInheritance(t *testing.T) {
	f := newFixture(t, map[string]string{
		"panels/tools.lua": `
BasePanel = addon.class("MY_PT_base", addon.types.Panel, { category = "Tools", label = "L" })
Child = addon.class("MY_PT_child", BasePanel)
Grand = addon.class("MY_PT_grand", Child)
Bare = addon.class("MY_PT_bare", addon.types.Panel)
`,
		"operators/ops.lua": `
Base = addon.disable(addon.class("MY_OT_base", addon.types.Operator))
Sub = addon.class("MY_OT_sub", Base)
Ranked = addon.priority(addon.class("MY_OT_ranked", addon.types.Operator), 1)
RankedSub = addon.class("MY_OT_ranked_sub", Ranked)
Plain = addon.class("MY_OT_plain", addon.types.Operator)
`,
	})

	res, err := f.loader(t).Load([]string{"operators", "panels"}, "My Addon")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"MY_OT_ranked", "MY_OT_ranked_sub", "MY_OT_plain",
		"MY_PT_base", "MY_PT_child", "MY_PT_grand", "MY_PT_bare",
	}, names(res.Classes))

	byName := map[string]*addon.Class{}
	for _, c := range res.Classes {
		byName[c.Name()] = c
		assert.Equal(t, c.Name(), c.IDName())
	}
	for _, name := range []string{"MY_PT_base", "MY_PT_child", "MY_PT_grand"} {
		cat, ok := byName[name].LookupAttr(addon.AttrCategory)
		require.True(t, ok, name)
		assert.Equal(t, "Tools", cat, name)
	}
	cat, _ := byName["MY_PT_bare"].Attr(addon.AttrCategory)
	assert.Equal(t, "My Addon", cat)
}

func TestLoaderDebugIncludesDebugModules(t *testing.T) {
	f := newFixture(t, addonTree())
	res, err := f.loader(t, WithDebug(true)).Load([]string{"operators"}, "")
	require.NoError(t, err)
	assert.Contains(t, names(res.Classes), "MY_OT_debug")
}

func TestLoaderCapabilities(t *testing.T) {
	f := newFixture(t, addonTree())
	res, err := f.loader(t, WithCapabilities(addon.Panel)).Load([]string{"operators", "panels"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"MY_PT_main", "MY_PT_side"}, names(res.Classes))
}

func TestLoaderMissingTarget(t *testing.T) {
	f := newFixture(t, addonTree())
	_, err := f.loader(t).Load([]string{"operators", "menus"}, "")
	assert.ErrorIs(t, err, ErrNotADirectory)
}

func TestLoaderSearchPath(t *testing.T) {
	f := newFixture(t, addonTree())

	writeTree(t, f.dir, map[string]string{ManifestName: ``})
	l, err := NewLoader(filepath.Join(f.dir, ManifestName), f.options()...)
	require.NoError(t, err)
	assert.Equal(t, f.dir, l.Root().Dir)
	assert.Equal(t, "my_addon", l.Root().Package)
	assert.True(t, f.path.Contains(l.Root().Parent))
	assert.Equal(t, 1, f.path.Len())

	// A second loader for the same add-on does not add the entry again
	// and does not remove it on close.
	l2, err := NewLoader(f.dir, f.options()...)
	require.NoError(t, err)
	assert.Equal(t, 1, f.path.Len())
	require.NoError(t, l2.Close())
	assert.True(t, f.path.Contains(l.Root().Parent))

	require.NoError(t, l.Close())
	assert.Equal(t, 0, f.path.Len())
	require.NoError(t, l.Close())

	_, err = l.Load([]string{"operators"}, "")
	assert.ErrorIs(t, err, ErrLoaderClosed)
}

func TestNewLoaderMissingPath(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrNotADirectory)
}
