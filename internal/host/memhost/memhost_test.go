package memhost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/host"
	"github.com/dshills/addonkit/internal/i18n"
)

func TestClassRegistry(t *testing.T) {
	h := New()
	a := addon.NewClass("OpA", "m", addon.Base(addon.Operator))
	b := addon.NewClass("OpB", "m", addon.Base(addon.Operator))

	require.NoError(t, h.RegisterClass(a))
	require.NoError(t, h.RegisterClass(b))
	assert.ErrorIs(t, h.RegisterClass(a), host.ErrAlreadyRegistered)
	assert.Equal(t, []*addon.Class{a, b}, h.Registered())

	require.NoError(t, h.UnregisterClass(a))
	assert.ErrorIs(t, h.UnregisterClass(a), host.ErrNotRegistered)
	assert.False(t, h.IsRegistered(a))
	assert.True(t, h.IsRegistered(b))
	assert.Equal(t, []string{"register OpA", "register OpB", "unregister OpA"}, h.Log())
}

func TestFailRegister(t *testing.T) {
	h := New()
	a := addon.NewClass("OpA", "m", addon.Base(addon.Operator))
	boom := errors.New("boom")

	h.FailRegister("OpA", boom)
	assert.ErrorIs(t, h.RegisterClass(a), boom)
	require.NoError(t, h.RegisterClass(a))
}

func TestKeyConfig(t *testing.T) {
	h := New()
	kc, ok := h.AddonKeyConfig()
	require.True(t, ok)

	spec := host.KeymapSpec{Name: "Window", SpaceType: "EMPTY", RegionType: "WINDOW"}
	km1, err := kc.NewKeymap(spec)
	require.NoError(t, err)
	km2, err := kc.NewKeymap(spec)
	require.NoError(t, err)
	assert.Same(t, km1, km2)

	item, err := km1.NewItem(host.ItemSpec{IDName: "OpA", Type: "A", Value: "PRESS"})
	require.NoError(t, err)
	assert.Equal(t, "OpA", item.IDName())
	assert.Equal(t, 1, h.KeyConfig().ItemCount())

	require.NoError(t, km1.RemoveItem(item))
	assert.ErrorIs(t, km1.RemoveItem(item), host.ErrNotFound)
	assert.Equal(t, 0, h.KeyConfig().ItemCount())

	_, err = km1.NewItem(host.ItemSpec{})
	assert.Error(t, err)
}

func TestHeadless(t *testing.T) {
	h := New(WithHeadless())
	_, ok := h.AddonKeyConfig()
	assert.False(t, ok)
}

func TestPointers(t *testing.T) {
	h := New()
	g := addon.NewClass("Settings", "m", addon.Base(addon.PropertyGroup))

	require.NoError(t, h.AttachPointer("Scene", "ns_settings", g))
	got, ok := h.Pointer("Scene", "ns_settings")
	require.True(t, ok)
	assert.Same(t, g, got)
	assert.Equal(t, 1, h.PointerCount())

	require.NoError(t, h.DetachPointer("Scene", "ns_settings"))
	assert.ErrorIs(t, h.DetachPointer("Scene", "ns_settings"), host.ErrNotFound)
	assert.Equal(t, 0, h.PointerCount())
	assert.ErrorIs(t, h.AttachPointer("Scene", "x", nil), addon.ErrNilClass)
}

func TestTranslations(t *testing.T) {
	h := New()
	tbl := make(i18n.Table)
	tbl.Add("fr", "", "Hello", "Bonjour")

	require.NoError(t, h.Register("ns", tbl))
	assert.ErrorIs(t, h.Register("ns", tbl), host.ErrAlreadyRegistered)
	_, ok := h.Translation("ns")
	assert.True(t, ok)

	require.NoError(t, h.Unregister("ns"))
	assert.ErrorIs(t, h.Unregister("ns"), host.ErrNotRegistered)
}

func TestView(t *testing.T) {
	v := NewView()
	calls := 0
	hd, err := v.AddDrawHandler(func() { calls++ }, host.RegionWindow, host.DrawPostPixel)
	require.NoError(t, err)

	v.Redraw()
	assert.Equal(t, 1, calls)

	assert.ErrorIs(t, v.RemoveDrawHandler(hd, "HEADER"), host.ErrNotFound)
	require.NoError(t, v.RemoveDrawHandler(hd, host.RegionWindow))
	v.Redraw()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, v.Redraws())

	font, err := v.LoadFont("mono.ttf")
	require.NoError(t, err)
	require.NoError(t, v.DrawText(font, "hi", host.Position{X: 1}, host.Color{1, 1, 1, 1}, 12))
	assert.ErrorIs(t, v.DrawText(9, "hi", host.Position{}, host.Color{}, 12), host.ErrNotFound)
	require.Len(t, v.Calls(), 1)
	assert.Equal(t, "hi", v.Calls()[0].Text)
}

func TestObject(t *testing.T) {
	o := Object{"ns_settings": 3}
	v, ok := o.Property("ns_settings")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}
