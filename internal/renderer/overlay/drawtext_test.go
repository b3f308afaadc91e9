package overlay

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/addonkit/internal/host"
	"github.com/dshills/addonkit/internal/host/memhost"
)

func label(d *DrawText, args ...any) {
	_ = d.Draw(args[0].(string), host.Position{X: 10, Y: 20}, host.Color{1, 1, 1, 1}, 0)
}

func TestDisplayAndErase(t *testing.T) {
	view := memhost.NewView()
	d := New(view, view)
	assert.False(t, d.IsRegistered())

	shown, err := d.Display(nil, nil, "", "")
	require.NoError(t, err)
	assert.False(t, shown, "nothing to display yet")
	assert.Equal(t, 0, view.Handlers())

	shown, err = d.Display(label, []any{"Hello"}, "", "")
	require.NoError(t, err)
	assert.True(t, shown)
	assert.True(t, d.IsRegistered())
	assert.True(t, d.IsDrawing())
	assert.Equal(t, host.RegionWindow, d.Region())
	assert.Equal(t, host.DrawPostPixel, d.DrawType())
	assert.Equal(t, 1, view.Redraws())

	calls := view.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Hello", calls[0].Text)
	assert.Equal(t, float64(DefaultSize), calls[0].Size)

	require.NoError(t, d.Erase())
	assert.False(t, d.IsDrawing())
	assert.True(t, d.IsRegistered())
	assert.Equal(t, 0, view.Handlers())
	require.NoError(t, d.Erase())

	// The function and arguments are remembered.
	shown, err = d.Display(nil, nil, "", host.DrawPostView)
	require.NoError(t, err)
	assert.True(t, shown)
	assert.Equal(t, host.DrawPostView, d.DrawType())
	assert.Equal(t, "Hello", view.Calls()[len(view.Calls())-1].Text)
}

func TestDisplayReplacesHandler(t *testing.T) {
	view := memhost.NewView()
	d := New(view, view)

	_, err := d.Display(label, []any{"one"}, "", "")
	require.NoError(t, err)
	_, err = d.Display(nil, []any{"two"}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Handlers())

	view.Redraw()
	calls := view.Calls()
	assert.Equal(t, "two", calls[len(calls)-1].Text)
}

func TestClear(t *testing.T) {
	view := memhost.NewView()
	d := New(view, view)

	_, err := d.Display(label, []any{"x"}, "", "")
	require.NoError(t, err)
	require.NoError(t, d.Clear())

	assert.False(t, d.IsDrawing())
	assert.True(t, d.IsRegistered())
	assert.Nil(t, d.Args())
	assert.Empty(t, d.Region())
	assert.Empty(t, d.DrawType())
}

func TestFonts(t *testing.T) {
	view := memhost.NewView()
	d := New(view, view)
	assert.Equal(t, 0, d.Font())

	err := d.LoadFont(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.ErrorIs(t, err, ErrFontNotFound)
	assert.Contains(t, err.Error(), "DrawText: Error: Font")

	path := filepath.Join(t.TempDir(), "font.ttf")
	writeFile(t, path)
	require.NoError(t, d.LoadFont(path))
	assert.Equal(t, 1, d.Font())

	d.SetFont(0)
	require.NoError(t, d.Draw("x", host.Position{}, host.Color{}, 12))
	assert.Equal(t, 0, view.Calls()[0].Font)
	assert.Equal(t, 12.0, view.Calls()[0].Size)
}
