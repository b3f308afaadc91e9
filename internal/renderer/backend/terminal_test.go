package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/addonkit/internal/host"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	require.NoError(t, term.Init())
	screen.SetSize(20, 5)
	t.Cleanup(term.Shutdown)
	return term, screen
}

func rowText(s tcell.Screen, y, from, to int) string {
	var out []rune
	for x := from; x < to; x++ {
		r, _, _, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		out = append(out, r)
	}
	return string(out)
}

func TestTerminalDrawText(t *testing.T) {
	term, screen := newSimTerminal(t)

	err := term.DrawText(0, "hello", host.Position{X: 2, Y: 1}, host.Color{1, 0, 0, 1}, 20)
	require.NoError(t, err)
	assert.Equal(t, "hello", rowText(screen, 1, 2, 7))

	_, _, style, _ := screen.GetContent(2, 1) //nolint:staticcheck // GetContent is the correct API
	fg, _, attrs := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
	assert.NotZero(t, attrs&tcell.AttrBold)

	require.NoError(t, term.DrawText(0, "plain", host.Position{X: 0, Y: 2}, host.Color{}, 10))
	_, _, style, _ = screen.GetContent(0, 2) //nolint:staticcheck // GetContent is the correct API
	fg, _, attrs = style.Decompose()
	assert.Equal(t, tcell.ColorDefault, fg)
	assert.Zero(t, attrs&tcell.AttrBold)
}

func TestTerminalDrawTextClips(t *testing.T) {
	term, screen := newSimTerminal(t)

	require.NoError(t, term.DrawText(0, "abcdef", host.Position{X: 17, Y: 0}, host.Color{}, 10))
	assert.Equal(t, "abc", rowText(screen, 0, 17, 20))

	require.NoError(t, term.DrawText(0, "xyz", host.Position{X: -1, Y: 4}, host.Color{}, 10))
	assert.Equal(t, "yz", rowText(screen, 4, 0, 2))

	assert.NoError(t, term.DrawText(0, "off", host.Position{X: 0, Y: 9}, host.Color{}, 10))
}

func TestTerminalFonts(t *testing.T) {
	term, _ := newSimTerminal(t)

	id, err := term.LoadFont("a.ttf")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	id, err = term.LoadFont("b.ttf")
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	assert.NoError(t, term.DrawText(2, "x", host.Position{}, host.Color{}, 10))
	assert.ErrorIs(t, term.DrawText(3, "x", host.Position{}, host.Color{}, 10), host.ErrNotFound)
}

func TestTerminalDrawHandlers(t *testing.T) {
	term, screen := newSimTerminal(t)

	var order []string
	h1, err := term.AddDrawHandler(func() {
		order = append(order, "first")
		_ = term.DrawText(0, "one", host.Position{}, host.Color{}, 10)
	}, host.RegionWindow, host.DrawPostPixel)
	require.NoError(t, err)
	_, err = term.AddDrawHandler(func() { order = append(order, "second") }, host.RegionWindow, host.DrawPostView)
	require.NoError(t, err)

	term.Redraw()
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, "one", rowText(screen, 0, 0, 3))

	assert.ErrorIs(t, term.RemoveDrawHandler(h1, "HEADER"), host.ErrNotFound)
	require.NoError(t, term.RemoveDrawHandler(h1, host.RegionWindow))
	assert.Equal(t, 1, term.Handlers())

	order = nil
	term.Redraw()
	assert.Equal(t, []string{"second"}, order)
	assert.Equal(t, "   ", rowText(screen, 0, 0, 3), "redraw clears the screen")

	_, err = term.AddDrawHandler(nil, host.RegionWindow, host.DrawPostPixel)
	assert.Error(t, err)
}

func TestTerminalWaitKey(t *testing.T) {
	term, screen := newSimTerminal(t)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	ev := term.WaitKey()
	require.NotNil(t, ev)
	assert.Equal(t, 'q', ev.Rune())
}
