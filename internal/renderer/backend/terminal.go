// Package backend draws overlay text on a terminal.
package backend

import (
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/addonkit/internal/host"
)

// BoldSize is the text size from which text is drawn bold. Terminals have a
// single font size, so size only selects the weight.
const BoldSize = 16

type handler struct {
	fn       func()
	region   string
	drawType string
}

// Terminal implements host.TextRenderer and host.DrawHost on a tcell
// screen. Positions are cell coordinates with the origin at the top left.
type Terminal struct {
	mu sync.Mutex

	screen   tcell.Screen
	fonts    []string
	next     host.DrawHandle
	handlers map[host.DrawHandle]handler
	order    []host.DrawHandle
}

// NewTerminal creates a terminal backend on the process's terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen creates a terminal backend on screen. Tests pass a
// tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen:   screen,
		handlers: make(map[host.DrawHandle]handler),
	}
}

// Init initializes the screen.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Init()
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// LoadFont implements host.TextRenderer. The terminal cannot change fonts;
// the path is remembered and a new id returned. Ids start at 1.
func (t *Terminal) LoadFont(path string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fonts = append(t.fonts, path)
	return len(t.fonts), nil
}

// DrawText implements host.TextRenderer. Text running past the right edge
// is clipped. A fully transparent color draws with the default foreground.
func (t *Terminal) DrawText(font int, text string, pos host.Position, color host.Color, size float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if font < 0 || font > len(t.fonts) {
		return fmt.Errorf("font %d: %w", font, host.ErrNotFound)
	}

	style := tcell.StyleDefault
	if color[3] > 0 {
		style = style.Foreground(toRGB(color))
	}
	if size >= BoldSize {
		style = style.Bold(true)
	}

	w, h := t.screen.Size()
	x, y := int(math.Round(pos.X)), int(math.Round(pos.Y))
	if y < 0 || y >= h {
		return nil
	}
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= w {
			break
		}
		if x >= 0 {
			t.screen.SetContent(x, y, r, nil, style)
		}
		x += rw
	}
	return nil
}

func toRGB(c host.Color) tcell.Color {
	channel := func(v float64) int32 {
		return int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return tcell.NewRGBColor(channel(c[0]), channel(c[1]), channel(c[2]))
}

// AddDrawHandler implements host.DrawHost.
func (t *Terminal) AddDrawHandler(fn func(), region, drawType string) (host.DrawHandle, error) {
	if fn == nil {
		return 0, fmt.Errorf("nil draw handler")
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	t.handlers[t.next] = handler{fn: fn, region: region, drawType: drawType}
	t.order = append(t.order, t.next)
	return t.next, nil
}

// RemoveDrawHandler implements host.DrawHost.
func (t *Terminal) RemoveDrawHandler(h host.DrawHandle, region string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	hd, ok := t.handlers[h]
	if !ok || hd.region != region {
		return fmt.Errorf("draw handler %d in %s: %w", h, region, host.ErrNotFound)
	}
	delete(t.handlers, h)
	for i, o := range t.order {
		if o == h {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// Redraw implements host.DrawHost. It clears the screen, runs every
// handler in the order they were added, and shows the result.
func (t *Terminal) Redraw() {
	t.mu.Lock()
	fns := make([]func(), 0, len(t.order))
	for _, h := range t.order {
		fns = append(fns, t.handlers[h].fn)
	}
	t.screen.Clear()
	t.mu.Unlock()

	for _, fn := range fns {
		fn()
	}

	t.mu.Lock()
	t.screen.Show()
	t.mu.Unlock()
}

// Handlers returns the number of installed draw handlers.
func (t *Terminal) Handlers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.handlers)
}

// WaitKey blocks until a key is pressed and returns it. Resize events
// trigger a redraw.
func (t *Terminal) WaitKey() *tcell.EventKey {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			return ev
		case *tcell.EventResize:
			t.screen.Sync()
			t.Redraw()
		}
	}
}
