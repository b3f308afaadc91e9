package memhost

import (
	"fmt"
	"sync"

	"github.com/dshills/addonkit/internal/host"
)

// DrawCall records one TextRenderer.DrawText call.
type DrawCall struct {
	Font  int
	Text  string
	Pos   host.Position
	Color host.Color
	Size  float64
}

type handler struct {
	fn       func()
	region   string
	drawType string
}

// View is an in-memory DrawHost and TextRenderer. Redraw runs every
// installed handler synchronously.
type View struct {
	mu       sync.Mutex
	next     host.DrawHandle
	handlers map[host.DrawHandle]handler
	fonts    []string
	calls    []DrawCall
	redraws  int
}

// NewView creates an empty view.
func NewView() *View {
	return &View{handlers: make(map[host.DrawHandle]handler)}
}

// AddDrawHandler implements host.DrawHost.
func (v *View) AddDrawHandler(fn func(), region, drawType string) (host.DrawHandle, error) {
	if fn == nil {
		return 0, fmt.Errorf("nil draw handler")
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.next++
	v.handlers[v.next] = handler{fn: fn, region: region, drawType: drawType}
	return v.next, nil
}

// RemoveDrawHandler implements host.DrawHost.
func (v *View) RemoveDrawHandler(h host.DrawHandle, region string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	hd, ok := v.handlers[h]
	if !ok || hd.region != region {
		return fmt.Errorf("draw handler %d in %s: %w", h, region, host.ErrNotFound)
	}
	delete(v.handlers, h)
	return nil
}

// Redraw implements host.DrawHost.
func (v *View) Redraw() {
	v.mu.Lock()
	v.redraws++
	fns := make([]func(), 0, len(v.handlers))
	for _, hd := range v.handlers {
		fns = append(fns, hd.fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// LoadFont implements host.TextRenderer. Font ids start at 1.
func (v *View) LoadFont(path string) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fonts = append(v.fonts, path)
	return len(v.fonts), nil
}

// DrawText implements host.TextRenderer.
func (v *View) DrawText(font int, text string, pos host.Position, color host.Color, size float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if font < 0 || font > len(v.fonts) {
		return fmt.Errorf("font %d: %w", font, host.ErrNotFound)
	}
	v.calls = append(v.calls, DrawCall{Font: font, Text: text, Pos: pos, Color: color, Size: size})
	return nil
}

// Calls returns the recorded draw calls.
func (v *View) Calls() []DrawCall {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]DrawCall, len(v.calls))
	copy(out, v.calls)
	return out
}

// Handlers returns the number of installed handlers.
func (v *View) Handlers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.handlers)
}

// Redraws returns how many times Redraw was called.
func (v *View) Redraws() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.redraws
}
