// Package overlay draws text over a host view through installable draw
// handlers.
package overlay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/addonkit/internal/app"
	"github.com/dshills/addonkit/internal/host"
)

// ErrFontNotFound is returned when a font file does not exist.
var ErrFontNotFound = errors.New("font not found")

// DefaultSize is the text size Draw uses when none is given.
const DefaultSize = 10

// DrawFunc draws one frame. It receives the DrawText it was displayed
// with and the arguments given to Display.
type DrawFunc func(d *DrawText, args ...any)

// DrawText keeps a draw function installed in a view and draws text on
// its behalf.
//
// A DrawText is registered once it has a draw function, and drawing while
// that function is installed in the view. Erase uninstalls the function but
// keeps it, so Display can reinstall it without arguments.
type DrawText struct {
	renderer host.TextRenderer
	view     host.DrawHost

	font     int
	fn       DrawFunc
	args     []any
	region   string
	drawType string

	handle  host.DrawHandle
	drawing bool
}

// New creates a DrawText that draws with r into view, using the default
// font.
func New(r host.TextRenderer, view host.DrawHost) *DrawText {
	return &DrawText{renderer: r, view: view}
}

// Font returns the font id used by Draw.
func (d *DrawText) Font() int {
	return d.font
}

// SetFont selects an already loaded font.
func (d *DrawText) SetFont(id int) {
	d.font = id
}

// LoadFont loads the font file at path and selects it.
func (d *DrawText) LoadFont(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("%w: %s", ErrFontNotFound,
			app.FormatMsg("DrawText", app.MsgError, fmt.Sprintf("Font %q not found.", abs)))
	}
	id, err := d.renderer.LoadFont(abs)
	if err != nil {
		return err
	}
	d.font = id
	return nil
}

// Draw draws text at pos with the current font. A zero size draws at
// DefaultSize.
func (d *DrawText) Draw(text string, pos host.Position, color host.Color, size float64) error {
	if size <= 0 {
		size = DefaultSize
	}
	return d.renderer.DrawText(d.font, text, pos, color, size)
}

// Display installs the draw function in the view and asks for a redraw.
//
// A nil fn reuses the function of an earlier call; if there is none,
// Display does nothing and reports false. Nil args keep the previous
// arguments. Empty region and drawType select host.RegionWindow and
// host.DrawPostPixel. Displaying while already drawing replaces the
// installed handler.
func (d *DrawText) Display(fn DrawFunc, args []any, region, drawType string) (bool, error) {
	if fn == nil && d.fn == nil {
		return false, nil
	}
	if fn != nil {
		d.fn = fn
	}
	if args != nil {
		d.args = args
	}
	if region == "" {
		region = host.RegionWindow
	}
	if drawType == "" {
		drawType = host.DrawPostPixel
	}

	if d.drawing {
		if err := d.view.RemoveDrawHandler(d.handle, d.region); err != nil {
			return false, err
		}
		d.drawing = false
	}

	d.region, d.drawType = region, drawType
	fnNow, argsNow := d.fn, d.args
	h, err := d.view.AddDrawHandler(func() { fnNow(d, argsNow...) }, region, drawType)
	if err != nil {
		return false, err
	}
	d.handle, d.drawing = h, true
	d.view.Redraw()
	return true, nil
}

// Erase uninstalls the draw function. It does nothing when not drawing.
func (d *DrawText) Erase() error {
	if !d.drawing {
		return nil
	}
	if err := d.view.RemoveDrawHandler(d.handle, d.region); err != nil {
		return err
	}
	d.handle, d.drawing = 0, false
	d.view.Redraw()
	return nil
}

// Clear erases and forgets the arguments, region and draw type. The draw
// function is kept.
func (d *DrawText) Clear() error {
	if err := d.Erase(); err != nil {
		return err
	}
	d.args = nil
	d.region = ""
	d.drawType = ""
	return nil
}

// IsRegistered reports whether a draw function has been given.
func (d *DrawText) IsRegistered() bool {
	return d.fn != nil
}

// IsDrawing reports whether the draw function is installed.
func (d *DrawText) IsDrawing() bool {
	return d.drawing
}

// Region returns the region the function was last displayed in.
func (d *DrawText) Region() string {
	return d.region
}

// DrawType returns the draw type the function was last displayed with.
func (d *DrawText) DrawType() string {
	return d.drawType
}

// Args returns the arguments passed to the draw function.
func (d *DrawText) Args() []any {
	return d.args
}
