package host

// Color is an RGBA color with components in [0, 1].
type Color [4]float64

// Position is a drawing position in region space.
type Position struct {
	X, Y, Z float64
}

// Default region and draw types for overlay handlers.
const (
	RegionWindow  = "WINDOW"
	DrawPostPixel = "POST_PIXEL"
	DrawPostView  = "POST_VIEW"
)

// DrawHandle identifies an installed draw handler.
type DrawHandle uint64

// DrawHost installs immediate-mode draw callbacks into a view.
type DrawHost interface {
	AddDrawHandler(fn func(), region, drawType string) (DrawHandle, error)
	RemoveDrawHandler(h DrawHandle, region string) error
	Redraw()
}

// TextRenderer draws text with loaded fonts. Font 0 is the default font.
type TextRenderer interface {
	LoadFont(path string) (int, error)
	DrawText(font int, text string, pos Position, color Color, size float64) error
}
