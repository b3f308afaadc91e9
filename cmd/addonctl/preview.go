package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/addonkit/internal/host"
	"github.com/dshills/addonkit/internal/renderer/backend"
	"github.com/dshills/addonkit/internal/renderer/overlay"
)

// previewOptions are the flags of the preview command.
type previewOptions struct {
	x, y  float64
	size  float64
	color string
	font  string
}

func newPreviewCmd(c *cli) *cobra.Command {
	var opts previewOptions

	cmd := &cobra.Command{
		Use:   "preview <text>",
		Short: "Draw text through the overlay on the terminal until a key is pressed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			color, err := parseColor(opts.color)
			if err != nil {
				return err
			}

			term, err := backend.NewTerminal()
			if err != nil {
				return err
			}
			if err := term.Init(); err != nil {
				return err
			}
			defer term.Shutdown()

			if err := drawPreview(term, strings.Join(args, " "), color, opts); err != nil {
				return err
			}
			c.logger.Debug("preview shown", "x", opts.x, "y", opts.y)
			term.WaitKey()
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&opts.x, "x", 2, "column")
	flags.Float64Var(&opts.y, "y", 1, "row")
	flags.Float64Var(&opts.size, "size", overlay.DefaultSize, "text size (16 and up draws bold)")
	flags.StringVar(&opts.color, "color", "#ffffff", "text color as #rrggbb")
	flags.StringVar(&opts.font, "font", "", "font file to load")
	return cmd
}

// drawPreview displays text through a DrawText on r.
func drawPreview(r interface {
	host.TextRenderer
	host.DrawHost
}, text string, color host.Color, opts previewOptions) error {
	dt := overlay.New(r, r)
	if opts.font != "" {
		if err := dt.LoadFont(opts.font); err != nil {
			return err
		}
	}

	draw := func(d *overlay.DrawText, args ...any) {
		pos := host.Position{X: opts.x, Y: opts.y}
		_ = d.Draw(args[0].(string), pos, color, opts.size)
		hint := host.Position{X: opts.x, Y: opts.y + 2}
		_ = d.Draw("press any key", hint, host.Color{0.5, 0.5, 0.5, 1}, overlay.DefaultSize)
	}
	_, err := dt.Display(draw, []any{text}, host.RegionWindow, host.DrawPostPixel)
	return err
}

// parseColor parses #rrggbb into an opaque color.
func parseColor(s string) (host.Color, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.ToLower(s), "#%02x%02x%02x", &r, &g, &b); err != nil || len(s) != 7 {
		return host.Color{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	return host.Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}, nil
}
