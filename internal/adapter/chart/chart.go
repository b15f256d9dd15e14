// Package chart renders hyetographs as PNG bar charts.
package chart

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/storm-hyetograph/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// dpi fixes the pixel density so Options sizes map 1:1 to image pixels.
const dpi = 96

// headroom scales the y-axis above the peak bar.
const headroom = 1.1

// Options controls the rendered image.
type Options struct {
	Width    int // pixels
	Height   int // pixels
	Title    string
	BarColor color.Color
}

// DefaultOptions returns an 800x600 chart with blue bars.
func DefaultOptions() Options {
	return Options{
		Width:    800,
		Height:   600,
		Title:    "Hyetograph",
		BarColor: color.RGBA{B: 0xff, A: 0xff},
	}
}

// Renderer draws hyetographs to PNG files.
// It implements pipeline.Loader.
type Renderer struct {
	opts   Options
	logger *slog.Logger
}

// NewRenderer creates a chart exporter with the given options.
func NewRenderer(opts Options, logger *slog.Logger) *Renderer {
	return &Renderer{opts: opts, logger: logger}
}

// Load renders the hyetograph and writes it to path as PNG regardless of the
// file extension.
func (r *Renderer) Load(ctx context.Context, h domain.Hyetograph, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p, err := r.Plot(h)
	if err != nil {
		return fmt.Errorf("%w: failed to build chart: %w", domain.ErrWrite, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to initialize chart at %s: %w", domain.ErrWrite, path, err)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(pixels(r.opts.Width), pixels(r.opts.Height)),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: failed to save chart to %s: %w", domain.ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to save chart to %s: %w", domain.ErrWrite, path, err)
	}

	r.logger.Debug("chart written", "path", path, "width", r.opts.Width, "height", r.opts.Height)
	return nil
}

// Plot builds the bar chart. Each bar spans one time step, ending at the
// entry's time; the y-axis leaves 10% headroom above the peak.
func (r *Renderer) Plot(h domain.Hyetograph) (*plot.Plot, error) {
	if len(h.Entries) == 0 {
		return nil, errors.New("no data to plot")
	}

	p := plot.New()
	p.Title.Text = r.opts.Title
	p.X.Label.Text = "Time [min]"
	p.Y.Label.Text = "Intensity [mm/h]"
	p.X.Tick.Marker = formattedTicks("%.0f")
	p.Y.Tick.Marker = formattedTicks("%.1f")

	step := h.Params.T
	for _, e := range h.Entries {
		bar, err := plotter.NewPolygon(plotter.XYs{
			{X: e.TimeMinutes - step, Y: 0},
			{X: e.TimeMinutes, Y: 0},
			{X: e.TimeMinutes, Y: e.Intensity},
			{X: e.TimeMinutes - step, Y: e.Intensity},
		})
		if err != nil {
			return nil, fmt.Errorf("bar at %g min: %w", e.TimeMinutes, err)
		}
		bar.Color = r.opts.BarColor
		bar.LineStyle.Color = r.opts.BarColor
		bar.LineStyle.Width = 0
		p.Add(bar)
	}

	p.X.Min = 0
	p.X.Max = h.Entries[len(h.Entries)-1].TimeMinutes
	p.Y.Min = 0
	p.Y.Max = floats.Max(domain.Intensities(h.Entries)) * headroom
	return p, nil
}

// formattedTicks keeps the default tick placement but relabels major ticks.
func formattedTicks(format string) plot.Ticker {
	return plot.TickerFunc(func(lo, hi float64) []plot.Tick {
		ticks := plot.DefaultTicks{}.Ticks(lo, hi)
		for i := range ticks {
			if ticks[i].IsMinor() {
				continue
			}
			ticks[i].Label = fmt.Sprintf(format, ticks[i].Value)
		}
		return ticks
	})
}

func pixels(n int) vg.Length {
	return vg.Length(float64(n)/dpi) * vg.Inch
}

// ParseColor parses "#rrggbb" (the leading '#' is optional).
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
