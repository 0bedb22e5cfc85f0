package chart

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/emiliopalmerini/dustlog/internal/domain"
)

var (
	stateColor    = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	durationColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// Renderer draws usage charts as PNG: the ON/OFF step series on top and
// the cumulative ON hours below, sharing the same time axis.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

func NewRenderer() *Renderer {
	return &Renderer{Width: 8 * vg.Inch, Height: 6 * vg.Inch}
}

// Render writes the chart for u to w.
func (r *Renderer) Render(w io.Writer, u *domain.Usage) error {
	xmin, xmax := timeRange(u)

	state, err := statePlot(u, xmin, xmax)
	if err != nil {
		return fmt.Errorf("failed to build state plot: %w", err)
	}
	durations, err := durationPlot(u, xmin, xmax)
	if err != nil {
		return fmt.Errorf("failed to build duration plot: %w", err)
	}

	img := vgimg.New(r.Width, r.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
	}
	canvases := plot.Align([][]*plot.Plot{{state}, {durations}}, tiles, dc)
	state.Draw(canvases[0][0])
	durations.Draw(canvases[1][0])

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}

func statePlot(u *domain.Usage, xmin, xmax float64) (*plot.Plot, error) {
	p := newTimePlot(xmin, xmax)
	p.Title.Text = u.Tool
	if u.Empty() {
		p.Title.Text += " (no data)"
	}
	p.Y.Label.Text = "State"
	p.Y.Min, p.Y.Max = -0.1, 1.1
	p.Y.Tick.Marker = plot.ConstantTicks([]plot.Tick{
		{Value: 0, Label: "OFF"},
		{Value: 1, Label: "ON"},
	})

	if u.Empty() {
		return p, nil
	}

	xys := make(plotter.XYs, len(u.Intervals))
	for i, pt := range u.Intervals {
		xys[i].X = unix(pt.Time)
		xys[i].Y = pt.State.Level()
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = stateColor
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	return p, nil
}

func durationPlot(u *domain.Usage, xmin, xmax float64) (*plot.Plot, error) {
	p := newTimePlot(xmin, xmax)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Time ON (hrs)"
	p.Y.Min = 0
	p.Y.Max = 1
	if u.TotalHours > p.Y.Max {
		p.Y.Max = u.TotalHours * 1.05
	}

	if len(u.Durations) == 0 {
		return p, nil
	}

	xys := make(plotter.XYs, len(u.Durations))
	for i, pt := range u.Durations {
		xys[i].X = unix(pt.Time)
		xys[i].Y = pt.Hours
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = durationColor
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	return p, nil
}

func newTimePlot(xmin, xmax float64) *plot.Plot {
	p := plot.New()
	p.X.Min, p.X.Max = xmin, xmax
	p.X.Tick.Marker = plot.TimeTicks{
		Format: "01-02",
		Time: func(t float64) time.Time {
			return time.Unix(int64(t), 0).Local()
		},
	}
	return p
}

// timeRange spans the first plotted point up to the end of the window.
func timeRange(u *domain.Usage) (float64, float64) {
	end := u.Until
	if end.IsZero() {
		end = time.Now()
	}

	start := end.Add(-24 * time.Hour)
	if !u.Empty() {
		start = u.Intervals[0].Time
		if last := u.Intervals[len(u.Intervals)-1].Time; last.After(end) {
			end = last
		}
	}
	if !start.Before(end) {
		start = end.Add(-time.Hour)
	}
	return unix(start), unix(end)
}

func unix(t time.Time) float64 {
	return float64(t.Unix())
}
