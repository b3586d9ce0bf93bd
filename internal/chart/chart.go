// Package chart renders the monthly net balance as a PNG line chart.
package chart

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"expensetracker/internal/core"
)

// Renderer draws month balances into an image file.
type Renderer interface {
	Render(ctx context.Context, path string, months []core.MonthBalance) error
}

var _ Renderer = (*Plotter)(nil)

// Plotter renders with gonum/plot. Zero values use an 8x4 inch canvas.
type Plotter struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

func NewPlotter() *Plotter {
	return &Plotter{Title: "Monthly Net Balance", Width: 8 * vg.Inch, Height: 4 * vg.Inch}
}

func (p *Plotter) Render(ctx context.Context, path string, months []core.MonthBalance) error {
	if len(months) == 0 {
		return core.ErrNoData
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".png" {
		return fmt.Errorf("chart: unsupported image format %q", ext)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pl := plot.New()
	pl.Title.Text = p.Title
	pl.X.Label.Text = "Month"
	pl.Y.Label.Text = "Net Balance (" + core.CurrencySymbol + ")"
	pl.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	pl.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(Points(months))
	if err != nil {
		return fmt.Errorf("chart: build series: %w", err)
	}
	pl.Add(line, points)

	w, h := p.Width, p.Height
	if w == 0 {
		w = 8 * vg.Inch
	}
	if h == 0 {
		h = 4 * vg.Inch
	}
	if err := pl.Save(w, h, path); err != nil {
		return fmt.Errorf("chart: save %s: %w", path, err)
	}
	return nil
}

// Points maps each month to (unix seconds of its first day, net balance).
func Points(months []core.MonthBalance) plotter.XYs {
	pts := make(plotter.XYs, len(months))
	for i, m := range months {
		pts[i].X = float64(m.Start().Unix())
		pts[i].Y = m.Net.InexactFloat64()
	}
	return pts
}
