// Copyright 2025 The OpenAEC Foundation Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package out renders analysis results to image files: per-member force and
// moment diagrams, deflected shapes and envelope bands.
package out

import (
	"image/color"
	"os"
	"path/filepath"

	"github.com/OpenAEC-Foundation/Open-FEM2D-Studio-sub000/fem"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	momentColor = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	shearColor  = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	normalColor = color.RGBA{R: 30, G: 60, B: 200, A: 255}
	bandColor   = color.RGBA{R: 100, G: 149, B: 237, A: 120}
)

// ensureDir creates the target directory of a file path if needed
func ensureDir(filename string) {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}
}

// curve builds a line plotter from station positions and values
func curve(x, y []float64, c color.Color, w vg.Length) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Width = w
	l.LineStyle.Color = c
	return l, nil
}

// baseline adds a zero reference line over the station range
func baseline(p *plot.Plot, x []float64) error {
	if len(x) == 0 {
		return nil
	}
	l, err := curve([]float64{x[0], x[len(x)-1]}, []float64{0, 0}, color.Gray{Y: 128}, vg.Points(1))
	if err != nil {
		return err
	}
	l.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(l)
	return nil
}

// invertY flips the vertical axis around the data range with a small margin
func invertY(p *plot.Plot, lo, hi []float64) {
	if len(lo) == 0 {
		return
	}
	min, max := lo[0], hi[0]
	for i := range lo {
		if lo[i] < min {
			min = lo[i]
		}
		if hi[i] > max {
			max = hi[i]
		}
	}
	pad := 0.05 * (max - min)
	if pad == 0 {
		pad = 1
	}
	p.Y.Min = max + pad
	p.Y.Max = min - pad
}

// ExportBeamDiagram renders the N, V or M curve of one member to an image
// file (format by extension: .png, .svg or .pdf)
func ExportBeamDiagram(d *fem.BeamDiagram, field, filename string) error {
	p := plot.New()
	p.X.Label.Text = "Position (m)"

	var vals []float64
	var clr color.Color
	switch field {
	case "N":
		p.Title.Text = "Normal Force"
		p.Y.Label.Text = "N (N)"
		vals, clr = d.NormalForce, normalColor
	case "V":
		p.Title.Text = "Shear Force"
		p.Y.Label.Text = "V (N)"
		vals, clr = d.ShearForce, shearColor
	case "M":
		p.Title.Text = "Bending Moment"
		p.Y.Label.Text = "M (Nm)"
		vals, clr = d.BendingMoment, momentColor
	default:
		return chk.Err("unknown diagram field %q (want N, V or M)", field)
	}

	if err := baseline(p, d.Stations); err != nil {
		return err
	}
	l, err := curve(d.Stations, vals, clr, vg.Points(2))
	if err != nil {
		return err
	}
	p.Add(l)

	// moment diagrams are conventionally drawn on the tension side
	if field == "M" {
		invertY(p, vals, vals)
	}

	ensureDir(filename)
	return p.Save(8*vg.Inch, 4*vg.Inch, filename)
}

// ExportDeflection renders the transverse deflection curve of one member
func ExportDeflection(d *fem.BeamDiagram, filename string) error {
	p := plot.New()
	p.Title.Text = "Deflection"
	p.X.Label.Text = "Position (m)"
	p.Y.Label.Text = "uy (m)"

	if err := baseline(p, d.Stations); err != nil {
		return err
	}
	l, err := curve(d.Stations, d.DeflY, normalColor, vg.Points(2))
	if err != nil {
		return err
	}
	p.Add(l)

	ensureDir(filename)
	return p.Save(8*vg.Inch, 4*vg.Inch, filename)
}

// ExportEnvelopeBand renders the min/max band of one envelope field ("N",
// "V" or "M") as a filled polygon between the two bounding curves
func ExportEnvelopeBand(e *fem.BeamEnvelope, field, filename string) error {
	var lo, hi []float64
	var title string
	switch field {
	case "N":
		lo, hi, title = e.MinN, e.MaxN, "Normal Force Envelope"
	case "V":
		lo, hi, title = e.MinV, e.MaxV, "Shear Force Envelope"
	case "M":
		lo, hi, title = e.MinM, e.MaxM, "Bending Moment Envelope"
	default:
		return chk.Err("unknown envelope field %q (want N, V or M)", field)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Position (m)"

	// band polygon: max curve forward, min curve backward
	n := len(e.Stations)
	band := make(plotter.XYs, 0, 2*n)
	for i := 0; i < n; i++ {
		band = append(band, plotter.XY{X: e.Stations[i], Y: hi[i]})
	}
	for i := n - 1; i >= 0; i-- {
		band = append(band, plotter.XY{X: e.Stations[i], Y: lo[i]})
	}
	poly, err := plotter.NewPolygon(band)
	if err != nil {
		return err
	}
	poly.Color = bandColor
	poly.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	p.Add(poly)

	if err := baseline(p, e.Stations); err != nil {
		return err
	}
	if field == "M" {
		invertY(p, lo, hi)
	}

	ensureDir(filename)
	return p.Save(8*vg.Inch, 4*vg.Inch, filename)
}
