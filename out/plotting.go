// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cpmech/gosl/chk"
)

// PlotPath draws the recorded equilibrium path (|u| versus λ) and saves it
// as a PNG file
func (o *History) PlotPath(title, filename string) (err error) {
	pts := make(plotter.XYs, len(o.Lambda))
	for i := range o.Lambda {
		pts[i].X = math.Abs(o.U[i])
		pts[i].Y = o.Lambda[i]
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "|u|"
	p.Y.Label.Text = "load factor"
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return chk.Err("cannot build equilibrium-path plot\n%v", err)
	}
	p.Add(line, points)
	p.Add(plotter.NewGrid())
	err = p.Save(5*vg.Inch, 4*vg.Inch, filename)
	if err != nil {
		return chk.Err("cannot save equilibrium-path plot to %q\n%v", filename, err)
	}
	return
}
