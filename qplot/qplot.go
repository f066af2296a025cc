/*
 * qplot.go, part of qfit.
 *
 * Copyright 2020 The qfit-3.0 developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package qplot draws diagnostic plots for the conformational samplers:
//angular distributions of rotation sets and histograms of sampled
//torsion values. Plots go to PNG files; this is offline tooling, not
//part of the sampling path.
package qplot

import (
	"fmt"

	"github.com/TonnarCastellano/qfit-3.0/sampler"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicHistPlot(title, xlabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())
	return p
}

//Histogram plots the given values as an n-bin histogram and saves it
//as <plotname>.png.
func Histogram(data []float64, bins int, title, xlabel, plotname string) error {
	if len(data) == 0 {
		return fmt.Errorf("qplot.Histogram: given no data")
	}
	p := basicHistPlot(title, xlabel)
	h, err := plotter.NewHist(plotter.Values(data), bins)
	if err != nil {
		return err
	}
	p.Add(h)
	return p.Save(12*vg.Centimeter, 9*vg.Centimeter, fmt.Sprintf("%s.png", plotname))
}

//AnglePlot histograms the rotation angles, in degrees, of a set of
//quaternions, saving the plot as <plotname>.png. Useful to eyeball the
//angular coverage of a local rotation set before trusting it in a
//search.
func AnglePlot(quats []quat.Number, title, plotname string) error {
	if len(quats) == 0 {
		return fmt.Errorf("qplot.AnglePlot: given an empty rotation set")
	}
	angles := make([]float64, len(quats))
	for i, q := range quats {
		angles[i] = sampler.Angle(q)
	}
	bins := len(angles) / 10
	if bins < 5 {
		bins = 5
	}
	if bins > 50 {
		bins = 50
	}
	return Histogram(angles, bins, title, "Rotation angle (degrees)", plotname)
}

//TorsionPlot histograms sampled torsion values, in degrees, on a fixed
//[-180,180] axis, saving the plot as <plotname>.png.
func TorsionPlot(torsions []float64, title, plotname string) error {
	if len(torsions) == 0 {
		return fmt.Errorf("qplot.TorsionPlot: given no data")
	}
	p := basicHistPlot(title, "Torsion (degrees)")
	p.X.Min = -180
	p.X.Max = 180
	h, err := plotter.NewHist(plotter.Values(torsions), 36)
	if err != nil {
		return err
	}
	p.Add(h)
	return p.Save(12*vg.Centimeter, 9*vg.Centimeter, fmt.Sprintf("%s.png", plotname))
}
