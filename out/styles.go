// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"image/color"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Style holds the line and marker style of a plot entity
type Style struct {
	C  color.Color // color; nil => use default palette
	L  string      // label; "" => use alias
	Lw float64     // line width in points; 0 => 1
	Ls string      // line style: "-" (default), "--", ":" or "none"
	M  bool        // show markers
	Ms float64     // marker radius in points; 0 => 2.5
}

// Styles holds a set of styles
type Styles []Style

// GetDefaultStyles returns styles labelled with the coordinates of points
func GetDefaultStyles(pts Points) Styles {
	sty := make([]Style, len(pts))
	for i, p := range pts {
		sty[i].L = io.Sf("x=%v", p.X)
		sty[i].C = plotutil.Color(i)
		sty[i].M = true
	}
	return sty
}

// GetLabel returns a label for axes given a results key and unit
func GetLabel(key, unit string) string {
	var l string
	switch key {
	case "t":
		l = "time"
	case "ux", "uy", "uz":
		l = "displacement " + key[1:]
	case "rx", "ry", "rz":
		l = "rotation " + key[1:]
	case "px", "py", "pz":
		l = "position " + key[1:]
	case "N":
		l = "axial force"
	case "V":
		l = "shear force"
	case "T":
		l = "torque"
	case "M", "M2", "M3":
		l = "bending moment " + key
	case "eps":
		l = "axial strain"
	case "k1", "k2", "k3":
		l = "curvature " + key
	case "gap":
		l = "weighted gap"
	case "lamn":
		l = "contact pressure"
	case "lamt":
		l = "tangential traction"
	case "dist":
		l = "distance"
	default:
		l = key
	}
	if unit != "" {
		l += " [" + unit + "]"
	}
	return l
}

// apply sets the style of line and points
func (o Style) apply(idx int, line *plotter.Line, pts *plotter.Scatter) {
	c := o.C
	if c == nil {
		c = plotutil.Color(idx)
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1)
	if o.Lw > 0 {
		line.LineStyle.Width = vg.Points(o.Lw)
	}
	switch o.Ls {
	case "--":
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	case ":":
		line.LineStyle.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	case "none":
		line.LineStyle.Width = 0
	}
	pts.GlyphStyle.Color = c
	pts.GlyphStyle.Shape = draw.CircleGlyph{}
	pts.GlyphStyle.Radius = vg.Points(2.5)
	if o.Ms > 0 {
		pts.GlyphStyle.Radius = vg.Points(o.Ms)
	}
}
