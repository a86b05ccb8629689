// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefineBeams define aliases for beams; e.g. "beam0", "beam1", etc.
func DefineBeams() {
	for _, beam := range Beams {
		Define(io.Sf("beam%d", beam.Id()), E{beam.Id()})
	}
}

// BeamDiagMoment saves a figure with the bending moment diagram of all 2D beams. DefineBeams and
// LoadResults must be called first
//
//	idxI     -- index in TimeInds slice corresponding to selected output time; use -1 for the last item
//	withtext -- show the largest bending moment of each beam
//	numfmt   -- number format for values. use "" for default
//	coef     -- coefficient to scale max(dimension) divided by max(M); e.g. 0.1
func BeamDiagMoment(dirout, fname string, idxI int, withtext bool, numfmt string, coef float64) (err error) {

	// check
	if Dom.Msh.Ndim != 2 {
		return chk.Err("bending moment diagrams are available in 2D only")
	}
	if numfmt == "" {
		numfmt = "%.3g"
	}

	// bending moments
	allM := make([][]float64, len(Beams))
	maxAbsM := 0.0
	for i, beam := range Beams {
		allM[i] = GetRes("M", io.Sf("beam%d", beam.Id()), idxI)
		for _, m := range allM[i] {
			maxAbsM = math.Max(maxAbsM, math.Abs(m))
		}
	}

	// scaling factor
	m := Dom.Msh
	dist := math.Max(m.Xmax-m.Xmin, m.Ymax-m.Ymin)
	sf := 1.0
	if maxAbsM > 1e-7 {
		sf = coef * dist / maxAbsM
	}

	// draw
	p := plot.New()
	p.Title.Text = "bending moment"
	for i, beam := range Beams {

		// axis
		xa, xb := beam.X[0][0], beam.X[0][1]
		ya, yb := beam.X[1][0], beam.X[1][1]
		l := math.Hypot(xb-xa, yb-ya)
		nx, ny := -(yb-ya)/l, (xb-xa)/l
		axis, e := plotter.NewLine(plotter.XYs{{X: xa, Y: ya}, {X: xb, Y: yb}})
		if e != nil {
			return e
		}
		axis.LineStyle.Width = vg.Points(2)
		axis.LineStyle.Color = color.Black
		p.Add(axis)

		// diagram along the normal of the axis
		pts := Results[io.Sf("beam%d", beam.Id())]
		xy := make(plotter.XYs, len(pts)+2)
		xy[0] = plotter.XY{X: xa, Y: ya}
		imax := 0
		for j, q := range pts {
			xy[j+1] = plotter.XY{X: q.X[0] + sf*allM[i][j]*nx, Y: q.X[1] + sf*allM[i][j]*ny}
			if math.Abs(allM[i][j]) > math.Abs(allM[i][imax]) {
				imax = j
			}
		}
		xy[len(pts)+1] = plotter.XY{X: xb, Y: yb}
		diag, e := plotter.NewLine(xy)
		if e != nil {
			return e
		}
		diag.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
		p.Add(diag)

		// text
		if withtext && len(pts) > 0 {
			lbl, e := plotter.NewLabels(plotter.XYLabels{
				XYs:    plotter.XYs{xy[imax+1]},
				Labels: []string{io.Sf(numfmt, allM[i][imax])},
			})
			if e != nil {
				return e
			}
			p.Add(lbl)
		}
	}
	return savePlot(p, dirout, fname)
}

// DrawDeformed saves a figure with the initial and deformed configurations of all beams and
// contact interfaces. The nodes of kbeams are connected by straight lines
//
//	idxI  -- index in TimeInds slice corresponding to selected output time; use -1 for the last item
//	scale -- scale factor for displacements
func DrawDeformed(dirout, fname string, idxI int, scale float64) (err error) {

	// read results
	if len(TimeInds) == 0 {
		return chk.Err("LoadResults must be called first")
	}
	if idxI < 0 {
		idxI = len(TimeInds) - 1
	}
	err = Dom.Read(Sum, TimeInds[idxI])
	if err != nil {
		return
	}

	// segments
	var segs [][2]int
	for _, e := range Beams {
		segs = append(segs, [2]int{e.Cell.Verts[0], e.Cell.Verts[1]})
	}
	for _, e := range KBeams {
		segs = append(segs, [2]int{e.Cell.Verts[0], e.Cell.Verts[1]})
	}

	// draw
	p := plot.New()
	p.Title.Text = io.Sf("deformed shape @ t = %g", Times[idxI])
	grey := color.RGBA{R: 160, G: 160, B: 160, A: 255}
	for _, s := range segs {
		var ini, def plotter.XYs
		for _, vid := range s {
			x := Dom.Msh.Verts[vid].C
			u := nodeDisp(vid)
			ini = append(ini, plotter.XY{X: x[0], Y: x[1]})
			def = append(def, plotter.XY{X: x[0] + scale*u[0], Y: x[1] + scale*u[1]})
		}
		if err = addLine(p, ini, grey, true); err != nil {
			return
		}
		if err = addLine(p, def, color.Black, false); err != nil {
			return
		}
	}
	for _, c := range Dom.Contacts {
		var xy plotter.XYs
		for _, n := range c.Master {
			var u [2]float64
			for i, I := range n.Eqs {
				if I >= 0 {
					u[i] = Dom.Sol.Y[I]
				}
			}
			xy = append(xy, plotter.XY{X: n.X[0] + scale*u[0], Y: n.X[1] + scale*u[1]})
		}
		if err = addLine(p, xy, color.RGBA{R: 178, G: 34, B: 34, A: 255}, false); err != nil {
			return
		}
	}
	return savePlot(p, dirout, fname)
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

// nodeDisp returns the displacements of vertex; zero if it does not have displacement DOFs
func nodeDisp(vid int) (u [3]float64) {
	nod := Dom.Vid2node[vid]
	if nod == nil {
		return
	}
	for i, key := range []string{"ux", "uy", "uz"} {
		if eq := nod.GetEq(key); eq >= 0 {
			u[i] = Dom.Sol.Y[eq]
		}
	}
	return
}

func addLine(p *plot.Plot, xy plotter.XYs, c color.Color, dashed bool) error {
	l, err := plotter.NewLine(xy)
	if err != nil {
		return err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(1.5)
	if dashed {
		l.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	}
	p.Add(l)
	return nil
}

func savePlot(p *plot.Plot, dirout, fname string) (err error) {
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return chk.Err("cannot create directory for figures:\n%v", err)
	}
	fn := filepath.Join(dirout, fname)
	err = p.Save(12*vg.Centimeter, 8*vg.Centimeter, fn)
	if err != nil {
		return chk.Err("cannot save figure %q:\n%v", fn, err)
	}
	message("file <%s> written\n", fn)
	return
}
