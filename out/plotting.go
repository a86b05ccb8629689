// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PltEntity stores all data for a plot entity (X vs Y)
type PltEntity struct {
	Alias string    // alias
	X     []float64 // x-values
	Y     []float64 // y-values
	Xlbl  string    // horizontal axis label (raw; e.g. "t")
	Ylbl  string    // vertical axis label (raw; e.g. "uy")
	Style Style     // style
}

// SplotDat stores all data for one subplot
type SplotDat struct {
	Id     string       // unique identifier
	Title  string       // title of subplot
	Xscale float64      // x-axis scale
	Yscale float64      // y-axis scale
	Xrange []float64    // x range
	Yrange []float64    // y range
	Xlbl   string       // x-axis label (formatted; e.g. "time")
	Ylbl   string       // y-axis label (formatted; e.g. "displacement y [m]")
	Data   []*PltEntity // data and styles to be plotted
}

// Splot activates a new subplot window
func Splot(id, splotTitle string) {
	s := &SplotDat{Id: id, Title: splotTitle}
	Splots = append(Splots, s)
	Csplot = s
}

// SplotConfig configures units and scales of axes
func SplotConfig(xunit, yunit string, xscale, yscale float64) {
	if Csplot != nil {
		var xlabel, ylabel string
		if len(Csplot.Data) > 0 {
			xlabel = Csplot.Data[0].Xlbl
			ylabel = Csplot.Data[0].Ylbl
		}
		Csplot.Xlbl = GetLabel(xlabel, xunit)
		Csplot.Ylbl = GetLabel(ylabel, yunit)
		Csplot.Xscale = xscale
		Csplot.Yscale = yscale
	}
}

// Plot plots data
//
//	xHandle -- can be a string, e.g. "t" or a slice, e.g. uy = []float64{0, 1, 2}
//	yHandle -- can be a string, e.g. "uy" or a slice, e.g. rz = []float64{0, 1, 2}
//	alias   -- alias such as "tip"
//	sty     -- style; e.g. Style{C: color.Black, M: true}
//	idxI    -- index of time; use -1 for the last time
func Plot(xHandle, yHandle interface{}, alias string, sty Style, idxI int) {
	var e PltEntity
	e.Alias = alias
	e.Style = sty
	e.X, e.Xlbl = getValsAndLabels(xHandle, alias, idxI)
	e.Y, e.Ylbl = getValsAndLabels(yHandle, alias, idxI)
	if len(e.X) != len(e.Y) {
		chk.Panic("lengths of x- and y-series are different. len(x)=%d, len(y)=%d, x=%v, y=%v", len(e.X), len(e.Y), xHandle, yHandle)
	}
	if Csplot == nil {
		Splot(io.Sf("%d", len(Splots)), "")
	}
	Csplot.Data = append(Csplot.Data, &e)
	SplotConfig("", "", 1, 1)
}

// Draw saves all subplots into separated figures named <fnkey>_<id>.<ext>
//
//	dirout -- directory to save figures
//	fnkey  -- file name key; e.g. "cantilever"
//	ext    -- extension indicating the format; e.g. "png", "svg" or "pdf"
//	width  -- width of figures in centimetres; e.g. 12
//	height -- height of figures in centimetres; e.g. 8
func Draw(dirout, fnkey, ext string, width, height float64) (fnames []string, err error) {
	err = os.MkdirAll(dirout, 0777)
	if err != nil {
		return nil, chk.Err("cannot create directory for figures:\n%v", err)
	}
	for _, spl := range Splots {
		p, e := spl.newPlot()
		if e != nil {
			return fnames, e
		}
		fn := filepath.Join(dirout, io.Sf("%s_%s.%s", fnkey, spl.Id, ext))
		err = p.Save(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter, fn)
		if err != nil {
			return fnames, chk.Err("cannot save figure %q:\n%v", fn, err)
		}
		message("file <%s> written\n", fn)
		fnames = append(fnames, fn)
	}
	return
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

// newPlot creates a gonum plot with all data of subplot
func (o *SplotDat) newPlot() (p *plot.Plot, err error) {
	p = plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.Xlbl
	p.Y.Label.Text = o.Ylbl
	p.Add(plotter.NewGrid())
	for k, d := range o.Data {
		xy := make(plotter.XYs, len(d.X))
		for i := range d.X {
			xy[i].X, xy[i].Y = d.X[i], d.Y[i]
			if o.Xscale != 0 {
				xy[i].X *= o.Xscale
			}
			if o.Yscale != 0 {
				xy[i].Y *= o.Yscale
			}
		}
		line, pts, e := plotter.NewLinePoints(xy)
		if e != nil {
			return nil, chk.Err("cannot plot %q:\n%v", d.Alias, e)
		}
		d.Style.apply(k, line, pts)
		if d.Style.Ls != "none" {
			p.Add(line)
		}
		if d.Style.M {
			p.Add(pts)
		}
		label := d.Style.L
		if label == "" {
			label = d.Alias
		}
		p.Legend.Add(label, line, pts)
	}
	if len(o.Xrange) == 2 {
		p.X.Min, p.X.Max = o.Xrange[0], o.Xrange[1]
	}
	if len(o.Yrange) == 2 {
		p.Y.Min, p.Y.Max = o.Yrange[0], o.Yrange[1]
	}
	return
}

// getValsAndLabels returns the values and raw label corresponding to a handle
func getValsAndLabels(handle interface{}, alias string, idxI int) ([]float64, string) {
	switch hnd := handle.(type) {
	case []float64:
		return hnd, io.Sf("%s-type", alias)
	case string:
		switch hnd {
		case "t":
			return Times, "t"
		case "x":
			xcoords, _, _ := GetXYZ(alias)
			return xcoords, "x"
		case "y":
			_, ycoords, _ := GetXYZ(alias)
			return ycoords, "y"
		case "z":
			_, _, zcoords := GetXYZ(alias)
			return zcoords, "z"
		case "dist":
			return GetDist(alias), "dist"
		}
		return GetRes(hnd, alias, idxI), hnd
	}
	chk.Panic("cannot get values slice with handle = %v", handle)
	return nil, ""
}
