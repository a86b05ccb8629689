// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotFdata holds information to plot functions
type PlotFdata struct {
	Ti   float64  `json:"ti"`   // initial time
	Tf   float64  `json:"tf"`   // final time
	Np   int      `json:"np"`   // number of points
	Skip []string `json:"skip"` // skip functions
}

// FuncData holds function definition
type FuncData struct {
	Name string     `json:"name"` // name of function. ex: zero, load, myfunction1, etc.
	Type string     `json:"type"` // type of function. ex: cte, rmp
	Prms dbf.Params `json:"prms"` // parameters
}

// Funcs holds functions
type FuncsData []*FuncData

// Get returns function by name
//
//	Note: "zero" and "none" return the null function
func (o FuncsData) Get(name string) (fcn dbf.T, err error) {
	if name == "zero" || name == "none" {
		fcn = &dbf.Cte{C: 0}
		return
	}
	for _, f := range o {
		if f.Name == name {
			fcn = dbf.New(f.Type, f.Prms)
			if err != nil {
				err = chk.Err("cannot get function named %q because of the following error:\n%v", name, err)
			}
			return
		}
	}
	err = chk.Err("cannot find function named %q\n", name)
	return
}

// PlotAll plot all functions
func (o FuncsData) PlotAll(pd *PlotFdata, dirout, fnkey string) (err error) {
	np := pd.Np
	if np < 2 {
		np = 101
	}
	tf := pd.Tf
	if tf <= pd.Ti {
		tf = pd.Ti + 1
	}
	for _, f := range o {
		if utl.StrIndexSmall(pd.Skip, f.Name) >= 0 {
			continue
		}
		ff, err := o.Get(f.Name)
		if err != nil {
			return err
		}
		xys := make(plotter.XYs, np)
		for i := 0; i < np; i++ {
			t := pd.Ti + float64(i)*(tf-pd.Ti)/float64(np-1)
			xys[i].X = t
			xys[i].Y = ff.F(t, nil)
		}
		p := plot.New()
		p.Title.Text = f.Name
		p.X.Label.Text = "t"
		p.Y.Label.Text = "f(t)"
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		p.Add(line, plotter.NewGrid())
		fn := filepath.Join(dirout, io.Sf("functions-%s-%s.png", fnkey, f.Name))
		err = p.Save(12*vg.Centimeter, 8*vg.Centimeter, fn)
		if err != nil {
			return chk.Err("cannot save plot of function %q:\n%v", f.Name, err)
		}
	}
	return
}
