// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements FE simulation output handling for analyses and plotting
package out

import (
	"math"

	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/beamcontact/ele/solid"
	"github.com/cpmech/beamcontact/fem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// constants
var (
	TolC = 1e-8 // tolerance to compare x-y-z coordinates
	TolT = 1e-3 // tolerance to compare times
)

// ResultsMap maps aliases to points
type ResultsMap map[string]Points

// Global variables
var (

	// data set by Start
	Analysis   *fem.Main          // the fem structure
	Sum        *fem.Summary       // [from Analysis] summary
	Dom        *fem.Domain        // [from Analysis] FE domain
	Beams      []*solid.Beam      // linear beams, if any
	KBeams     []*solid.KBeam     // nonlinear beams, if any
	ElemOutIps []ele.CanOutputIps // subset of element that can output IP values

	// defined entities and results loaded by LoadResults
	Results  ResultsMap // maps labels => points
	TimeInds []int      // selected output indices
	Times    []float64  // selected output times

	// subplots
	Splots []*SplotDat // all subplots
	Csplot *SplotDat   // current subplot
)

// Start starts handling of results given a simulation input file
func Start(simfnpath string, stageIdx, regionIdx int) {

	// fem structure
	Analysis = fem.NewMain(simfnpath, "", false, false, true, false)
	if regionIdx < 0 || regionIdx >= len(Analysis.Domains) {
		chk.Panic("region index %d is out of range", regionIdx)
	}
	Dom = Analysis.Domains[regionIdx]
	Sum = Analysis.Summary

	// set stage
	err := Analysis.SetStage(stageIdx)
	if err != nil {
		chk.Panic("cannot set stage:\n%v", err)
	}

	// initialise solution vectors
	err = Analysis.ZeroStage(stageIdx, true)
	if err != nil {
		chk.Panic("cannot initialise solution vectors:\n%v", err)
	}

	// clear previous data
	Results = make(map[string]Points)
	TimeInds = make([]int, 0)
	Times = make([]float64, 0)
	Splots = make([]*SplotDat, 0)
	Csplot = nil
	Beams = make([]*solid.Beam, 0)
	KBeams = make([]*solid.KBeam, 0)
	ElemOutIps = make([]ele.CanOutputIps, 0)

	// find elements
	for _, element := range Dom.Elems {
		if e, ok := element.(ele.CanOutputIps); ok {
			ElemOutIps = append(ElemOutIps, e)
		}
		switch e := element.(type) {
		case *solid.Beam:
			Beams = append(Beams, e)
		case *solid.KBeam:
			KBeams = append(KBeams, e)
		}
	}
}

// Define defines aliases
//
//	alias -- an alias to a group of points, an individual point, or to a set of points
//	loc   -- a locator; e.g. N{7}, At{1, 0}, Along{{0, 0}, {1, 0}} or E{0}
func Define(alias string, loc Locator) {
	pts := loc.Locate()
	if len(pts) == 0 {
		chk.Panic("cannot define entities with alias = %q and locator = %v", alias, loc)
	}
	Results[alias] = pts
}

// LoadResults loads all results after points are defined
//
//	times -- specified selected output times
//	         use nil to select all available times
func LoadResults(times []float64) {

	// selected output times and indices
	if times == nil {
		times = Sum.OutTimes
	}
	TimeInds = make([]int, 0)
	Times = make([]float64, 0)
	for _, t := range times {
		found := false
		for i, tt := range Sum.OutTimes {
			if math.Abs(t-tt) < TolT {
				TimeInds = append(TimeInds, i)
				Times = append(Times, tt)
				found = true
				break
			}
		}
		if !found {
			chk.Panic("cannot find selected output time t=%g in summary", t)
		}
	}

	// clear previous values
	for _, pts := range Results {
		for _, p := range pts {
			p.Vals = make(map[string][]float64)
		}
	}

	// for each selected output time
	for _, tidx := range TimeInds {

		// read results from file
		err := Dom.Read(Sum, tidx)
		if err != nil {
			chk.Panic("cannot load results into domain; please check log file:\n%v", err)
		}

		// collect values
		for _, pts := range Results {
			for _, p := range pts {
				if p.Vid >= 0 {
					collectNodeVals(p)
				} else {
					collectIpVals(p)
				}
			}
		}
	}
}

// GetRes gets results as a time or space series corresponding to a given alias
// for a single point or set of points.
//
//	idxI -- index in TimeInds slice corresponding to selected output time; use -1 for the last item.
//	        If alias defines a single point, the whole time series is returned and idxI is ignored.
func GetRes(key, alias string, idxI int) []float64 {
	if pts, ok := Results[alias]; ok {
		if len(pts) == 1 {
			if vals, ok := pts[0].Vals[key]; ok {
				return vals
			}
			chk.Panic("cannot find key %q in point %v", key, pts[0])
		}
		if idxI < 0 {
			idxI = len(TimeInds) - 1
		}
		res := make([]float64, len(pts))
		for i, p := range pts {
			vals, ok := p.Vals[key]
			if !ok || idxI >= len(vals) {
				chk.Panic("cannot find results for key %q at time index %d in point %v", key, idxI, p)
			}
			res[i] = vals[idxI]
		}
		return res
	}
	chk.Panic("cannot get %q results because alias %q is not available", key, alias)
	return nil
}

// GetXYZ returns the coordinates of points corresponding to alias
func GetXYZ(alias string) (x, y, z []float64) {
	pts, ok := Results[alias]
	if !ok {
		chk.Panic("cannot get coordinates because alias %q is not available", alias)
	}
	x = make([]float64, len(pts))
	y = make([]float64, len(pts))
	if Dom.Msh.Ndim == 3 {
		z = make([]float64, len(pts))
	}
	for i, p := range pts {
		x[i], y[i] = p.X[0], p.X[1]
		if z != nil {
			z[i] = p.X[2]
		}
	}
	return
}

// GetDist returns the distances of points corresponding to alias measured from the first point
func GetDist(alias string) (dist []float64) {
	pts, ok := Results[alias]
	if !ok {
		chk.Panic("cannot get distances because alias %q is not available", alias)
	}
	dist = make([]float64, len(pts))
	for i, p := range pts {
		dist[i] = p.Dist(pts[0])
	}
	return
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

// collectNodeVals appends the DOF values, the deformed coordinates and the contact values of a node
func collectNodeVals(p *Point) {
	nod := Dom.Vid2node[p.Vid]
	for _, dof := range nod.Dofs {
		p.Vals[dof.Key] = append(p.Vals[dof.Key], Dom.Sol.Y[dof.Eq])
	}
	for i, key := range []string{"x", "y", "z"}[:len(p.X)] {
		u := 0.0
		if eq := nod.GetEq("u" + key); eq >= 0 {
			u = Dom.Sol.Y[eq]
		}
		p.Vals["p"+key] = append(p.Vals["p"+key], p.X[i]+u)
	}
	for _, c := range Dom.Contacts {
		for j, s := range c.Slave {
			if s.Vid == p.Vid {
				p.Vals["gap"] = append(p.Vals["gap"], c.Gap[j])
				p.Vals["lamn"] = append(p.Vals["lamn"], c.Ln[j])
				p.Vals["lamt"] = append(p.Vals["lamt"], c.Lt[j])
				p.Vals["status"] = append(p.Vals["status"], float64(c.Status[j]))
			}
		}
	}
}

// collectIpVals appends the integration point values of an element
func collectIpVals(p *Point) {
	e := Dom.Cid2elem[p.Cid].(ele.CanOutputIps)
	M := ele.NewIpsMap()
	e.OutIpVals(M, Dom.Sol)
	for _, key := range M.Keys() {
		vals := (*M)[key]
		if p.IpId >= len(vals) {
			chk.Panic("integration point %d of cell %d is not available for key %q", p.IpId, p.Cid, key)
		}
		p.Vals[key] = append(p.Vals[key], vals[p.IpId])
	}
}

// message prints a message if verbose is on
func message(format string, args ...interface{}) {
	if Analysis != nil && Analysis.ShowMsg {
		io.Pfblue2(format, args...)
	}
}
