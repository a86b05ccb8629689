// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the FEM solver
package fem

import (
	"time"

	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/beamcontact/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Main holds all data for a simulation using the finite element method
type Main struct {
	Sim         *inp.Simulation // simulation data
	Summary     *Summary        // summary structure
	DynCfs      *ele.DynCoefs   // coefficients for dynamics/transient simulations
	Domains     []*Domain       // all domains
	Solver      Solver          // finite element method solver; e.g. implicit
	ShowMsg     bool            // show messages
	SaveSummary bool            // save summary file at the end of Run
}

// NewMain returns a new Main structure
//
//	Input:
//	 simfilepath   -- simulation (.sim) filename including full path
//	 alias         -- word to be appended to simulation key; e.g. when running multiple FE solutions
//	 erasePrev     -- erase previous results files
//	 saveSummary   -- save summary
//	 readSummary   -- ready summary of previous simulation
//	 verbose       -- show messages
func NewMain(simfilepath, alias string, erasePrev, saveSummary, readSummary, verbose bool) (o *Main) {

	// new Main object
	o = new(Main)
	o.ShowMsg = verbose
	o.SaveSummary = saveSummary

	// read input data
	o.Sim = inp.ReadSim(simfilepath, alias, erasePrev, true)
	if o.Sim == nil {
		chk.Panic("cannot ready simulation input data")
	}

	// summary
	o.Summary = NewSummary(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType)
	if readSummary {
		err := o.Summary.Read(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType)
		if err != nil {
			chk.Panic("cannot ready summary:\n%v", err)
		}
	}

	// message
	if o.ShowMsg {
		io.Pf("> Simulation (.sim) file read\n")
		io.Pf("> Run id = %s\n", o.Summary.RunId)
	}

	// auxiliary structures
	o.DynCfs = new(ele.DynCoefs)
	o.DynCfs.Init(&o.Sim.Solver)

	// allocate domains
	o.Domains = NewDomains(o.Sim, o.DynCfs, verbose)

	// allocate solver
	if alloc, ok := allocators[o.Sim.Solver.Type]; ok {
		o.Solver = alloc(o.Domains, o.Summary, o.DynCfs)
	} else {
		chk.Panic("cannot find solver type named %q", o.Sim.Solver.Type)
	}
	return
}

// Run runs FE simulation
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// plot functions
	if o.Sim.PlotF != nil {
		err = o.Sim.Functions.PlotAll(o.Sim.PlotF, o.Sim.DirOut, o.Sim.Key)
		if err != nil {
			return
		}
		if o.ShowMsg {
			io.Pf("> Functions plotted\n")
		}
		return
	}

	// message
	if o.ShowMsg {
		io.Pf("> Solving stages\n")
	}

	// loop over stages
	for stgidx, stg := range o.Sim.Stages {

		// skip stage?
		if stg.Skip {
			continue
		}

		// set stage
		err = o.SetStage(stgidx)
		if err != nil {
			return
		}

		// initialise solution vectors
		err = o.ZeroStage(stgidx, true)
		if err != nil {
			return
		}

		// message
		if o.ShowMsg {
			io.Pf("> Running FE solver\n")
		}

		// time loop
		err = o.Solver.Run(stg.Control.Tf, stg.Control.DtFunc, stg.Control.DtoFunc, o.ShowMsg)
		if err != nil {
			return chk.Err("stage %d failed:\n%v", stgidx, err)
		}
	}
	return
}

// SetStage sets stage for all domains
//
//	Input:
//	 stgidx -- stage index (in o.Sim.Stages)
func (o *Main) SetStage(stgidx int) (err error) {
	if o.ShowMsg {
		io.Pf("> Setting stage %d\n", stgidx)
	}
	for _, d := range o.Domains {
		err = d.SetStage(stgidx)
		if err != nil {
			return chk.Err("SetStage failed:\n%v", err)
		}
	}
	return
}

// ZeroStage zeroes solution varaibles; i.e. it initialises solution vectors (Y, dYdt, internal
// values, contact multipliers) in all domains for all nodes and all elements
//
//	Input:
//	 stgidx  -- stage index (in o.Sim.Stages)
//	 zeroSol -- zero vectors in domains.Sol
func (o *Main) ZeroStage(stgidx int, zeroSol bool) (err error) {
	if o.ShowMsg {
		io.Pf("> Zeroing stage %d\n", stgidx)
	}
	for _, d := range o.Domains {
		err = d.SetIniVals(stgidx, zeroSol)
		if err != nil {
			return
		}
	}
	return
}

// SolveOneStage solves one stage that was already set
//
//	Input:
//	 stgidx    -- stage index (in o.Sim.Stages)
//	 zerostage -- zero vectors in domains.Sol => call ZeroStage
func (o *Main) SolveOneStage(stgidx int, zerostage bool) (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// zero stage
	if zerostage {
		err = o.ZeroStage(stgidx, true)
		if err != nil {
			return
		}
	}

	// run
	stg := o.Sim.Stages[stgidx]
	err = o.Solver.Run(stg.Control.Tf, stg.Control.DtFunc, stg.Control.DtoFunc, o.ShowMsg)
	return
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// onexit clean resources, prints final message with cpu time and save summary
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {

	// clean resources
	o.Sim.Clean()

	// show final message
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", time.Since(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}

	// save summary
	if o.SaveSummary {
		err = o.Summary.Save()
		if err != nil {
			return
		}
	}

	// skip if previous error is not nil
	if prevErr != nil {
		err = prevErr
	}
	return
}
