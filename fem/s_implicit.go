// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ImplicitSolver solves FEM problem using an implicit procedure (with Newthon-Raphson method)
type ImplicitSolver struct {
	doms []*Domain
	sum  *Summary
	dc   *ele.DynCoefs
}

// set factory
func init() {
	allocators["imp"] = func(doms []*Domain, sum *Summary, dc *ele.DynCoefs) Solver {
		return &ImplicitSolver{doms, sum, dc}
	}
}

// Run runs the time loop
func (o *ImplicitSolver) Run(tf float64, dtFunc, dtoFunc dbf.T, verbose bool) (err error) {

	// check
	if len(o.doms) == 0 {
		return
	}

	// auxiliary
	md := 1.0    // time step multiplier if divergence control is on
	ndiverg := 0 // number of steps diverging
	ncut := 0    // number of time step cuts
	dat := &o.doms[0].Sim.Solver
	steady := o.doms[0].Sim.Data.Steady
	needBackup := dat.DvgCtrl || dat.NmaxCut > 0

	// time control
	t := o.doms[0].Sol.T
	tout := t + dtoFunc.F(t, nil)

	// first output
	if o.sum != nil {
		err = o.sum.SaveDomains(t, o.doms, false)
		if err != nil {
			return chk.Err("cannot save results:\n%v", err)
		}
	}

	// time loop
	var Δt, Δtout float64
	var lasttimestep bool
	for t < tf {

		// check for continued divergence
		if ndiverg >= dat.NdvgMax {
			return chk.Err("continuous divergence after %d steps reached", ndiverg)
		}

		// time increment
		Δt = dtFunc.F(t, nil) * md
		if t+Δt >= tf-dat.DtMin {
			Δt = tf - t
			lasttimestep = true
		}
		if Δt < dat.DtMin {
			if md < 1 {
				return chk.Err("Δt increment is too small: %g < %g", Δt, dat.DtMin)
			}
			return
		}

		// dynamic coefficients
		if !steady {
			err = o.dc.CalcBoth(Δt)
			if err != nil {
				return chk.Err("cannot compute dynamic coefficients:\n%v", err)
			}
		}

		// time update
		t += Δt
		for _, d := range o.doms {
			d.Sol.T = t
		}
		Δtout = dtoFunc.F(t, nil)

		// message
		if verbose && !dat.ShowR {
			io.Pf("> t = %g\n", t)
		}

		// for all domains
		docontinue := false
		for _, d := range o.doms {

			// backup solution if divergence control or step cuts are on
			if needBackup {
				err = d.backup()
				if err != nil {
					return
				}
			}

			// run iterations
			diverging, e := runIterations(t, Δt, d, o.sum)

			// retry with smaller time step
			if e != nil || (diverging && dat.DvgCtrl) {
				retry := false
				if e != nil && ncut < dat.NmaxCut {
					if verbose {
						io.Pfred(". . . step failed (%v). cutting Δt (%d) . . .\n", e, ncut+1)
					}
					ncut++
					retry = true
				}
				if e == nil {
					if verbose {
						io.Pfred(". . . iterations diverging (%2d) . . .\n", ndiverg+1)
					}
					ndiverg++
					retry = true
				}
				if !retry {
					return e
				}
				err = d.restore()
				if err != nil {
					return
				}
				t -= Δt
				for _, dd := range o.doms {
					dd.Sol.T = t
				}
				md *= 0.5
				lasttimestep = false
				docontinue = true
				break
			}
			ndiverg = 0
		}
		if docontinue {
			continue
		}
		ncut = 0
		md = 1.0

		// commit converged state
		for _, d := range o.doms {
			err = d.Commit()
			if err != nil {
				return chk.Err("cannot commit converged state:\n%v", err)
			}
		}
		if o.sum != nil {
			o.sum.Nsteps++
		}

		// perform output
		if t >= tout || lasttimestep {
			if o.sum != nil {
				err = o.sum.SaveDomains(t, o.doms, false)
				if err != nil {
					return chk.Err("cannot save results:\n%v", err)
				}
			}
			tout += Δtout
		}
	}
	return
}

// runIterations solves the nonlinear problem of one time step. With contact interfaces, the
// semi-smooth active set is updated after each iteration or, in the fixed-point variant, after
// each converged Newton loop
func runIterations(t, Δt float64, d *Domain, sum *Summary) (diverging bool, err error) {

	// zero accumulated increments
	for i := range d.Sol.ΔY {
		d.Sol.ΔY[i] = 0
	}

	// calculate global starred vectors and interpolate starred variables from nodes to integration points
	err = d.starVars(Δt)
	if err != nil {
		return
	}

	// fixed-point active set loop
	for {
		var changed bool
		diverging, err = newtonLoop(t, d, sum)
		if err != nil || diverging {
			return
		}
		for _, c := range d.Contacts {
			if c.Dat.SemiSmooth {
				continue
			}
			err = c.Evaluate(d.Sol.Y)
			if err != nil {
				return
			}
			if c.UpdateActiveSet() {
				changed = true
				err = c.NextStep()
				if err != nil {
					return
				}
			}
		}
		if !changed {
			break
		}
	}
	return
}

// newtonLoop runs the Newton-Raphson iterations
func newtonLoop(t float64, d *Domain, sum *Summary) (diverging bool, err error) {

	// auxiliary variables
	dat := &d.Sim.Solver
	var it int
	var largFb, largFb0, Lδu float64
	var prevFb, prevLδu float64
	var K *mat.Dense
	setChanged := false

	// message
	if dat.ShowR {
		io.Pf("\n%13s%4s%23s%23s\n", "t", "it", "largFb", "Lδu")
		defer func() {
			io.Pf("%13.6e%4d%23.15e%23.15e\n", t, it, largFb, Lδu)
		}()
	}

	// iterations
	for it = 0; it < dat.NmaxIt; it++ {

		// assemble right-hand side vector (fb) with negative of residuals
		err = d.AssembleRhs()
		if err != nil {
			return
		}

		// find largest absolute component of fb and of the contact conditions
		largFb = floats.Norm(d.Fb, math.Inf(1))
		for _, c := range d.Contacts {
			largFb = math.Max(largFb, c.Residual())
		}

		// save residual
		if sum != nil && d.Sim.Data.Stat {
			sum.AppendResid(it == 0, largFb)
		}

		// check largFb value
		if it == 0 {
			// store largest absolute component of fb
			largFb0 = largFb
		} else if !setChanged {
			// check convergence on Lf0
			if largFb < dat.FbTol*largFb0 { // converged on fb
				break
			}
			// check convergence on fb_min
			if largFb < dat.FbMin { // converged with smallest value of fb
				break
			}
		}

		// check divergence on fb
		if it > 1 && dat.DvgCtrl && !setChanged {
			if largFb > prevFb {
				diverging = true
				break
			}
		}
		prevFb = largFb

		// assemble Jacobian matrix
		if it == 0 || !dat.CteTg || K == nil {
			Kb, e := d.AssembleKb(it == 0)
			if e != nil {
				return false, e
			}
			if d.Sim.Data.WriteSmat {
				return false, d.writeSmat(Kb)
			}
			K = Kb.ToDense()
		}

		// solve for wb := δyb; SetStage allows at most one contact interface per domain
		var wb []float64
		if len(d.Contacts) > 0 {
			wb, err = d.Contacts[0].Solve(K, d.Fb)
		} else {
			wb, err = linSolve(K, d.Fb)
		}
		if err != nil {
			return
		}
		copy(d.Wb, wb)

		// update primary variables (y)
		for i := 0; i < d.Ny; i++ {
			d.Sol.Y[i] += d.Wb[i]  // y += δy
			d.Sol.ΔY[i] += d.Wb[i] // ΔY += δy
		}
		if !d.Sim.Data.Steady {
			α1, _, _, α4, _, _ := d.DynCfs.GetAlps()
			for _, I := range d.T2eqs {
				d.Sol.Dydt[I] = α4*d.Sol.Y[I] - d.Sol.Chi[I]
				d.Sol.D2ydt2[I] = α1*d.Sol.Y[I] - d.Sol.Zet[I]
			}
		}

		// update Lagrange multipliers (λ)
		for i := 0; i < d.Nlam; i++ {
			d.Sol.L[i] += d.Wb[d.Ny+i] // λ += δλ
		}

		// backup / restore
		for _, e := range d.ElemIntvars {
			if it == 0 {
				// create backup copy of all secondary variables
				err = e.BackupIvs(false)
			} else {
				// recover last converged state from backup copy
				err = e.RestoreIvs(false)
			}
			if err != nil {
				return
			}
		}

		// update secondary variables
		err = d.UpdateElems()
		if err != nil {
			return
		}

		// update active sets
		setChanged = false
		for _, c := range d.Contacts {
			if !c.Dat.SemiSmooth {
				continue
			}
			err = c.Evaluate(d.Sol.Y)
			if err != nil {
				return
			}
			if c.UpdateActiveSetSemiSmooth() {
				setChanged = true
				err = c.NextStep()
				if err != nil {
					return
				}
			}
		}
		if sum != nil && setChanged {
			sum.ActiveSteps++
		}

		// compute RMS norm of δu and check convegence on δu
		Lδu = rmsErr(d.Wb[:d.Ny], dat.Atol, dat.Rtol, d.Sol.Y[:d.Ny])

		// message
		if dat.ShowR {
			io.Pf("%13.6e%4d%23.15e%23.15e\n", t, it, largFb, Lδu)
		}

		// stop if converged on δu
		if Lδu < dat.Itol && !setChanged {
			break
		}

		// check divergence on Lδu
		if it > 1 && dat.DvgCtrl && !setChanged {
			if Lδu > prevLδu {
				diverging = true
				break
			}
		}
		prevLδu = Lδu
	}

	// check if iterations diverged
	if it == dat.NmaxIt {
		return false, chk.Err("max number of iterations reached: it = %d", it)
	}
	return
}
