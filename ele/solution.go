// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Solution holds the solution data @ nodes and the multipliers of constraints.
//
//	      / y \   y: displacements, rotation vectors and twist angles   (ny x 1)
//	yb =  |   |
//	      \ λ /   λ: Lagrange multipliers of essential conditions     (nλ x 1)
type Solution struct {

	// current state
	T      float64   // current time
	Y      []float64 // DOFs (solution variables); e.g. y = {u, θ, α}
	Dydt   []float64 // dy/dt
	D2ydt2 []float64 // d²y/dt²

	// auxiliary
	Dt  float64   // current time increment
	ΔY  []float64 // total increment within the current time step (for nonlinear solver)
	Zet []float64 // t2 star vars; e.g. ζ* = α1.u + α2.v + α3.a
	Chi []float64 // t2 star vars; e.g. χ* = α4.u + α5.v + α6.a
	L   []float64 // Lagrange multipliers

	// problem definition and constants
	Steady  bool      // [from Sim] steady simulation
	Pstress bool      // [from Sim] plane-stress
	DynCfs  *DynCoefs // [from FEM] coefficients for dynamics/transient simulations
}

// NewSolution allocates a solution with ny DOFs and nλ multipliers
func NewSolution(ny, nλ int, steady, pstress bool, dc *DynCoefs) (o *Solution) {
	o = &Solution{Steady: steady, Pstress: pstress, DynCfs: dc}
	o.Y = make([]float64, ny)
	o.ΔY = make([]float64, ny)
	o.L = make([]float64, nλ)
	o.Dydt = make([]float64, ny)
	o.D2ydt2 = make([]float64, ny)
	o.Zet = make([]float64, ny)
	o.Chi = make([]float64, ny)
	return
}

// CopyFrom copies time and vectors from another solution; existing slices are reused
func (o *Solution) CopyFrom(src *Solution) {
	o.T, o.Dt = src.T, src.Dt
	o.Y = append(o.Y[:0], src.Y...)
	o.ΔY = append(o.ΔY[:0], src.ΔY...)
	o.L = append(o.L[:0], src.L...)
	if !src.Steady {
		o.Dydt = append(o.Dydt[:0], src.Dydt...)
		o.D2ydt2 = append(o.D2ydt2[:0], src.D2ydt2...)
		o.Zet = append(o.Zet[:0], src.Zet...)
		o.Chi = append(o.Chi[:0], src.Chi...)
	}
	o.Steady, o.Pstress, o.DynCfs = src.Steady, src.Pstress, src.DynCfs
}

// Reset clear values
func (o *Solution) Reset(steady bool) {
	o.T = 0
	zero := func(vecs ...[]float64) {
		for _, v := range vecs {
			for i := range v {
				v[i] = 0
			}
		}
	}
	zero(o.Y, o.ΔY, o.L)
	if !steady {
		zero(o.Zet, o.Chi, o.Dydt, o.D2ydt2)
	}
}
