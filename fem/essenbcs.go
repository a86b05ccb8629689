// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"

	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/james-bowman/sparse"
)

// EssentialBc holds information about essential bounday conditions such as constrained nodes.
// Lagrange multipliers are used to implement both single- and multi-point constraints.
//
//	In general, essential bcs / constraints are defined by means of:
//
//	    A・y = c
//
//	The resulting Kb matrix will then have the following form:
//	    _       _
//	   |  K  At  | / δy \   / -R - At*λ \
//	   |         | |    | = |           |
//	   |_ A   0 _| \ δλ /   \  c - A*y  /
//	       Kb       δyb          fb
type EssentialBc struct {
	Key   string    // key such as 'ux', 'rz', 'rigid', 'incsup'
	Eqs   []int     // equations numbers; can be more than one e.g. for inclined support
	ValsA []float64 // values for matrix A
	Fcn   dbf.T     // function that implements the "c" vector in  A・y = c
}

// EbcArray is an array of EssentialBc's
type EbcArray []*EssentialBc

// EssentialBcs implements a structure to record the definition of essential bcs / constraints.
// Each constraint will have a unique Lagrange multiplier index.
type EssentialBcs struct {
	Bcs EbcArray // active essential bcs / constraints
}

// Init initialises this structure
func (o *EssentialBcs) Init() {
	o.Bcs = make([]*EssentialBc, 0)
}

// Build sorts the constraints
//
//	nλ   -- is the number of essential bcs / constraints == number of Lagrange multipliers
//	nnzA -- is the number of non-zeros in matrix 'A'
func (o *EssentialBcs) Build(ny int) (nλ, nnzA int) {
	nλ = len(o.Bcs)
	if nλ == 0 {
		return
	}
	sort.Sort(o.Bcs)
	for _, bc := range o.Bcs {
		nnzA += len(bc.ValsA)
	}
	return
}

// AddToRhs adds the essential bcs / constraints terms to the augmented fb vector
func (o *EssentialBcs) AddToRhs(fb []float64, sol *ele.Solution) {
	ny := len(sol.Y)
	for i, bc := range o.Bcs {
		c := bc.Fcn.F(sol.T, nil)
		for j, eq := range bc.Eqs {
			fb[eq] -= bc.ValsA[j] * sol.L[i] // fb += -At*λ
			c -= bc.ValsA[j] * sol.Y[eq]     // c - A*y
		}
		fb[ny+i] = c
	}
}

// AddToKb puts A and At into the augmented Jacobian matrix
func (o *EssentialBcs) AddToKb(Kb *sparse.COO, ny int) {
	for i, bc := range o.Bcs {
		for j, eq := range bc.Eqs {
			Kb.Set(ny+i, eq, bc.ValsA[j])
			Kb.Set(eq, ny+i, bc.ValsA[j])
		}
	}
}

// Set sets a constraint if it does not exist yet.
//
//	key   -- can be Dof key such as "ux", "rz" or constraint type such as "incsup" or "rigid"
//	extra -- is a keycode-style data. e.g. "!alp:30"
//	Notes:
//	 1) the default key is single point constraint; e.g. "ux", "uy", ...
//	 2) nodes without the key are skipped; e.g. "ra" at the end nodes of kbeams
func (o *EssentialBcs) Set(key string, nodes []*Node, fcn dbf.T, extra string) (err error) {

	// auxiliary
	if len(nodes) == 0 || nodes[0] == nil {
		return
	}
	ndim := len(nodes[0].Vert.C)

	// rigid element
	if key == "rigid" {
		a := nodes[0].Dofs
		for i := 1; i < len(nodes); i++ {
			for j, b := range nodes[i].Dofs {
				o.setEqs(key, []int{a[j].Eq, b.Eq}, []float64{1, -1}, &dbf.Cte{C: 0})
			}
		}
		return
	}

	// inclined support
	if key == "incsup" {
		if ndim != 2 {
			return chk.Err("inclined support works only in 2D for now")
		}
		var α float64
		if val, found := io.Keycode(extra, "alp"); found {
			α = io.Atof(val) * math.Pi / 180.0
		}
		co, si := math.Cos(α), math.Sin(α)
		for _, nod := range nodes {
			eqx, eqy := nod.GetEq("ux"), nod.GetEq("uy")
			if eqx < 0 || eqy < 0 {
				return chk.Err("inclined support requires ux and uy at node %d", nod.Vert.Id)
			}
			o.setEqs(key, []int{eqx, eqy}, []float64{co, si}, &dbf.Cte{C: 0})
		}
		return
	}

	// single-point constraint
	for _, nod := range nodes {
		d := nod.GetDof(key)
		if d == nil {
			continue
		}
		o.setEqs(key, []int{d.Eq}, []float64{1}, fcn)
	}
	return
}

// List returns a simple list logging bcs at time t
func (o *EssentialBcs) List(t float64) (l string) {
	l = "\n==================================================================\n"
	l += io.Sf("%8s%8s%25s%25s\n", "eq", "key", "value @ t=0", io.Sf("value @ t=%g", t))
	l += "------------------------------------------------------------------\n"
	sort.Sort(o.Bcs)
	for _, bc := range o.Bcs {
		l += io.Sf("%8d%8s%25.13f%25.13f\n", bc.Eqs[0], bc.Key, bc.Fcn.F(0, nil), bc.Fcn.F(t, nil))
	}
	l += "==================================================================\n"
	return
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

// setEqs sets/replace constraint and equations
func (o *EssentialBcs) setEqs(key string, eqs []int, valsA []float64, fcn dbf.T) {
	for _, eq := range eqs {
		for _, bc := range o.Bcs {
			for _, eqOld := range bc.Eqs {
				if eqOld == eq {
					bc.Key, bc.Eqs, bc.ValsA, bc.Fcn = key, eqs, valsA, fcn
					return
				}
			}
		}
	}
	o.Bcs = append(o.Bcs, &EssentialBc{key, eqs, valsA, fcn})
}

// functions to implement Sort interface
func (o EbcArray) Len() int      { return len(o) }
func (o EbcArray) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o EbcArray) Less(i, j int) bool {
	return minInt(o[i].Eqs) < minInt(o[j].Eqs)
}

func minInt(a []int) (res int) {
	res = a[0]
	for _, v := range a[1:] {
		res = min(res, v)
	}
	return
}
