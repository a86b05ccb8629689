// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/beamcontact/ad"
	"github.com/cpmech/beamcontact/rot"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/james-bowman/sparse"
)

// PtNaturalBc holds information on point natural boundary conditions such as prescribed forces
// at nodes
type PtNaturalBc struct {
	Key   string    // key such as fx, fy, mz
	Eq    int       // equation
	X     []float64 // location
	Fcn   dbf.T     // function
	Extra string    // extra information
}

// PointMoment holds a spatial moment applied to a node whose rotation DOFs are the components
// of a rotation vector. The generalised forces are f = Jr(θ)⋅m and depend on the configuration
type PointMoment struct {
	Nod  *Node    // node
	Eqs  [3]int   // equations of rx, ry and rz
	Fcns [3]dbf.T // functions of mx, my and mz; nil means zero
}

// PtNaturalBcs is a set of PtNaturalBc
type PtNaturalBcs struct {
	Bcs     []*PtNaturalBc // constant direction loads
	Moments []*PointMoment // configuration dependent moments
}

// Reset clears all boundary conditions
func (o *PtNaturalBcs) Reset() {
	o.Bcs = make([]*PtNaturalBc, 0)
	o.Moments = make([]*PointMoment, 0)
}

// Set sets new point natural boundary condition. ykey is the DOF corresponding to the load key;
// e.g. "rz" for "mz". Nodes without ykey are skipped.
func (o *PtNaturalBcs) Set(key, ykey string, nod *Node, fcn dbf.T, extra string) {

	// skip missing DOF
	eq := nod.GetEq(ykey)
	if eq < 0 {
		return
	}

	// moment at node with rotation vector
	idx := map[string]int{"rx": 0, "ry": 1, "rz": 2}[ykey]
	if isRotvecNode(nod) && (ykey == "rx" || ykey == "ry" || ykey == "rz") {
		for _, m := range o.Moments {
			if m.Nod == nod {
				m.Fcns[idx] = fcn
				return
			}
		}
		m := &PointMoment{Nod: nod, Eqs: [3]int{nod.GetEq("rx"), nod.GetEq("ry"), nod.GetEq("rz")}}
		m.Fcns[idx] = fcn
		o.Moments = append(o.Moments, m)
		return
	}

	// replace existent
	for _, bc := range o.Bcs {
		if bc.Eq == eq {
			bc.Key, bc.Fcn, bc.Extra = key, fcn, extra
			return
		}
	}
	o.Bcs = append(o.Bcs, &PtNaturalBc{key, eq, nod.Vert.C, fcn, extra})
}

// AddToRhs adds the loads to fb (= external - internal forces)
func (o *PtNaturalBcs) AddToRhs(fb []float64, t float64, Y []float64) {
	for _, bc := range o.Bcs {
		fb[bc.Eq] += bc.Fcn.F(t, bc.X)
	}
	for _, m := range o.Moments {
		f := m.Forces(t, Y)
		for i, eq := range m.Eqs {
			fb[eq] += f[i]
		}
	}
}

// AddToKb adds the load stiffness -∂f/∂y of configuration dependent loads to Kb
func (o *PtNaturalBcs) AddToKb(Kb *sparse.COO, t float64, Y []float64) {
	for _, m := range o.Moments {
		dfdθ := m.Tangent(t, Y)
		for i, I := range m.Eqs {
			for j, J := range m.Eqs {
				if dfdθ[i][j] != 0 {
					Kb.Set(I, J, -dfdθ[i][j])
				}
			}
		}
	}
}

// Moment returns the spatial moment at time t
func (o *PointMoment) Moment(t float64) (mv [3]float64) {
	for i, f := range o.Fcns {
		if f != nil {
			mv[i] = f.F(t, o.Nod.Vert.C)
		}
	}
	return
}

// Forces returns the generalised forces Jr(θ)⋅m
func (o *PointMoment) Forces(t float64, Y []float64) (f [3]float64) {
	θ := rot.Const[ad.Real](o.rotvec(Y))
	return rot.Vals(rot.JrTimes(θ, rot.Const[ad.Real](o.Moment(t))))
}

// Tangent returns ∂(Jr(θ)⋅m)/∂θ
func (o *PointMoment) Tangent(t float64, Y []float64) (dfdθ [3][3]float64) {
	x := o.rotvec(Y)
	v := ad.Vars1(x[:])
	θ := rot.Vec[ad.D1]{v[0], v[1], v[2]}
	f := rot.JrTimes(θ, rot.Const[ad.D1](o.Moment(t)))
	for i := 0; i < 3; i++ {
		g := ad.Grad1(f[i], 3)
		copy(dfdθ[i][:], g)
	}
	return
}

// rotvec collects the rotation vector from the solution
func (o *PointMoment) rotvec(Y []float64) (θ [3]float64) {
	for i, eq := range o.Eqs {
		θ[i] = Y[eq]
	}
	return
}

// isRotvecNode tells whether the node carries a full rotation vector of a large rotation beam;
// i.e. it has the three rotation DOFs and the tangent length DOF of kbeams
func isRotvecNode(nod *Node) bool {
	return nod.GetEq("rx") >= 0 && nod.GetEq("ry") >= 0 && nod.GetEq("rz") >= 0 && nod.GetEq("ut") >= 0
}
