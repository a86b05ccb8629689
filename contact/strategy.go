// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// coef holds a coefficient of a constraint row
type coef struct {
	eq  int
	val float64
}

// row returns the gradient of the constraint of node j along v (n_j: weighted gap; t_j: minus the
// weighted slip)
func (o *Interface) row(j int, v [2]float64) (r []coef) {
	for k, p := range o.Slave {
		if o.D[j][k] == 0 {
			continue
		}
		for i, I := range p.Eqs {
			if I >= 0 {
				r = append(r, coef{I, -o.D[j][k] * v[i]})
			}
		}
	}
	for l, p := range o.Master {
		if o.M[j][l] == 0 {
			continue
		}
		for i, I := range p.Eqs {
			if I >= 0 {
				r = append(r, coef{I, o.M[j][l] * v[i]})
			}
		}
	}
	return
}

// AddToRhs adds contact forces to fb (= external - internal forces)
func (o *Interface) AddToRhs(fb []float64) {
	for j := range o.Slave {
		if o.Ln[j] != 0 {
			for _, c := range o.row(j, o.N[j]) {
				fb[c.eq] += c.val * o.Ln[j]
			}
		}
		if o.Lt[j] != 0 {
			for _, c := range o.row(j, o.T[j]) {
				fb[c.eq] += c.val * o.Lt[j]
			}
		}
	}
}

// Solve solves the linearised system K⋅δx = fb augmented with the contact constraints and updates
// the Lagrange multipliers. K is the Jacobian of the (possibly already augmented with essential
// boundary conditions) system and fb must include contact forces (see AddToRhs).
func (o *Interface) Solve(K *mat.Dense, fb []float64) (δx []float64, err error) {
	if o.Dat.Mode == "saddle" {
		return o.solveSaddle(K, fb)
	}
	return o.solveCondensed(K, fb)
}

// constraint holds the right-hand side of the linearised normal and tangential constraints of a node
//
//	normal:     cn ⋅ δx + an δλn = bn
//	tangential: ct ⋅ δx + at δλt + atn δλn = bt
type constraint struct {
	cn, ct      []coef
	an, at, atn float64
	bn, bt      float64
}

// constraints returns the linearised contact conditions of node j
func (o *Interface) constraints(j int) (c constraint) {
	switch o.Status[j] {
	case Inactive:
		c.an, c.bn = 1, -o.Ln[j]
		c.at, c.bt = 1, -o.Lt[j]
		return
	case Stick:
		c.cn, c.bn = o.row(j, o.N[j]), -o.Gap[j]
		c.ct, c.bt = o.row(j, o.T[j]), o.Jump[j]
		return
	}
	c.cn, c.bn = o.row(j, o.N[j]), -o.Gap[j]
	c.at = 1
	if o.Dat.Friction == "coulomb" {
		c.atn = -o.Mu * o.Sgn[j]
	}
	c.bt = o.slipTraction(j) - o.Lt[j]
	return
}

// solveSaddle solves the full system with displacements and Lagrange multipliers
func (o *Interface) solveSaddle(K *mat.Dense, fb []float64) (δx []float64, err error) {
	n, ns := len(fb), len(o.Slave)
	A := mat.NewDense(n+2*ns, n+2*ns, nil)
	b := mat.NewVecDense(n+2*ns, nil)
	A.Slice(0, n, 0, n).(*mat.Dense).Copy(K)
	for i := 0; i < n; i++ {
		b.SetVec(i, fb[i])
	}
	for j := range o.Slave {
		In, It := n+2*j, n+2*j+1
		for _, c := range o.row(j, o.N[j]) {
			A.Set(c.eq, In, A.At(c.eq, In)-c.val)
		}
		for _, c := range o.row(j, o.T[j]) {
			A.Set(c.eq, It, A.At(c.eq, It)-c.val)
		}
		c := o.constraints(j)
		for _, r := range c.cn {
			A.Set(In, r.eq, A.At(In, r.eq)+r.val)
		}
		for _, r := range c.ct {
			A.Set(It, r.eq, A.At(It, r.eq)+r.val)
		}
		A.Set(In, In, c.an)
		A.Set(It, It, c.at)
		A.Set(It, In, c.atn)
		b.SetVec(In, c.bn)
		b.SetVec(It, c.bt)
	}
	x, err := solve(A, b)
	if err != nil {
		return
	}
	δx = x[:n]
	for j := range o.Slave {
		o.Ln[j] += x[n+2*j]
		o.Lt[j] += x[n+2*j+1]
	}
	return
}

// solveCondensed eliminates the Lagrange multipliers using the diagonal slave mortar matrix. The
// slave rows are transferred to the master rows with D⁻¹M and replaced by the contact conditions.
func (o *Interface) solveCondensed(K *mat.Dense, fb []float64) (δx []float64, err error) {

	// original slave rows
	n, ns := len(fb), len(o.Slave)
	rows := make([][2][]float64, ns)
	rhs := make([][2]float64, ns)
	for j, p := range o.Slave {
		for i, I := range p.Eqs {
			if I < 0 {
				return nil, chk.Err("condensation requires free slave nodes; slave vertex %d has no equation for direction %d", p.Vid, i)
			}
			rows[j][i] = mat.Row(nil, I, K)
			rhs[j][i] = fb[I]
		}
	}

	// transfer slave rows to master rows
	A := mat.DenseCopyOf(K)
	b := mat.NewVecDense(n, append([]float64{}, fb...))
	for j := range o.Slave {
		for l, p := range o.Master {
			if o.M[j][l] == 0 {
				continue
			}
			P := o.M[j][l] / o.D[j][j]
			for i, I := range p.Eqs {
				if I < 0 {
					continue
				}
				for m := 0; m < n; m++ {
					A.Set(I, m, A.At(I, m)+P*rows[j][i][m])
				}
				b.SetVec(I, b.AtVec(I)+P*rhs[j][i])
			}
		}
	}

	// replace slave rows by the contact conditions. δλ = (r - R⋅δx) / D
	for j, p := range o.Slave {
		if !o.HasMaster[j] {
			if o.Status[j] != Inactive {
				return nil, chk.Err("active slave vertex %d does not project onto master", p.Vid)
			}
			continue
		}
		c := o.constraints(j)
		Rn, rn := project(rows[j], rhs[j], o.N[j])
		Rt, rt := project(rows[j], rhs[j], o.T[j])
		Djj, Ix, Iy := o.D[j][j], p.Eqs[0], p.Eqs[1]

		//  cn⋅δx + an (rn - Rn⋅δx)/D = bn
		setRow(A, Ix, c.cn, Rn, -c.an/Djj)
		b.SetVec(Ix, c.bn-c.an*rn/Djj)

		//  ct⋅δx + at (rt - Rt⋅δx)/D + atn (rn - Rn⋅δx)/D = bt
		setRow(A, Iy, c.ct, Rt, -c.at/Djj)
		for m := 0; m < n; m++ {
			A.Set(Iy, m, A.At(Iy, m)-c.atn*Rn[m]/Djj)
		}
		b.SetVec(Iy, c.bt-(c.at*rt+c.atn*rn)/Djj)
	}
	x, err := solve(A, b)
	if err != nil {
		return
	}
	δx = x

	// recover multipliers
	for j := range o.Slave {
		if !o.HasMaster[j] {
			o.Ln[j], o.Lt[j] = 0, 0
			continue
		}
		Rn, rn := project(rows[j], rhs[j], o.N[j])
		Rt, rt := project(rows[j], rhs[j], o.T[j])
		o.Ln[j] += (rn - dot(Rn, δx)) / o.D[j][j]
		o.Lt[j] += (rt - dot(Rt, δx)) / o.D[j][j]
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// project combines the x and y rows along v
func project(rows [2][]float64, rhs [2]float64, v [2]float64) (R []float64, r float64) {
	R = make([]float64, len(rows[0]))
	for m := range R {
		R[m] = v[0]*rows[0][m] + v[1]*rows[1][m]
	}
	r = v[0]*rhs[0] + v[1]*rhs[1]
	return
}

// setRow sets row I of A to c + α R
func setRow(A *mat.Dense, I int, c []coef, R []float64, α float64) {
	for m := range R {
		A.Set(I, m, α*R[m])
	}
	for _, r := range c {
		A.Set(I, r.eq, A.At(I, r.eq)+r.val)
	}
}

func dot(a, b []float64) (res float64) {
	for i := range a {
		res += a[i] * b[i]
	}
	return
}

// solve solves A⋅x = b with the LU decomposition
func solve(A *mat.Dense, b *mat.VecDense) (x []float64, err error) {
	var lu mat.LU
	lu.Factorize(A)
	var y mat.VecDense
	if err = lu.SolveVecTo(&y, false, b); err != nil {
		return nil, chk.Err("linear solver failed: %v", err)
	}
	return y.RawVector().Data, nil
}
