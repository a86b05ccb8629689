// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"testing"

	"github.com/cpmech/beamcontact/ana"
	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/beamcontact/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/james-bowman/sparse"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// elemSetup allocates the first element of a simulation and numbers its equations sequentially
func elemSetup(tst *testing.T, simfile, etype string) (sim *inp.Simulation, e ele.Element, neq int) {
	sim = inp.ReadSim(simfile, "", false, false)
	msh := sim.Regions[0].Msh
	edat := sim.Regions[0].ElemsData[0]
	cell := msh.Cells[0]
	info := ele.GetInfoFunc(etype)(sim, cell, edat)
	e = ele.GetAllocator(etype)(sim, cell, edat, ele.BuildCoordsMatrix(cell, msh))
	eqs := make([][]int, len(info.Dofs))
	for m, dofs := range info.Dofs {
		for range dofs {
			eqs[m] = append(eqs[m], neq)
			neq++
		}
	}
	require.NoError(tst, e.SetEqs(eqs))
	return
}

// solveCantilever clamps the first nn DOFs and solves K u = f for the remaining ones
func solveCantilever(tst *testing.T, K [][]float64, f []float64, nn int) (u []float64) {
	n := len(f) - nn
	A := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		b.SetVec(i, f[nn+i])
		for j := 0; j < n; j++ {
			A.Set(i, j, K[nn+i][nn+j])
		}
	}
	var x mat.VecDense
	require.NoError(tst, x.SolveVec(A, b))
	u = make([]float64, len(f))
	for i := 0; i < n; i++ {
		u[nn+i] = x.AtVec(i)
	}
	return
}

func Test_beam01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam01. 2D cantilever")

	_, e, neq := elemSetup(tst, "data/beam2d.sim", "beam")
	o := e.(*Beam)
	chk.IntAssert(neq, 6)
	chk.Ints(tst, "Umap", o.Umap, utl.IntRange(6))
	chk.Float64(tst, "L", 1e-15, o.L, 2)

	// symmetry and rigid body motions
	chk.Deep2(tst, "K-Kᵀ", 1e-15, o.K, transposed(o.K))
	θ := 0.1
	for _, u := range [][]float64{{1, 0, 0, 1, 0, 0}, {0, 1, 0, 0, 1, 0}, {0, 0, θ, 0, 2 * θ, θ}} {
		chk.Array(tst, io.Sf("K⋅u(rigid=%v)", u), 1e-14, matvec(o.K, u), nil)
	}

	// tip load
	EA, _, _, EI := o.Mdl.Rigidities()
	L, P := 2.0, 0.3
	u := solveCantilever(tst, o.K, []float64{0, 0, 0, 0, P, 0}, 3)
	δ, φ := ana.CantileverTipLoad(L, EI, P)
	chk.Float64(tst, "δ", 1e-12, u[4], δ)
	chk.Float64(tst, "φ", 1e-12, u[5], φ)
	chk.Float64(tst, "ux", 1e-15, u[3], 0)

	// residual vanishes at the solution
	sol := &ele.Solution{Y: u, Steady: true}
	fb := make([]float64, neq)
	require.NoError(tst, o.AddToRhs(fb, sol))
	fb[4] += P
	chk.Array(tst, "fb", 1e-13, fb[3:], nil)

	// resultants
	for _, ξ := range []float64{0, 0.25, 0.5, 1} {
		r := o.Resultants(sol, ξ)
		chk.Float64(tst, io.Sf("M(ξ=%g)", ξ), 1e-13, r.M3, P*L*(1-ξ))
		chk.Float64(tst, io.Sf("V(ξ=%g)", ξ), 1e-13, r.V1, -P)
		chk.Float64(tst, io.Sf("N(ξ=%g)", ξ), 1e-13, r.N, 0)
	}

	// axial load
	F := 0.7
	u = solveCantilever(tst, o.K, []float64{0, 0, 0, F, 0, 0}, 3)
	chk.Float64(tst, "ux", 1e-13, u[3], F*L/EA)
	sol.Y = u
	chk.Float64(tst, "N", 1e-13, o.Resultants(sol, 0.3).N, F)
}

func Test_beam02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam02. 2D cantilever with distributed load")

	_, e, neq := elemSetup(tst, "data/beam2d.sim", "beam")
	o := e.(*Beam)
	q, L := -0.25, 2.0
	require.NoError(tst, o.SetEleConds("qn", &dbf.Cte{C: q}, ""))
	require.Error(tst, o.SetEleConds("qx", &dbf.Cte{C: q}, ""))

	// equivalent nodal forces
	sol := &ele.Solution{Y: make([]float64, neq), Steady: true}
	fb := make([]float64, neq)
	require.NoError(tst, o.AddToRhs(fb, sol))
	chk.Array(tst, "fext", 1e-15, fb, []float64{0, q * L / 2, q * L * L / 12, 0, q * L / 2, -q * L * L / 12})

	// solution
	_, _, _, EI := o.Mdl.Rigidities()
	u := solveCantilever(tst, o.K, fb, 3)
	chk.Float64(tst, "δ", 1e-12, u[4], ana.CantileverSelfWeight(L, EI, q))
	sol.Y = u
	for _, ξ := range []float64{0, 0.2, 0.5, 0.8, 1} {
		τ := ξ * L
		r := o.Resultants(sol, ξ)
		chk.Float64(tst, io.Sf("M(ξ=%g)", ξ), 1e-13, r.M3, q*(L-τ)*(L-τ)/2)
		chk.Float64(tst, io.Sf("V(ξ=%g)", ξ), 1e-13, r.V1, -q*(L-τ))
	}

	// diagram
	X, M := o.Diagram(sol)
	chk.Int(tst, "nstations", len(X), o.Nstations)
	chk.Float64(tst, "M @ root", 1e-13, M[0], q*L*L/2)
	chk.Float64(tst, "M @ tip", 1e-13, M[len(M)-1], 0)
	chk.Array(tst, "X @ tip", 1e-15, X[len(X)-1], []float64{2, 0})
}

func Test_beam03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam03. 3D cantilever")

	sim, e, neq := elemSetup(tst, "data/beam3d.sim", "beam")
	o := e.(*Beam)
	chk.IntAssert(sim.Ndim, 3)
	chk.IntAssert(neq, 12)
	chk.Int(tst, "nsta", o.Nstations, 11)
	chk.Deep2(tst, "local axes", 1e-15, [][]float64{o.E[0][:], o.E[1][:], o.E[2][:]}, [][]float64{{1, 0, 0}, {0, 0, 1}, {0, -1, 0}})
	chk.Deep2(tst, "K-Kᵀ", 1e-15, o.K, transposed(o.K))

	// loads at tip: fy, fz and torque mx
	_, GJ, EI2, EI3 := o.Mdl.Rigidities()
	L, Py, Pz, T := 2.0, 0.2, -0.1, 0.05
	f := make([]float64, neq)
	f[7], f[8], f[9] = Py, Pz, T
	u := solveCantilever(tst, o.K, f, 6)
	δy, φz := ana.CantileverTipLoad(L, EI2, Py)
	δz, φy := ana.CantileverTipLoad(L, EI3, Pz)
	chk.Float64(tst, "uy", 1e-12, u[7], δy)
	chk.Float64(tst, "uz", 1e-12, u[8], δz)
	chk.Float64(tst, "rx", 1e-12, u[9], T*L/GJ)
	chk.Float64(tst, "ry", 1e-12, u[10], -φy)
	chk.Float64(tst, "rz", 1e-12, u[11], φz)

	// resultants at root
	sol := &ele.Solution{Y: u, Steady: true}
	r := o.Resultants(sol, 0)
	chk.Float64(tst, "M3 (about y2)", 1e-13, r.M3, Pz*L)
	chk.Float64(tst, "M2 (about y1)", 1e-13, r.M2, Py*L)
	chk.Float64(tst, "T", 1e-13, r.T, T)

	// number of stations given in the extra string
	reg := sim.Regions[0]
	reg.ElemsData[0].Extra = "!nsta:7"
	e7, err := ele.New(reg.Msh.Cells[0], reg, sim)
	require.NoError(tst, err)
	chk.Int(tst, "nsta", e7.(*Beam).Nstations, 7)
}

func Test_rod01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rod01. inclined rod")

	_, e, neq := elemSetup(tst, "data/rod2d.sim", "rod")
	o := e.(*Rod)
	chk.IntAssert(neq, 4)
	chk.Float64(tst, "L", 1e-15, o.L, 5)
	chk.Array(tst, "e", 1e-15, o.E[:2], []float64{0.6, 0.8})

	// stretch
	sol := &ele.Solution{Y: []float64{0, 0, 0.006, 0.008}, ΔY: []float64{0, 0, 0.006, 0.008}, Steady: true}
	require.NoError(tst, o.SetIniIvs(sol, nil))
	require.NoError(tst, o.BackupIvs(false))
	require.NoError(tst, o.Update(sol))
	chk.Float64(tst, "σ", 1e-13, o.States.Sig, 1000*0.002)

	// internal forces
	fb := make([]float64, neq)
	require.NoError(tst, o.AddToRhs(fb, sol))
	N := 2.0 * 0.01
	chk.Array(tst, "fb", 1e-15, fb, []float64{N * 0.6, N * 0.8, -N * 0.6, -N * 0.8})

	// stiffness
	Kb := sparse.NewCOO(neq, neq, nil, nil, nil)
	require.NoError(tst, o.AddToKb(Kb, sol, true))
	K := Kb.ToDense()
	α := 1000 * 0.01 / 5.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			chk.Float64(tst, io.Sf("K[%d][%d]", i, j), 1e-14, K.At(i, j), α*o.E[i]*o.E[j])
			chk.Float64(tst, io.Sf("K[%d][%d]", i, j+2), 1e-14, K.At(i, j+2), -α*o.E[i]*o.E[j])
		}
	}

	// restore
	require.NoError(tst, o.RestoreIvs(false))
	chk.Float64(tst, "σ (restored)", 1e-15, o.States.Sig, 0)

	// output
	M := ele.NewIpsMap()
	require.NoError(tst, o.Update(sol))
	o.OutIpVals(M, sol)
	chk.Float64(tst, "N", 1e-15, M.Get("N", 0), N)
	chk.Array(tst, "centroid", 1e-15, o.OutIpCoords()[0], []float64{1.5, 2})
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

func transposed(a [][]float64) (b [][]float64) {
	b = utl.Alloc(len(a[0]), len(a))
	for i := range a {
		for j := range a[i] {
			b[j][i] = a[i][j]
		}
	}
	return
}

func matvec(a [][]float64, u []float64) (v []float64) {
	v = make([]float64, len(a))
	for i := range a {
		for j := range u {
			v[i] += a[i][j] * u[j]
		}
	}
	return
}
