// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"
	"testing"

	"github.com/cpmech/beamcontact/ad"
	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/beamcontact/inp"
	"github.com/cpmech/beamcontact/rot"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/james-bowman/sparse"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// a deformed state of a kbeam (all 15 local DOFs)
var kbeamState15 = []float64{
	0.01, -0.02, 0.03, 0.1, -0.2, 0.15, 0.05,
	-0.03, 0.02, 0.01, 0.3, 0.1, -0.25, -0.04,
	0.2,
}

// kbeamSetup allocates the first element of a simulation and sets its equations sequentially
func kbeamSetup(tst *testing.T, simfile string) (sim *inp.Simulation, e *KBeam, info *ele.Info, neq int) {
	sim = inp.ReadSim(simfile, "", false, false)
	msh := sim.Regions[0].Msh
	edat := sim.Regions[0].ElemsData[0]
	cell := msh.Cells[0]
	info = ele.GetInfoFunc("kbeam")(sim, cell, edat)
	e = ele.GetAllocator("kbeam")(sim, cell, edat, ele.BuildCoordsMatrix(cell, msh)).(*KBeam)
	eqs := make([][]int, len(info.Dofs))
	for m, dofs := range info.Dofs {
		eqs[m] = []int{}
		for range dofs {
			eqs[m] = append(eqs[m], neq)
			neq++
		}
	}
	require.NoError(tst, e.SetEqs(eqs))
	return
}

// checkRelative compares matrices relatively to the largest component of b
func checkRelative(tst *testing.T, msg string, tol float64, a, b [][]float64) {
	scale := 0.0
	for i := range b {
		for j := range b[i] {
			scale = math.Max(scale, math.Abs(b[i][j]))
		}
	}
	if scale == 0 {
		scale = 1
	}
	chk.Deep2(tst, msg, tol*scale, a, b)
}

func Test_kbeam01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kbeam01. info, equations and reference configuration")

	// 3D
	_, e, info, neq := kbeamSetup(tst, "data/kbeam3d.sim")
	chk.IntAssert(neq, 15)
	chk.Strings(tst, "dofs: node 0", info.Dofs[0], []string{"ux", "uy", "uz", "rx", "ry", "rz", "ut"})
	chk.Strings(tst, "dofs: node 1", info.Dofs[1], []string{"ux", "uy", "uz", "rx", "ry", "rz", "ut"})
	chk.Strings(tst, "dofs: node 2", info.Dofs[2], []string{"ra"})
	chk.Ints(tst, "Umap", e.Umap[:], utl.IntRange(15))
	chk.Ints(tst, "eqs", e.GetEqs(), utl.IntRange(15))
	chk.Int(tst, "nip", len(e.Ips), 4)

	// curved beam: the length exceeds the chord
	chord := math.Sqrt(1 + 0.09 + 0.04)
	io.Pforan("L0 = %v  chord = %v\n", e.L0, chord)
	if e.L0 <= chord {
		tst.Errorf("reference length %g must be greater than the chord %g", e.L0, chord)
	}

	// no strains at the reference configuration
	sol := &ele.Solution{Y: make([]float64, neq), Steady: true}
	ε, K := e.Strains(sol)
	for i := range e.Ips {
		chk.Float64(tst, io.Sf("ε%d", i), 1e-14, ε[i], 0)
		chk.Array(tst, io.Sf("K%d", i), 1e-13, K[i][:], nil)
	}
	f, _, err := e.Forces(sol)
	require.NoError(tst, err)
	chk.Array(tst, "f(q=0)", 1e-13, f, nil)

	// triads at end nodes are aligned with reference tangents
	Q := e.Triads(sol)
	for m, t := range [][]float64{{1.0, 0.2, 0.1}, {0.8, 0.5, -0.2}} {
		g := rot.Vals(rot.G1(rot.ConstQuat[ad.Real](Q[m])))
		n := math.Sqrt(t[0]*t[0] + t[1]*t[1] + t[2]*t[2])
		chk.Array(tst, io.Sf("g1 @ node %d", m), 1e-14, g[:], []float64{t[0] / n, t[1] / n, t[2] / n})
	}

	// 2D: straight beam
	_, e2, info2, neq2 := kbeamSetup(tst, "data/kbeam2d.sim")
	chk.IntAssert(neq2, 8)
	chk.Strings(tst, "2D dofs: node 0", info2.Dofs[0], []string{"ux", "uy", "rz", "ut"})
	chk.IntAssert(len(info2.Dofs[2]), 0)
	chk.Ints(tst, "2D Umap", e2.Umap[:], []int{0, 1, -1, -1, -1, 2, 3, 4, 5, -1, -1, -1, 6, 7, -1})
	chk.Int(tst, "nip", len(e2.Ips), 5)
	chk.Float64(tst, "L0", 1e-14, e2.L0, 2)
	chk.Float64(tst, "Jmid", 1e-14, e2.Jmid, 1)
	for i := range e2.Ips {
		chk.Float64(tst, "J", 1e-14, e2.J[i], 1)
		chk.Array(tst, "K0", 1e-15, e2.K0[i][:], nil)
	}
}

func Test_kbeam02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kbeam02. flags given in the extra string")

	sim := inp.ReadSim("data/kbeam3d.sim", "", false, false)
	reg := sim.Regions[0]
	cell := reg.Msh.Cells[0]
	edat := reg.ElemsData[0]

	// differentiation path
	for extra, fad := range map[string]bool{"!fad:1": true, "!fad:0": false, "": false, "!ncp:3 !fad:1": true} {
		edat.Extra = extra
		e, err := ele.New(cell, reg, sim)
		require.NoError(tst, err)
		kb := e.(*KBeam)
		require.Equal(tst, fad, kb.Fad, "extra=%q", extra)
		chk.Int(tst, "ncp", kb.Ncp, 3)
	}

	// invalid number of collocation points
	for _, extra := range []string{"!ncp:5", "!fad:1 !ncp:4"} {
		edat.Extra = extra
		require.Panics(tst, func() { ele.New(cell, reg, sim) }, "extra=%q", extra)
	}
}

func Test_kbeam03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kbeam03. FAD and analytic paths")

	sim, e, _, _ := kbeamSetup(tst, "data/kbeam3d.sim")
	q := kbeamState15

	// with FAD on, the analytic routines are dummies
	e.Fad = true
	fa, Ka := e.analyticForces(q)
	require.Nil(tst, fa)
	require.Nil(tst, Ka)

	// statics with line loads
	e.Qfcn[1] = &dbf.Cte{C: 0.7}
	e.Qfcn[2] = &dbf.Cte{C: -0.3}
	e.setLoads(0)
	ff, Kf := e.fadEnergy(q)
	e.Fad = false
	fa, Ka = e.analyticForces(q)
	checkRelative(tst, "f: statics", 1e-10, [][]float64{fa}, [][]float64{ff})
	checkRelative(tst, "K: statics", 1e-10, Ka, Kf)

	// symmetry
	for i := 0; i < kbNdof; i++ {
		for j := i + 1; j < kbNdof; j++ {
			chk.Float64(tst, io.Sf("K[%d][%d]-K[%d][%d]", i, j, j, i), 1e-10, Ka[i][j], Ka[j][i])
		}
	}

	// dynamics
	dc := new(ele.DynCoefs)
	dc.Init(&sim.Solver)
	require.NoError(tst, dc.CalcBoth(0.05))
	sol := &ele.Solution{Y: make([]float64, kbNdof), Steady: false, DynCfs: dc}
	for i := range e.Ips {
		e.Vn[i] = [3]float64{0.1, -0.2, 0.05 * float64(i)}
		e.An[i] = [3]float64{0.3, 0.1, -0.1}
		e.Wn[i] = [3]float64{0.2, 0.02 * float64(i), -0.3}
		e.Bn[i] = [3]float64{-0.1, 0.2, 0.1}
	}
	require.NoError(tst, e.InterpStarVars(sol))
	require.True(tst, e.dyn)
	e.Fad = true
	ff, Kf = e.fadEnergy(q)
	e.Fad = false
	fa, Ka = e.analyticForces(q)
	checkRelative(tst, "f: dynamics", 1e-10, [][]float64{fa}, [][]float64{ff})
	checkRelative(tst, "K: dynamics", 1e-10, Ka, Kf)
}

func Test_kbeam04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kbeam04. stiffness versus finite differences")

	for _, fad := range []bool{true, false} {
		_, e, _, neq := kbeamSetup(tst, "data/kbeam3d.sim")
		e.Fad = fad
		e.Qfcn[0] = &dbf.Cte{C: 0.4}
		sol := &ele.Solution{Y: make([]float64, neq), Steady: true}
		copy(sol.Y, kbeamState15)
		_, K, err := e.Forces(sol)
		require.NoError(tst, err)
		Kana := utl.Alloc(kbNdof, kbNdof)
		for i := range K {
			copy(Kana[i], K[i])
		}

		// numerical Jacobian of internal forces
		x := make([]float64, neq)
		copy(x, kbeamState15)
		jac := mat.NewDense(neq, neq, nil)
		fd.Jacobian(jac, func(y, x []float64) {
			copy(sol.Y, x)
			f, _, err := e.Forces(sol)
			if err != nil {
				tst.Errorf("%v", err)
				return
			}
			copy(y, f)
		}, x, &fd.JacobianSettings{Formula: fd.Central})
		Knum := utl.Alloc(neq, neq)
		for i := 0; i < neq; i++ {
			for j := 0; j < neq; j++ {
				Knum[i][j] = jac.At(i, j)
			}
		}
		checkRelative(tst, io.Sf("K (fad=%v)", fad), 1e-6, Kana, Knum)
	}
}

func Test_kbeam05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kbeam05. distributed moments")

	_, e, _, neq := kbeamSetup(tst, "data/kbeam3d.sim")
	q := kbeamState15
	m := [3]float64{0.3, -0.5, 0.8}
	for i := 0; i < 3; i++ {
		e.Mfcn[i] = &dbf.Cte{C: m[i]}
	}
	f, Km := e.momentForces(q, 0)

	// virtual work with the virtual rotations of the triads at integration points
	k := kbeamKinematics(e, ad.Vars1(q), false, true)
	fdir := make([]float64, kbNdof)
	for i, ip := range e.Ips {
		Qv := rot.QuatVals(k.Q[i])
		for dof := 0; dof < kbNdof; dof++ {
			var dQ [4]float64
			for a := 0; a < 4; a++ {
				dQ[a] = d1deriv(k.Q[i][a], dof)
			}
			w := rot.Mul(dQ, rot.Conj(Qv))
			fdir[dof] += ip.W * e.J[i] * 2 * (m[0]*w[0] + m[1]*w[1] + m[2]*w[2])
		}
	}
	chk.Array(tst, "f(moments)", 1e-12, f, fdir)

	// load stiffness
	x := make([]float64, kbNdof)
	copy(x, q)
	jac := mat.NewDense(kbNdof, kbNdof, nil)
	fd.Jacobian(jac, func(y, x []float64) {
		fx, _ := e.momentForces(x, 0)
		copy(y, fx)
	}, x, &fd.JacobianSettings{Formula: fd.Central})
	checkRelative(tst, "Km", 1e-7, Km, denseRows(jac))
	nonsym := 0.0
	for i := 0; i < kbNdof; i++ {
		for j := 0; j < kbNdof; j++ {
			nonsym = math.Max(nonsym, math.Abs(Km[i][j]-Km[j][i]))
		}
	}
	io.Pforan("max|Km - Kmᵀ| = %v\n", nonsym)

	// assembled Jacobian equals the derivative of the residual
	sol := &ele.Solution{Y: make([]float64, neq), Steady: true}
	copy(sol.Y, q)
	Kb := sparse.NewCOO(neq, neq, nil, nil, nil)
	require.NoError(tst, e.AddToKb(Kb, sol, true))
	fd.Jacobian(jac, func(y, x []float64) {
		copy(sol.Y, x)
		fb := make([]float64, neq)
		if err := e.AddToRhs(fb, sol); err != nil {
			tst.Errorf("%v", err)
		}
		for i := range y {
			y[i] = -fb[i]
		}
	}, x, &fd.JacobianSettings{Formula: fd.Central})
	checkRelative(tst, "dR/dq", 1e-6, denseRows(Kb.ToDense()), denseRows(jac))

	// no moments
	e.Mfcn = [3]dbf.T{}
	f, Km = e.momentForces(q, 0)
	require.Nil(tst, f)
	require.Nil(tst, Km)
}

func Test_kbeam06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kbeam06. rigid body motions and commit")

	// 2D: rigid rotation about z
	_, e, _, neq := kbeamSetup(tst, "data/kbeam2d.sim")
	β := 0.7
	c, s := math.Cos(β), math.Sin(β)
	sol := &ele.Solution{Y: make([]float64, neq), Steady: true}
	sol.Y = []float64{0, 0, β, 0, 2*c - 2, 2 * s, β, 0}
	for _, fad := range []bool{true, false} {
		e.Fad = fad
		e.cacheQ = nil
		f, _, err := e.Forces(sol)
		require.NoError(tst, err)
		chk.Array(tst, io.Sf("f(rigid rotation) fad=%v", fad), 1e-12, f, nil)
	}

	// 3D: rigid translation
	_, e3, _, neq3 := kbeamSetup(tst, "data/kbeam3d.sim")
	sol3 := &ele.Solution{Y: make([]float64, neq3), Steady: true}
	copy(sol3.Y[0:3], []float64{0.5, -0.2, 0.3})
	copy(sol3.Y[7:10], []float64{0.5, -0.2, 0.3})
	f, _, err := e3.Forces(sol3)
	require.NoError(tst, err)
	chk.Array(tst, "f(rigid translation)", 1e-12, f, nil)

	// commit: the middle triad of the committed state becomes the reference of the smallest rotation
	copy(sol3.Y, kbeamState15)
	Qold := e3.Triads(sol3)
	εold, Kold := e3.Strains(sol3)
	Qc3old := e3.Qc3
	require.NoError(tst, e3.Commit(sol3))
	chk.Float64(tst, "Ac", 1e-15, e3.Ac, kbeamState15[kbIalpha])
	chk.Array(tst, "Qc3", 1e-15, e3.Qc3[:], Qold[kbIref][:])
	if Qc3old == e3.Qc3 {
		tst.Errorf("triad of middle collocation point must have been updated")
	}

	// the first base vector of the committed triad is the tangent at the middle collocation point
	k := kbeamKinematics(e3, ad.Reals(kbeamState15), false, false)
	g := rot.Vals(rot.G1(rot.ConstQuat[ad.Real](e3.Qc3)))
	tan := rot.Vals(k.E)
	chk.Array(tst, "g1(Qc3)", 1e-14, g[:], tan[:])

	// the committed configuration is unchanged
	Qnew := e3.Triads(sol3)
	for i := range Qnew {
		chk.Array(tst, io.Sf("Q%d after commit", i), 1e-14, Qnew[i][:], Qold[i][:])
	}
	εnew, Knew := e3.Strains(sol3)
	chk.Array(tst, "ε after commit", 1e-14, εnew, εold)
	for i := range Knew {
		chk.Array(tst, io.Sf("K%d after commit", i), 1e-13, Knew[i][:], Kold[i][:])
	}

	// a twist increment from the committed state rotates the middle triad about its tangent
	Δα := 0.3
	sol3.Y[kbIalpha] += Δα
	Q3 := e3.Triads(sol3)[kbIref]
	Qtw := rot.Mul(e3.Qc3, rot.QuatOf([3]float64{Δα, 0, 0}))
	chk.Array(tst, "Q3(twist)", 1e-14, Q3[:], Qtw[:])
	for m := 0; m < 2; m++ {
		chk.Array(tst, io.Sf("Q%d(twist)", m), 1e-15, e3.Triads(sol3)[m][:], Qold[m][:])
	}
}

func Test_kbeam07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("kbeam07. closed-form derivatives of kinematic maps")

	zero := []float64{0, 0, 0}
	θ := func(q []float64) *kbVar { return kbDofs(q, zero, 0, 1, 2) }
	v := func(q []float64) *kbVar { return kbDofs(q, []float64{1, 0.2, -0.1}, 3, 4, 5) }
	maps := map[string]func(q []float64) *kbVar{
		"exp":       func(q []float64) *kbVar { return kbQuatExp(θ(q)) },
		"log":       func(q []float64) *kbVar { return kbQuatLog(kbQuatMul(kbQuatExp(θ(q)), kbQuatExp(v(q)))) },
		"g1":        func(q []float64) *kbVar { return kbG1(kbQuatExp(θ(q))) },
		"axisangle": func(q []float64) *kbVar { return kbAxisAngleX(kbDofs(q, []float64{0.1}, 6)) },
		"jr":        func(q []float64) *kbVar { return kbJrTimes(θ(q), v(q)) },
		"normalize": func(q []float64) *kbVar {
			e, n := kbNormalize(v(q))
			return kbCat(e, n)
		},
		"smallest rotation": func(q []float64) *kbVar {
			e, _ := kbNormalize(v(q))
			return kbSmallestRotation(kbQuatExp(θ(q)), e)
		},
	}
	x := []float64{0.3, -0.4, 0.5, 0.2, -0.1, 0.25, 0.6, 0, 0, 0, 0, 0, 0, 0, 0}
	for name, F := range maps {
		y := F(x)
		for i := range y.V {
			grad := make([]float64, kbNdof)
			fd.Gradient(grad, func(x []float64) float64 { return F(x).V[i] }, x, &fd.Settings{Formula: fd.Central})
			chk.Array(tst, io.Sf("%s: B%d", name, i), 1e-9, y.G[i][:], grad)
			jac := mat.NewDense(kbNdof, kbNdof, nil)
			fd.Jacobian(jac, func(g, x []float64) {
				gx := F(x).G[i]
				copy(g, gx[:])
			}, x, &fd.JacobianSettings{Formula: fd.Central})
			H := make([][]float64, kbNdof)
			for a := range H {
				H[a] = y.H[i][a][:]
			}
			chk.Deep2(tst, io.Sf("%s: G%d", name, i), 1e-8, H, denseRows(jac))
		}
	}

	// small angles use series
	y := kbQuatExp(kbDofs(make([]float64, kbNdof), []float64{1e-9, 0, 0}, 0, 1, 2))
	chk.Array(tst, "exp(0)", 1e-15, y.V, []float64{5e-10, 0, 0, 1})
	chk.Array(tst, "B(exp(0))", 1e-15, y.G[0][:3], []float64{0.5, 0, 0})
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// denseRows returns the rows of a dense matrix
func denseRows(a mat.Matrix) (rows [][]float64) {
	m, n := a.Dims()
	rows = utl.Alloc(m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			rows[i][j] = a.At(i, j)
		}
	}
	return
}
