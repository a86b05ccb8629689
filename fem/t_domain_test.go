// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func Test_domain01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain01. equations and constraints of kbeam cantilever")

	main := NewMain("data/cantilever.sim", "", true, false, false, false)
	require.NoError(tst, main.SetStage(0))
	dom := main.Domains[0]

	// 2D kbeams: {ux, uy, rz, ut} at end nodes and nothing at middle nodes
	chk.Int(tst, "Ny", dom.Ny, 12)
	chk.Int(tst, "Nlam", dom.Nlam, 4)
	chk.Int(tst, "Nyb", dom.Nyb, 16)
	chk.Int(tst, "nnodes", len(dom.Nodes), 3)
	require.Nil(tst, dom.Vid2node[2])
	require.Nil(tst, dom.Vid2node[4])
	chk.Ints(tst, "eqs(tip)", []int{dom.Vid2node[3].GetEq("ux"), dom.Vid2node[3].GetEq("rz"), dom.Vid2node[3].GetEq("ut")}, []int{8, 10, 11})
	chk.Ints(tst, "cell 1 eqs", dom.Elems[1].GetEqs(), []int{4, 5, 6, 7, 8, 9, 10, 11})
	chk.Int(tst, "nelems", len(dom.Elems), 2)
	chk.Int(tst, "ncommit", len(dom.ElemCommit), 2)
	chk.Int(tst, "ncontacts", len(dom.Contacts), 0)
	require.True(tst, dom.YandC["rz"])
	require.False(tst, dom.YandC["mz"])
	chk.String(tst, dom.F2Y["mz"], "rz")

	// constraints: clamped end (uz, rx and ry are skipped in 2D) and tip rotation
	eqs := make([]int, len(dom.EssenBcs.Bcs))
	for i, bc := range dom.EssenBcs.Bcs {
		eqs[i] = bc.Eqs[0]
	}
	chk.Ints(tst, "constrained eqs", eqs, []int{0, 1, 2, 10})

	// initial residual: only the prescribed rotation is violated
	require.NoError(tst, main.ZeroStage(0, true))
	dom.Sol.T = 0.5
	require.NoError(tst, dom.AssembleRhs())
	chk.Array(tst, "fb", 1e-15, dom.Fb[:dom.Ny], nil)
	chk.Array(tst, "c - A⋅y", 1e-15, dom.Fb[dom.Ny:], []float64{0, 0, 0, math.Pi / 4})

	// Jacobian is symmetric
	Kb, err := dom.AssembleKb(true)
	require.NoError(tst, err)
	K := Kb.ToDense()
	require.True(tst, mat.EqualApprox(K, K.T(), 1e-12))
	chk.Float64(tst, "K[ny+3, rz]", 1e-15, K.At(dom.Ny+3, 10), 1)
}

func Test_domain02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain02. backup, restore and file io")

	main := NewMain("data/cantilever.sim", "", true, false, false, false)
	require.NoError(tst, main.SetStage(0))
	require.NoError(tst, main.ZeroStage(0, true))
	dom := main.Domains[0]

	// backup and restore
	for i := range dom.Sol.Y {
		dom.Sol.Y[i] = float64(i) / 10
	}
	dom.Sol.L[3] = 1.5
	dom.Sol.T = 0.3
	require.NoError(tst, dom.backup())
	Y := append([]float64{}, dom.Sol.Y...)
	for i := range dom.Sol.Y {
		dom.Sol.Y[i] = -1
	}
	dom.Sol.L[3] = 0
	dom.Sol.T = 0.4
	require.NoError(tst, dom.restore())
	chk.Array(tst, "Y(restored)", 1e-15, dom.Sol.Y, Y)
	chk.Float64(tst, "λ(restored)", 1e-15, dom.Sol.L[3], 1.5)
	chk.Float64(tst, "t(restored)", 1e-15, dom.Sol.T, 0.3)

	// save and read
	sum := main.Summary
	require.NoError(tst, sum.SaveDomains(dom.Sol.T, main.Domains, false))
	require.NoError(tst, sum.Save())
	for i := range dom.Sol.Y {
		dom.Sol.Y[i] = 0
	}
	var sum2 Summary
	require.NoError(tst, sum2.Read(main.Sim.DirOut, main.Sim.Key, main.Sim.EncType))
	chk.String(tst, sum2.RunId, sum.RunId)
	chk.Array(tst, "OutTimes", 1e-15, sum2.OutTimes, []float64{0.3})
	require.NoError(tst, dom.Read(&sum2, 0))
	chk.Array(tst, "Y(read)", 1e-15, dom.Sol.Y, Y)
	chk.Float64(tst, "λ(read)", 1e-15, dom.Sol.L[3], 1.5)

	// residuals
	sum.AppendResid(true, 1)
	sum.AppendResid(false, 0.1)
	sum.AppendResid(true, 2)
	io.Pforan("resids = %v\n", sum.Resids)
	chk.Array(tst, "resids", 1e-15, sum.AllResids(), []float64{1, 0.1, 2})
	chk.Int(tst, "nsteps", len(sum.Resids), 2)
}

func Test_domain03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain03. linear solver and rms error")

	K := mat.NewDense(2, 2, []float64{4, 1, 1, 3})
	x, err := linSolve(K, []float64{1, 2})
	require.NoError(tst, err)
	chk.Array(tst, "x", 1e-15, x, []float64{1.0 / 11, 7.0 / 11})

	_, err = linSolve(mat.NewDense(2, 2, []float64{1, 1, 1, 1}), []float64{1, 2})
	require.Error(tst, err)

	chk.Float64(tst, "rms", 1e-15, rmsErr([]float64{1, 1}, 1, 0, []float64{5, 5}), 1)
	chk.Float64(tst, "rms(rel)", 1e-15, rmsErr([]float64{3, 0}, 1, 1, []float64{2, 0}), math.Sqrt(0.5))
	chk.Float64(tst, "rms(empty)", 1e-15, rmsErr(nil, 1, 1, nil), 0)
}
