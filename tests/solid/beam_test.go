// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"
	"testing"

	"github.com/cpmech/beamcontact/ana"
	"github.com/cpmech/beamcontact/ele/solid"
	"github.com/cpmech/beamcontact/fem"
	"github.com/cpmech/beamcontact/tests"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func Test_beam01(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("beam01. simply supported beam with distributed load")

	// run
	main := fem.NewMain("data/beam01.sim", "", true, false, false, chk.Verbose)
	require.NoError(tst, main.Run())

	// dofs
	dom := main.Domains[0]
	chk.Int(tst, "nnodes", len(dom.Nodes), 2)
	chk.Int(tst, "nelems", len(dom.Elems), 1)
	nids, eqs := tests.GetNidsEqs(dom)
	chk.Ints(tst, "nids", nids, []int{0, 1})
	chk.Ints(tst, "eqs", eqs, []int{0, 1, 2, 3, 4, 5})

	// reactions: qL/2 at each support
	chk.Float64(tst, "Ry(0)", 1e-12, math.Abs(tests.Reaction(dom, 0, "uy")), 7.5)
	chk.Float64(tst, "Ry(1)", 1e-12, math.Abs(tests.Reaction(dom, 1, "uy")), 7.5)
	chk.Float64(tst, "Rx(0)", 1e-12, tests.Reaction(dom, 0, "ux"), 0)

	// end rotations: q L³ / (24 EI)
	θ := 15.0 / 24.0
	chk.Float64(tst, "rz(0)", 1e-12, math.Abs(tests.NodeVal(dom, 0, "rz")), θ)
	chk.Float64(tst, "rz(1)", 1e-12, math.Abs(tests.NodeVal(dom, 1, "rz")), θ)

	// bending moment
	beam := dom.Elems[0].(*solid.Beam)
	r := beam.Resultants(dom.Sol, 0.5)
	io.Pforan("M(centre) = %v\n", r.M3)
	chk.Float64(tst, "M(centre)", 1e-12, math.Abs(r.M3), 15.0/8.0)
	chk.Float64(tst, "V(centre)", 1e-12, r.V1, 0)
	chk.Float64(tst, "M(left)", 1e-12, beam.Resultants(dom.Sol, 0).M3, 0)
	chk.Float64(tst, "M(right)", 1e-12, beam.Resultants(dom.Sol, 1).M3, 0)

	// diagram: parabola
	X, M := beam.Diagram(dom.Sol)
	chk.Int(tst, "nstations", len(M), 11)
	for i, x := range X {
		chk.Float64(tst, io.Sf("M(x=%.1f)", x[0]), 1e-12, math.Abs(M[i]), 15*x[0]*(1-x[0])/2)
	}
}

func Test_beam02(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("beam02. cantilever with tip load")

	// run
	main := fem.NewMain("data/beam02.sim", "", true, false, false, chk.Verbose)
	require.NoError(tst, main.Run())
	dom := main.Domains[0]

	// tip
	P := -1e-3
	δ, φ := ana.CantileverTipLoad(1, 1, P)
	io.Pforan("δ = %v  φ = %v\n", δ, φ)
	chk.Float64(tst, "uy(tip)", 1e-15, tests.NodeVal(dom, 2, "uy"), δ)
	chk.Float64(tst, "rz(tip)", 1e-15, tests.NodeVal(dom, 2, "rz"), φ)
	chk.Float64(tst, "ux(tip)", 1e-15, tests.NodeVal(dom, 2, "ux"), 0)

	// middle node: P x² (3L - x) / (6 EI)
	chk.Float64(tst, "uy(mid)", 1e-15, tests.NodeVal(dom, 1, "uy"), P*0.25*2.5/6)

	// clamp reactions
	chk.Float64(tst, "Ry", 1e-15, tests.Reaction(dom, 0, "uy"), -P)
	chk.Float64(tst, "Mz", 1e-15, tests.Reaction(dom, 0, "rz"), -P)
}
