// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"
	"testing"

	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/beamcontact/fem"
	"github.com/cpmech/beamcontact/tests"
	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/require"
)

func Test_rod01(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("rod01. two-bar truss")

	// run
	main := fem.NewMain("data/truss.sim", "", true, false, false, chk.Verbose)
	require.NoError(tst, main.Run())
	dom := main.Domains[0]
	chk.Int(tst, "nintvars", len(dom.ElemIntvars), 2)

	// apex: δ = P L / (2 EA sin²α)
	P, L := 0.1, math.Sqrt2
	chk.Float64(tst, "ux(apex)", 1e-15, tests.NodeVal(dom, 2, "ux"), 0)
	chk.Float64(tst, "uy(apex)", 1e-14, tests.NodeVal(dom, 2, "uy"), -P*L)

	// reactions
	for _, vid := range []int{0, 1} {
		chk.Float64(tst, "Ry", 1e-14, tests.Reaction(dom, vid, "uy"), P/2)
	}
	chk.Float64(tst, "Rx(0)+Rx(1)", 1e-14, tests.Reaction(dom, 0, "ux")+tests.Reaction(dom, 1, "ux"), 0)

	// axial forces
	for _, e := range dom.ElemOutIps {
		M := ele.NewIpsMap()
		e.OutIpVals(M, dom.Sol)
		chk.Float64(tst, "N", 1e-14, M.Get("N", 0), -P/math.Sqrt2)
	}
}
