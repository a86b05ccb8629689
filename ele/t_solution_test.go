// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_solution01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solution01. allocation, copy and reset")

	sol := NewSolution(3, 2, false, false, nil)
	chk.Int(tst, "len(Y)", len(sol.Y), 3)
	chk.Int(tst, "len(L)", len(sol.L), 2)
	chk.Int(tst, "len(Chi)", len(sol.Chi), 3)

	sol.T, sol.Dt = 0.5, 0.1
	copy(sol.Y, []float64{1, 2, 3})
	copy(sol.ΔY, []float64{0.1, 0.2, 0.3})
	copy(sol.L, []float64{-1, -2})
	copy(sol.Dydt, []float64{4, 5, 6})

	// copy into empty solution
	var bkp Solution
	bkp.CopyFrom(sol)
	chk.Float64(tst, "t", 1e-15, bkp.T, 0.5)
	chk.Array(tst, "Y", 1e-15, bkp.Y, []float64{1, 2, 3})
	chk.Array(tst, "L", 1e-15, bkp.L, []float64{-1, -2})
	chk.Array(tst, "dydt", 1e-15, bkp.Dydt, []float64{4, 5, 6})

	// copy back in place
	Y := sol.Y
	sol.Reset(false)
	chk.Array(tst, "Y(reset)", 1e-15, sol.Y, []float64{0, 0, 0})
	chk.Array(tst, "dydt(reset)", 1e-15, sol.Dydt, []float64{0, 0, 0})
	chk.Float64(tst, "t(reset)", 1e-15, sol.T, 0)
	sol.CopyFrom(&bkp)
	chk.Array(tst, "Y(restored)", 1e-15, Y, []float64{1, 2, 3})
	chk.Array(tst, "ΔY(restored)", 1e-15, sol.ΔY, []float64{0.1, 0.2, 0.3})
	chk.Float64(tst, "dt(restored)", 1e-15, sol.Dt, 0.1)
}
