// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"strings"
	"testing"

	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/beamcontact/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/james-bowman/sparse"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

// newTestNode returns a node with sequential equations starting at eq0
func newTestNode(id int, x []float64, eq0 int, keys ...string) *Node {
	n := NewNode(&inp.Vert{Id: id, C: x})
	for _, key := range keys {
		eq0 = n.AddDofAndEq(key, eq0)
	}
	return n
}

func Test_bcs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs01. nodes and essential boundary conditions")

	n0 := newTestNode(0, []float64{0, 0}, 0, "ux", "uy", "rz")
	n1 := newTestNode(1, []float64{1, 0}, 3, "ux", "uy", "rz", "ux")
	chk.Int(tst, "neq(n1)", len(n1.Dofs), 3)
	chk.Int(tst, "eq(n1.rz)", n1.GetEq("rz"), 5)
	chk.Int(tst, "eq(n1.ra)", n1.GetEq("ra"), -1)
	require.Nil(tst, n1.GetDof("ra"))
	io.Pforan("n1 = %v\n", n1)
	chk.String(tst, n0.String(), `{"vid":0, "dofs":[{"key":"ux", "eq":0}, {"key":"uy", "eq":1}, {"key":"rz", "eq":2}]}`)

	// constraints
	var ebcs EssentialBcs
	ebcs.Init()
	require.NoError(tst, ebcs.Set("incsup", []*Node{n1}, nil, "!alp:30"))
	require.NoError(tst, ebcs.Set("uy", []*Node{n0}, &dbf.Cte{C: 0.3}, ""))
	require.NoError(tst, ebcs.Set("ux", []*Node{n0}, &dbf.Cte{C: 0.5}, ""))
	require.NoError(tst, ebcs.Set("ux", []*Node{n0}, &dbf.Cte{C: 0.1}, "")) // replaces previous
	require.NoError(tst, ebcs.Set("ra", []*Node{n0}, &dbf.Cte{C: 0.1}, "")) // skipped
	nλ, nnzA := ebcs.Build(6)
	chk.Int(tst, "nλ", nλ, 3)
	chk.Int(tst, "nnzA", nnzA, 4)
	chk.String(tst, ebcs.Bcs[0].Key, "ux")
	chk.String(tst, ebcs.Bcs[1].Key, "uy")
	chk.String(tst, ebcs.Bcs[2].Key, "incsup")
	require.True(tst, strings.Contains(ebcs.List(1), "incsup"))

	// residual
	co, si := math.Cos(math.Pi/6), math.Sin(math.Pi/6)
	sol := &ele.Solution{Y: []float64{0.2, 0, 0, 1, 2, 0}, L: []float64{1, 2, 3}}
	fb := make([]float64, 9)
	ebcs.AddToRhs(fb, sol)
	chk.Array(tst, "fb", 1e-15, fb, []float64{-1, -2, 0, -3 * co, -3 * si, 0, -0.1, 0.3, -(co + 2*si)})

	// Jacobian
	Kb := sparse.NewCOO(9, 9, nil, nil, nil)
	ebcs.AddToKb(Kb, 6)
	K := Kb.ToDense()
	chk.Float64(tst, "A[0,0]", 1e-15, K.At(6, 0), 1)
	chk.Float64(tst, "At[0,0]", 1e-15, K.At(0, 6), 1)
	chk.Float64(tst, "A[2,3]", 1e-15, K.At(8, 3), co)
	chk.Float64(tst, "A[2,4]", 1e-15, K.At(8, 4), si)
	chk.Float64(tst, "At[4,2]", 1e-15, K.At(4, 8), si)
	chk.Float64(tst, "K[0,0]", 1e-15, K.At(0, 0), 0)

	// rigid connection
	ebcs.Init()
	require.NoError(tst, ebcs.Set("rigid", []*Node{n0, n1}, nil, ""))
	nλ, nnzA = ebcs.Build(6)
	chk.Int(tst, "nλ(rigid)", nλ, 3)
	chk.Int(tst, "nnzA(rigid)", nnzA, 6)
	chk.Ints(tst, "eqs(rigid)", ebcs.Bcs[2].Eqs, []int{2, 5})
	chk.Array(tst, "A(rigid)", 1e-15, ebcs.Bcs[2].ValsA, []float64{1, -1})

	// inclined support in 3D
	n3 := newTestNode(3, []float64{1, 0, 1}, 0, "ux", "uy", "uz")
	require.Error(tst, ebcs.Set("incsup", []*Node{n3}, nil, ""))
}

func Test_bcs02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs02. point loads and point moments")

	// 2D kbeam node: moments are applied directly to rz
	n2d := newTestNode(0, []float64{0, 0}, 0, "ux", "uy", "rz", "ut")
	var pbcs PtNaturalBcs
	pbcs.Reset()
	pbcs.Set("fy", "uy", n2d, &dbf.Cte{C: -2}, "")
	pbcs.Set("mz", "rz", n2d, &dbf.Cte{C: 3}, "")
	pbcs.Set("fz", "", n2d, &dbf.Cte{C: 1}, "")
	pbcs.Set("fy", "uy", n2d, &dbf.Cte{C: -4}, "")
	chk.Int(tst, "nbcs", len(pbcs.Bcs), 2)
	chk.Int(tst, "nmoments", len(pbcs.Moments), 0)
	fb := make([]float64, 4)
	pbcs.AddToRhs(fb, 0, make([]float64, 4))
	chk.Array(tst, "fb(2D)", 1e-15, fb, []float64{0, -4, 3, 0})

	// 3D kbeam node: moments depend on the rotation vector
	n3d := newTestNode(0, []float64{0, 0, 0}, 0, "ux", "uy", "uz", "rx", "ry", "rz", "ut")
	pbcs.Reset()
	m := []float64{0.4, -1.2, 0.7}
	for i, key := range []string{"mx", "my", "mz"} {
		pbcs.Set(key, "r"+key[1:], n3d, &dbf.Cte{C: m[i]}, "")
	}
	chk.Int(tst, "nmoments", len(pbcs.Moments), 1)
	pm := pbcs.Moments[0]
	chk.Ints(tst, "eqs(moment)", pm.Eqs[:], []int{3, 4, 5})

	// no rotation
	Y := make([]float64, 7)
	fb = make([]float64, 7)
	pbcs.AddToRhs(fb, 0, Y)
	chk.Array(tst, "fb(θ=0)", 1e-15, fb, []float64{0, 0, 0, m[0], m[1], m[2], 0})

	// tangent versus finite differences
	θ := []float64{0.3, -0.2, 0.5}
	copy(Y[3:6], θ)
	dfdθ := pm.Tangent(0, Y)
	jac := mat.NewDense(3, 3, nil)
	fd.Jacobian(jac, func(f, x []float64) {
		y := make([]float64, 7)
		copy(y[3:6], x)
		r := pm.Forces(0, y)
		copy(f, r[:])
	}, θ, &fd.JacobianSettings{Formula: fd.Central})
	for i := 0; i < 3; i++ {
		chk.Array(tst, io.Sf("df%d/dθ", i), 1e-9, dfdθ[i][:], mat.Row(nil, i, jac))
	}

	// stiffness
	Kb := sparse.NewCOO(7, 7, nil, nil, nil)
	pbcs.AddToKb(Kb, 0, Y)
	K := Kb.ToDense()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			chk.Float64(tst, io.Sf("K[%d,%d]", i, j), 1e-15, K.At(3+i, 3+j), -dfdθ[i][j])
		}
	}
}
