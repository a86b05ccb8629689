// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"math"

	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Solver implements the actual solver (time loop)
type Solver interface {
	Run(tf float64, dtFunc, dtoFunc dbf.T, verbose bool) (err error)
}

// allocators holds all available solvers
var allocators = make(map[string]func(doms []*Domain, sum *Summary, dc *ele.DynCoefs) Solver)

// linSolve solves K⋅x = b using the LU decomposition. Ill-conditioned systems are accepted as
// long as the condition number is finite
func linSolve(K *mat.Dense, b []float64) (x []float64, err error) {
	var lu mat.LU
	lu.Factorize(K)
	var y mat.VecDense
	err = lu.SolveVecTo(&y, false, mat.NewVecDense(len(b), b))
	if err != nil {
		var c mat.Condition
		if !errors.As(err, &c) || math.IsInf(float64(c), 0) {
			return nil, chk.Err("linear solver failed: %v", err)
		}
	}
	return y.RawVector().Data, nil
}

// rmsErr returns the root-mean-square of the scaled vector δy[i] / (atol + rtol |y[i]|)
func rmsErr(δy []float64, atol, rtol float64, y []float64) float64 {
	if len(δy) == 0 {
		return 0
	}
	s := make([]float64, len(δy))
	for i := range δy {
		s[i] = δy[i] / (atol + rtol*math.Abs(y[i]))
	}
	return floats.Norm(s, 2) / math.Sqrt(float64(len(s)))
}
