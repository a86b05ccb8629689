// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"strings"

	"github.com/cpmech/beamcontact/inp"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/james-bowman/sparse"
)

// BuildCoordsMatrix returns the coordinate matrix of a particular Cell
func BuildCoordsMatrix(cell *inp.Cell, msh *inp.Mesh) (x [][]float64) {
	x = utl.Alloc(msh.Ndim, len(cell.Verts))
	for i := 0; i < msh.Ndim; i++ {
		for j, v := range cell.Verts {
			x[i][j] = msh.Verts[v].C[i]
		}
	}
	return
}

// FlagInt returns the integer value of a keycode in the extra string or the default value.
// The key is given without "!"; e.g. FlagInt("!nsta:7", "nsta", 11) returns 7
func FlagInt(extra, key string, dflt int) int {
	if val, found := io.Keycode(extra, strings.TrimPrefix(key, "!")); found {
		return io.Atoi(val)
	}
	return dflt
}

// FlagBool returns the boolean value of a keycode in the extra string or the default value
func FlagBool(extra, key string, dflt bool) bool {
	if val, found := io.Keycode(extra, strings.TrimPrefix(key, "!")); found {
		return io.Atob(val)
	}
	return dflt
}

// AddToKbMat adds a dense element matrix into the global Jacobian using the local to global map
func AddToKbMat(Kb *sparse.COO, umap []int, K [][]float64) {
	for i, I := range umap {
		for j, J := range umap {
			if K[i][j] != 0 {
				Kb.Set(I, J, K[i][j])
			}
		}
	}
}
