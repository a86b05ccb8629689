// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/fun/dbf"

// NaturalBc holds information on natural boundary conditions such as distributed loads or
// moments acting along beams
type NaturalBc struct {
	Key   string // key such as qx, qy, qz, mx, my, mz
	Fcn   dbf.T  // function callback
	Extra string // extra information
}
