// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tests implements structures and functions to test elements and FE simulations
package tests

import (
	"github.com/cpmech/beamcontact/fem"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

// Verbose turns messages on
func Verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// GetNidsEqs returns the ids of active nodes and all their equations
func GetNidsEqs(dom *fem.Domain) (nids, eqs []int) {
	for _, nod := range dom.Nodes {
		nids = append(nids, nod.Vert.Id)
		for _, dof := range nod.Dofs {
			eqs = append(eqs, dof.Eq)
		}
	}
	return
}

// NodeVal returns the value of DOF key at vertex vid
func NodeVal(dom *fem.Domain, vid int, key string) float64 {
	nod := dom.Vid2node[vid]
	if nod == nil {
		chk.Panic("vertex %d is not active", vid)
	}
	eq := nod.GetEq(key)
	if eq < 0 {
		chk.Panic("vertex %d does not have DOF %q", vid, key)
	}
	return dom.Sol.Y[eq]
}

// Reaction returns the reaction corresponding to the single-point constraint on DOF key at vertex
// vid; i.e. -λ
func Reaction(dom *fem.Domain, vid int, key string) float64 {
	eq := dom.Vid2node[vid].GetEq(key)
	for i, bc := range dom.EssenBcs.Bcs {
		if len(bc.Eqs) == 1 && bc.Eqs[0] == eq {
			return -dom.Sol.L[i]
		}
	}
	chk.Panic("cannot find constraint on %q at vertex %d", key, vid)
	return 0
}
