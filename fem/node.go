// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/beamcontact/inp"
	"github.com/cpmech/gosl/io"
)

// Dof holds information about a degree-of-freedom == solution variable
type Dof struct {
	Key string // primary variable key. e.g. "ux" or "rz"
	Eq  int    // equation number
}

// Node holds node dofs information
type Node struct {
	Dofs []*Dof    // degrees-of-freedom == solution variables
	Vert *inp.Vert // pointer to Vertex
}

// NewNode allocates a new Node
func NewNode(v *inp.Vert) *Node {
	return &Node{Vert: v}
}

// AddDofAndEq adds a new dof and respective equation number if the key does not exist yet.
// It returns the next equation number
func (o *Node) AddDofAndEq(key string, eqnum int) (nexteq int) {
	if o.GetDof(key) != nil {
		return eqnum
	}
	o.Dofs = append(o.Dofs, &Dof{key, eqnum})
	return eqnum + 1
}

// GetDof returns the Dof structure for given Dof name (ukey)
//
//	Note: returns nil if not found
func (o *Node) GetDof(ukey string) *Dof {
	for _, dof := range o.Dofs {
		if dof.Key == ukey {
			return dof
		}
	}
	return nil
}

// GetEq returns the equation number for given Dof name (ukey)
//
//	Note: returns -1 if not found
func (o *Node) GetEq(ukey string) (eq int) {
	if d := o.GetDof(ukey); d != nil {
		return d.Eq
	}
	return -1
}

// String returns the string representation of this node
func (o *Node) String() (l string) {
	l = io.Sf("{\"vid\":%d, \"dofs\":[", o.Vert.Id)
	for i, dof := range o.Dofs {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("{\"key\":%q, \"eq\":%d}", dof.Key, dof.Eq)
	}
	l += "]}"
	return
}
