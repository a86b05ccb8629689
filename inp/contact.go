// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// PostProcess sets default values and resolves vertex tags into ordered lists of vertices
func (o *ContactData) PostProcess(regions []*Region) (err error) {

	// region
	if o.Region < 0 || o.Region >= len(regions) {
		return chk.Err("region index %d is out of range", o.Region)
	}
	msh := regions[o.Region].Msh

	// vertices
	if len(o.Slave) == 0 {
		o.Slave, err = orderedVertsByTag(msh, o.SlaveTag)
		if err != nil {
			return
		}
	}
	if len(o.Master) == 0 {
		o.Master, err = orderedVertsByTag(msh, o.MasterTag)
		if err != nil {
			return
		}
	}
	if len(o.Slave) < 2 || len(o.Master) < 2 {
		return chk.Err("slave and master polylines need at least 2 vertices each. nslave=%d, nmaster=%d", len(o.Slave), len(o.Master))
	}
	for _, vid := range append(append([]int{}, o.Slave...), o.Master...) {
		if vid < 0 || vid >= len(msh.Verts) {
			return chk.Err("vertex id %d is out of range", vid)
		}
	}

	// defaults
	if o.Mode == "" {
		o.Mode = "condensed"
	}
	if o.Shape == "" {
		o.Shape = "dual"
	}
	if o.Friction == "" {
		o.Friction = "none"
	}
	if o.Cn <= 0 {
		o.Cn = 1.0
	}
	if o.Ct <= 0 {
		o.Ct = 1.0
	}
	if o.MaxActive < 1 {
		o.MaxActive = 20
	}
	if o.Nip < 1 {
		o.Nip = 5
	}

	// check
	switch o.Mode {
	case "condensed", "saddle":
	default:
		return chk.Err("contact mode %q is invalid; options are \"condensed\" and \"saddle\"", o.Mode)
	}
	switch o.Shape {
	case "dual", "std":
	default:
		return chk.Err("contact shape %q is invalid; options are \"dual\" and \"std\"", o.Shape)
	}
	switch o.Friction {
	case "none", "tresca", "coulomb":
	default:
		return chk.Err("friction law %q is invalid; options are \"none\", \"tresca\" and \"coulomb\"", o.Friction)
	}
	return
}

// ShapeName returns the name of the shape functions of Lagrange multipliers
func (o *ContactData) ShapeName() string {
	if o.Shape == "dual" {
		return "lin2dual"
	}
	return "lin2"
}

// orderedVertsByTag returns the ids of vertices with given tag sorted along the direction of
// largest extent
func orderedVertsByTag(msh *Mesh, tag int) (vids []int, err error) {
	verts, ok := msh.VertTag2verts[tag]
	if !ok {
		return nil, chk.Err("cannot find vertices with tag = %d", tag)
	}
	xmin, xmax := verts[0].C[0], verts[0].C[0]
	ymin, ymax := verts[0].C[1], verts[0].C[1]
	for _, v := range verts {
		xmin, xmax = min(xmin, v.C[0]), max(xmax, v.C[0])
		ymin, ymax = min(ymin, v.C[1]), max(ymax, v.C[1])
	}
	dir := 0
	if ymax-ymin > xmax-xmin {
		dir = 1
	}
	sorted := append([]*Vert{}, verts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].C[dir] < sorted[j].C[dir] })
	for _, v := range sorted {
		vids = append(vids, v.Id)
	}
	return
}
