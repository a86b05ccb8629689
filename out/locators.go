// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"
	"sort"

	"github.com/cpmech/beamcontact/ele"
	"github.com/cpmech/gosl/io"
)

// Point holds information about one point in the mesh: a node or an integration point
type Point struct {
	Vid  int                  // vertex id or -1 if integration point
	Cid  int                  // cell id if integration point
	IpId int                  // index of integration point (or station) in cell
	X    []float64            // coordinates (reference configuration)
	Vals map[string][]float64 // values at selected output times
}

// Points is a set of points
type Points []*Point

// String returns a short representation of point
func (o *Point) String() string {
	if o.Vid >= 0 {
		return io.Sf("{vid:%d, x:%v}", o.Vid, o.X)
	}
	return io.Sf("{cid:%d, ip:%d, x:%v}", o.Cid, o.IpId, o.X)
}

// Dist returns the distance between two points
func (o *Point) Dist(other *Point) (d float64) {
	for i := range o.X {
		d += (o.X[i] - other.X[i]) * (o.X[i] - other.X[i])
	}
	return math.Sqrt(d)
}

// Locator defines interface for all locators
type Locator interface {
	Locate() Points
}

// N locates nodes by vertex ids
type N []int

// Locate returns the points corresponding to active vertices
func (o N) Locate() (res Points) {
	for _, vid := range o {
		if vid < 0 || vid >= len(Dom.Vid2node) || Dom.Vid2node[vid] == nil {
			continue
		}
		res = append(res, newNodePoint(vid))
	}
	return
}

// At locates a node by its coordinates
type At []float64

// Locate returns the node at given coordinates
func (o At) Locate() Points {
	for _, nod := range Dom.Nodes {
		if dist(nod.Vert.C, o) < TolC {
			return Points{newNodePoint(nod.Vert.Id)}
		}
	}
	return nil
}

// Along locates nodes on the segment between two points. The results are sorted by the
// distance to the first point
type Along [][]float64

// Locate returns the nodes on the segment
func (o Along) Locate() (res Points) {
	if len(o) != 2 {
		return
	}
	a, b := o[0], o[1]
	lab := dist(a, b)
	if lab < TolC {
		return
	}
	for _, nod := range Dom.Nodes {
		x := nod.Vert.C
		if math.Abs(dist(a, x)+dist(x, b)-lab) < TolC {
			res = append(res, newNodePoint(nod.Vert.Id))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return dist(a, res[i].X) < dist(a, res[j].X)
	})
	return
}

// E locates all integration points (or stations) of elements given cell ids
type E []int

// Locate returns the integration points of the elements
func (o E) Locate() (res Points) {
	for _, cid := range o {
		if cid < 0 || cid >= len(Dom.Cid2elem) {
			continue
		}
		e, ok := Dom.Cid2elem[cid].(ele.CanOutputIps)
		if !ok {
			continue
		}
		for i, x := range e.OutIpCoords() {
			res = append(res, &Point{Vid: -1, Cid: cid, IpId: i, X: x, Vals: make(map[string][]float64)})
		}
	}
	return
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

func newNodePoint(vid int) *Point {
	x := Dom.Msh.Verts[vid].C
	return &Point{Vid: vid, Cid: -1, IpId: -1, X: x, Vals: make(map[string][]float64)}
}

func dist(a, b []float64) (d float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		d += (a[i] - b[i]) * (a[i] - b[i])
	}
	return math.Sqrt(d)
}
