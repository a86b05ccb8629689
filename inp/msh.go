// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/beamcontact/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"gopkg.in/yaml.v3"
)

// constants
const Ztol = 1e-7

// Vert holds vertex data
type Vert struct {
	Id  int       // id
	Tag int       // tag
	C   []float64 // coordinates (size==2 or 3)
	T0  []float64 // [optional] reference tangent of beams passing through this vertex

	// derived
	SharedBy []int // cells sharing this vertex
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    // id
	Tag   int    // tag
	Type  string // geometry type (string); e.g. "lin2", "lin3"
	Verts []int  // vertices

	// derived
	Shp *shp.Shape   // shape structure
	T0  [][3]float64 // reference tangents at the end vertices of beams ("lin3" cells only)
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from JSON
	Verts []*Vert // vertices
	Cells []*Cell // cells

	// derived
	FnamePath  string  // complete filename path
	Ndim       int     // space dimension
	Xmin, Xmax float64 // min and max x-coordinate
	Ymin, Ymax float64 // min and max y-coordinate
	Zmin, Zmax float64 // min and max z-coordinate
	MaxElev    float64 // maximum elevation

	// derived: maps
	VertTag2verts map[int][]*Vert    // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell    // cell tag => set of cells
	Ctype2cells   map[string][]*Cell // cell type => set of cells
}

// ReadMsh reads a mesh for FE analyses from a JSON (.msh) or YAML (.yaml, .yml) file
func ReadMsh(dir, fn string) (o *Mesh, err error) {

	// new mesh
	o = new(Mesh)

	// read file
	o.FnamePath = filepath.Join(dir, fn)
	b, err := os.ReadFile(o.FnamePath)
	if err != nil {
		return nil, err
	}

	// decode
	if isYaml(fn) {
		err = yaml.Unmarshal(b, o)
	} else {
		err = json.Unmarshal(b, o)
	}
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q:\n%v", fn, err)
	}

	// check
	if len(o.Verts) < 2 {
		return nil, chk.Err("at least 2 vertices are required in mesh")
	}
	if len(o.Cells) < 1 {
		return nil, chk.Err("at least 1 cell is required in mesh")
	}

	// vertex related derived data
	o.Ndim = 2
	o.Xmin = o.Verts[0].C[0]
	o.Ymin = o.Verts[0].C[1]
	if len(o.Verts[0].C) > 2 {
		o.Zmin = o.Verts[0].C[2]
	}
	o.Xmax = o.Xmin
	o.Ymax = o.Ymin
	o.Zmax = o.Zmin
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {

		// check vertex id
		if v.Id != i {
			return nil, chk.Err("vertices ids must coincide with order in \"verts\" list. %d != %d", v.Id, i)
		}

		// ndim
		nd := len(v.C)
		if nd < 2 || nd > 3 {
			return nil, chk.Err("number of coordinates of vertices must be 2 or 3. %d is invalid", nd)
		}
		if nd == 3 {
			if math.Abs(v.C[2]) > Ztol {
				o.Ndim = 3
			}
		}

		// reference tangent
		if len(v.T0) != 0 && len(v.T0) != nd {
			return nil, chk.Err("reference tangent of vertex %d must have %d components", v.Id, nd)
		}

		// tags
		if v.Tag < 0 {
			verts := o.VertTag2verts[v.Tag]
			o.VertTag2verts[v.Tag] = append(verts, v)
		}

		// limits
		o.Xmin = utl.Min(o.Xmin, v.C[0])
		o.Xmax = utl.Max(o.Xmax, v.C[0])
		o.Ymin = utl.Min(o.Ymin, v.C[1])
		o.Ymax = utl.Max(o.Ymax, v.C[1])
		if nd > 2 {
			o.Zmin = utl.Min(o.Zmin, v.C[2])
			o.Zmax = utl.Max(o.Zmax, v.C[2])
		}
	}

	// derived data
	o.CellTag2cells = make(map[int][]*Cell)
	o.Ctype2cells = make(map[string][]*Cell)
	for i, c := range o.Cells {

		// check id and tag
		if c.Id != i {
			return nil, chk.Err("cells ids must coincide with order in \"cells\" list. %d != %d", c.Id, i)
		}
		if c.Tag >= 0 {
			return nil, chk.Err("cells tags must be negative. %d is incorrect", c.Tag)
		}

		// get shape structure
		if !shp.Available(c.Type) {
			return nil, chk.Err("cannot find shape type == %q", c.Type)
		}
		c.Shp = shp.Get(c.Type)
		if len(c.Verts) != c.Shp.Nverts {
			return nil, chk.Err("cell %d of type %q must have %d vertices", c.Id, c.Type, c.Shp.Nverts)
		}

		// tags
		cells := o.CellTag2cells[c.Tag]
		o.CellTag2cells[c.Tag] = append(cells, c)

		// cell type => cells
		cells = o.Ctype2cells[c.Type]
		o.Ctype2cells[c.Type] = append(cells, c)

		// vertices sharing
		for _, vid := range c.Verts {
			if vid < 0 || vid >= len(o.Verts) {
				return nil, chk.Err("cell %d has an invalid vertex id = %d", c.Id, vid)
			}
			o.Verts[vid].SharedBy = append(o.Verts[vid].SharedBy, c.Id)
		}
	}

	// maximum elevation
	if o.Ndim == 2 {
		o.MaxElev = o.Ymax
	} else {
		o.MaxElev = o.Zmax
	}

	// reference tangents of beams
	err = o.setBeamTangents()
	return
}

// setBeamTangents computes the reference tangents of vertices at the ends of "lin3" cells, if not given,
// by averaging the chords of all "lin3" cells sharing the vertex
func (o *Mesh) setBeamTangents() (err error) {
	for _, v := range o.Verts {
		if len(v.T0) > 0 {
			continue
		}
		var t [3]float64
		found := false
		for _, cid := range v.SharedBy {
			c := o.Cells[cid]
			if c.Type != "lin3" || (c.Verts[0] != v.Id && c.Verts[1] != v.Id) {
				continue
			}
			a, b := o.Verts[c.Verts[0]].C, o.Verts[c.Verts[1]].C
			var chord [3]float64
			var l float64
			for i := 0; i < len(a); i++ {
				chord[i] = b[i] - a[i]
				l += chord[i] * chord[i]
			}
			l = math.Sqrt(l)
			if l < 1e-14 {
				return chk.Err("cell %d has a zero-length chord", c.Id)
			}
			for i := 0; i < 3; i++ {
				t[i] += chord[i] / l
			}
			found = true
		}
		if !found {
			continue
		}
		n := math.Sqrt(t[0]*t[0] + t[1]*t[1] + t[2]*t[2])
		if n < 1e-14 {
			return chk.Err("cannot compute reference tangent at vertex %d because chords cancel each other", v.Id)
		}
		v.T0 = make([]float64, len(v.C))
		for i := 0; i < len(v.C); i++ {
			v.T0[i] = t[i] / n
		}
	}
	for _, c := range o.Cells {
		if c.Type == "lin3" {
			c.T0 = [][3]float64{o.Verts[c.Verts[0]].Tangent3(), o.Verts[c.Verts[1]].Tangent3()}
		}
	}
	return
}

// Tangent3 returns the (unit) reference tangent of vertex with three components
func (o *Vert) Tangent3() (t [3]float64) {
	var n float64
	for i, x := range o.T0 {
		t[i] = x
		n += x * x
	}
	n = math.Sqrt(n)
	if n < 1e-14 {
		chk.Panic("reference tangent of vertex %d is not available", o.Id)
	}
	for i := 0; i < 3; i++ {
		t[i] /= n
	}
	return
}

// Coords3 returns the coordinates of vertex with three components
func (o *Vert) Coords3() (x [3]float64) {
	copy(x[:], o.C)
	return
}

// String returns a JSON representation of *Vert
func (o *Vert) String() string {
	l := io.Sf("{\"id\":%4d, \"tag\":%6d, \"c\":[", o.Id, o.Tag)
	for i, x := range o.C {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%23.15e", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Cell
func (o *Cell) String() string {
	l := io.Sf("{\"id\":%d, \"tag\":%d, \"type\":%q, \"verts\":[", o.Id, o.Tag, o.Type)
	for i, x := range o.Verts {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Mesh
func (o Mesh) String() string {
	l := "{\n  \"verts\" : [\n"
	for i, x := range o.Verts {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ],\n  \"cells\" : [\n"
	for i, x := range o.Cells {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ]\n}"
	return l
}
