// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"sort"

	"github.com/cpmech/beamcontact/inp"
	"github.com/cpmech/gosl/chk"
)

// InfoFuncType defines a function that returns information about a certain element type
type InfoFuncType func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData) *Info

// AllocatorType defines a function that allocates an element
type AllocatorType func(sim *inp.Simulation, cell *inp.Cell, edat *inp.ElemData, x [][]float64) Element

// registration holds the callbacks of one element type
type registration struct {
	info  InfoFuncType
	alloc AllocatorType
}

// registry maps element type names to callbacks
var registry = make(map[string]registration)

// Register registers an element type. It panics if the name exists already or any callback is nil
func Register(elementName string, info InfoFuncType, alloc AllocatorType) {
	if _, ok := registry[elementName]; ok {
		chk.Panic("cannot register element %q because the name exists already", elementName)
	}
	if info == nil || alloc == nil {
		chk.Panic("cannot register element %q with nil callbacks", elementName)
	}
	registry[elementName] = registration{info, alloc}
}

// Types returns the sorted names of all registered element types
func Types() (names []string) {
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// GetInfoFunc gets callback function to return information about an element
func GetInfoFunc(elementName string) InfoFuncType {
	if r, ok := registry[elementName]; ok {
		return r.info
	}
	chk.Panic("cannot get function for information about element %q", elementName)
	return nil
}

// GetAllocator gets allocator function to allocate an element
func GetAllocator(elementName string) AllocatorType {
	if r, ok := registry[elementName]; ok {
		return r.alloc
	}
	chk.Panic("cannot get allocator for element %q", elementName)
	return nil
}

// GetInfo returns information about the element of a cell
func GetInfo(cell *inp.Cell, reg *inp.Region, sim *inp.Simulation) (info *Info, inactive bool, err error) {
	edat, r, err := lookup(cell, reg)
	if err != nil {
		return
	}
	inactive = edat.Inact
	info = r.info(sim, cell, edat)
	if info == nil {
		err = chk.Err("info for element {type=%q, tag=%d, id=%d} is not available", edat.Type, cell.Tag, cell.Id)
		return
	}
	if len(info.Dofs) != len(cell.Verts) {
		err = chk.Err("element {type=%q, tag=%d, id=%d} must give DOFs for all %d vertices", edat.Type, cell.Tag, cell.Id, len(cell.Verts))
	}
	return
}

// New allocates the element of a cell
func New(cell *inp.Cell, reg *inp.Region, sim *inp.Simulation) (ele Element, err error) {
	edat, r, err := lookup(cell, reg)
	if err != nil {
		return
	}
	ele = r.alloc(sim, cell, edat, BuildCoordsMatrix(cell, reg.Msh))
	if ele == nil {
		err = chk.Err("element {type=%q, tag=%d, id=%d} is not available", edat.Type, cell.Tag, cell.Id)
	}
	return
}

// lookup finds the element data and the callbacks corresponding to a cell
func lookup(cell *inp.Cell, reg *inp.Region) (edat *inp.ElemData, r registration, err error) {
	edat = reg.Etag2data(cell.Tag)
	if edat == nil {
		err = chk.Err("cannot get data for element {tag=%d, id=%d}", cell.Tag, cell.Id)
		return
	}
	r, ok := registry[edat.Type]
	if !ok {
		err = chk.Err("element type %q is not available {tag=%d, id=%d}. available types: %v", edat.Type, cell.Tag, cell.Id, Types())
	}
	return
}
