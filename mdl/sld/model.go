// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sld implements section models for rods and beams
package sld

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines the interface for structural models
type Model interface {
	Init(ndim int, pstress bool, prms dbf.Params) error // initialises model
	GetPrms() dbf.Params                                // gets (an example) of parameters
	GetRho() float64                                    // returns density
	Clean()                                             // clean resources
}

// Section defines resultant-based (beam) section models
type Section interface {
	Rigidities() (EA, GJ, EI2, EI3 float64)                       // axial, torsional and bending rigidities
	Inertia() (ρA, ρJ, ρI2, ρI3 float64)                          // mass per length and mass moments of inertia per length
	GetA() float64                                                // returns cross-sectional area
	Resultants(ε float64, K [3]float64) (N float64, M [3]float64) // stress resultants for given strains
}

// OneD specialises Model to 1D (rods)
type OneD interface {
	InitIntVars1D() (*OnedState, error)                         // initialises AND allocates internal (secondary) variables
	Update(s *OnedState, ε, Δε, aux float64) error              // update state
	CalcD(s *OnedState, firstIt bool) (float64, float64, error) // computes D = dσ_new/dε_new consistent with StressUpdate
	GetA() float64                                              // returns cross-sectional area
}

// OnedState holds data for 1D models
type OnedState struct {
	Sig float64   // σ: Cauchy stress component
	Alp []float64 // α: internal variables of rate type [nalp]
}

// NewOnedState allocates 1D state structure
func NewOnedState(nalp int) *OnedState {
	var s OnedState
	if nalp > 0 {
		s.Alp = make([]float64, nalp)
	}
	return &s
}

// Set copies states
func (o *OnedState) Set(other *OnedState) {
	o.Sig = other.Sig
	copy(o.Alp, other.Alp)
}

// New returns new solid model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'sld' database", name)
	}
	return allocator(), nil
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Model{}
