// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sld

import (
	"github.com/cpmech/beamcontact/ana"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// OnedLinElast implements a linear elastic model for rods and beams.
//
//	Geometric properties are given directly (A, I2, I3, J) or computed from a cross-section:
//	 "b","h" => rectangle; "r" => circle
//	The shear modulus is given directly (G) or computed from Poisson's coefficient (nu)
type OnedLinElast struct {
	E   float64 // Young's modulus
	G   float64 // shear modulus
	Nu  float64 // Poisson's coefficient
	A   float64 // cross-sectional area
	I2  float64 // moment of inertia of cross section about e2-axis
	I3  float64 // moment of inertia of cross section about e3-axis
	J   float64 // torsional constant
	Rho float64 // density
}

// add model to factory
func init() {
	allocators["oned-elast"] = func() Model { return new(OnedLinElast) }
}

// Clean clean resources
func (o *OnedLinElast) Clean() {
}

// GetRho returns density
func (o *OnedLinElast) GetRho() float64 {
	return o.Rho
}

// GetA returns cross-sectional area
func (o *OnedLinElast) GetA() float64 {
	return o.A
}

// Init initialises model
func (o *OnedLinElast) Init(ndim int, pstress bool, prms dbf.Params) (err error) {
	var b, h, r float64
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "G":
			o.G = p.V
		case "nu":
			o.Nu = p.V
		case "A":
			o.A = p.V
		case "I2", "I22":
			o.I2 = p.V
		case "I3", "I11":
			o.I3 = p.V
		case "J", "Jtt":
			o.J = p.V
		case "rho":
			o.Rho = p.V
		case "b":
			b = p.V
		case "h":
			h = p.V
		case "r":
			r = p.V
		}
	}
	var sec ana.CrossSection
	switch {
	case b > 0 && h > 0:
		sec.Init("rectangle", "", b, h, 0, 0, 0)
	case r > 0:
		sec.Init("circle", "", 0, 0, 0, 0, r)
	}
	if sec.A > 0 {
		o.A, o.I2, o.I3, o.J = sec.A, sec.I2, sec.I3, sec.J
	}
	if o.G == 0 && o.Nu > -1 {
		o.G = o.E / (2.0 * (1.0 + o.Nu))
	}
	if o.E <= 0 {
		return chk.Err("oned-elast: Young's modulus must be positive. E=%g is invalid", o.E)
	}
	if o.A <= 0 {
		return chk.Err("oned-elast: cross-sectional area must be positive. A=%g is invalid", o.A)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o OnedLinElast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 2.0000e+08},
		&dbf.P{N: "G", V: 7.5758e+07},
		&dbf.P{N: "A", V: 1.0000e-02},
		&dbf.P{N: "I2", V: 8.3333e-06},
		&dbf.P{N: "I3", V: 8.3333e-06},
		&dbf.P{N: "J", V: 1.4063e-05},
		&dbf.P{N: "rho", V: 7.8500e+00},
	}
}

// Rigidities returns the axial, torsional and bending rigidities
func (o *OnedLinElast) Rigidities() (EA, GJ, EI2, EI3 float64) {
	return o.E * o.A, o.G * o.J, o.E * o.I2, o.E * o.I3
}

// Inertia returns the mass per unit length and the mass moments of inertia per unit length
func (o *OnedLinElast) Inertia() (ρA, ρJ, ρI2, ρI3 float64) {
	return o.Rho * o.A, o.Rho * (o.I2 + o.I3), o.Rho * o.I2, o.Rho * o.I3
}

// Resultants returns the axial force and the moments (torque, M2, M3) for given axial strain and
// curvatures (twist, K2, K3)
func (o *OnedLinElast) Resultants(ε float64, K [3]float64) (N float64, M [3]float64) {
	EA, GJ, EI2, EI3 := o.Rigidities()
	return EA * ε, [3]float64{GJ * K[0], EI2 * K[1], EI3 * K[2]}
}

// InitIntVars initialises internal (secondary) variables
func (o OnedLinElast) InitIntVars1D() (s *OnedState, err error) {
	s = NewOnedState(0)
	return
}

// Update updates stresses for given strains
func (o OnedLinElast) Update(s *OnedState, ε, Δε, aux float64) (err error) {
	s.Sig += o.E * Δε
	return
}

// CalcD computes D = dσ_new/dε_new consistent with StressUpdate
func (o OnedLinElast) CalcD(s *OnedState, firstIt bool) (float64, float64, error) {
	return o.E, 0, nil
}
