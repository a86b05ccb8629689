// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"sort"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// CrossSection holds the properties of beam cross-sections.
// The local frame of a beam has e1 along the centreline; e2 and e3 span the cross-section.
//
//	Type : rectangle
//	       circle                            tw
//	       I-beam                        -->| |<--
//	                                 ___    | |     ___
//	^ 3       +-------+            tf |   ########   |
//	|         |       |              ---  ########   |
//	|         |       |                      ##      |
//	+----> 2  |       | h = Hei              ##      | h = Hei
//	          |       |                      ##      |
//	          |       |              ---  ########   |
//	          +-------+            tf_|_  ########  ---
//	           b = Wid                    b = Wid
type CrossSection struct {

	// input
	Type string  // "rectangle", "I-beam" or "circle"
	Unit string  // unit of length
	Wid  float64 // width (b) if not circular
	Hei  float64 // height (h) if not circular
	Tf   float64 // flange thickness if I-beam
	Tw   float64 // web thickness if I-beam
	R    float64 // radius if circular

	// derived
	A  float64 // cross-sectional area
	I2 float64 // second moment of area about e2 (bending in the 1-3 plane)
	I3 float64 // second moment of area about e3 (bending in the 1-2 plane)
	J  float64 // torsional constant
}

// sectionProps computes A, I2, I3 and J of a given type of cross-section
var sectionProps = map[string]func(o *CrossSection){

	"rectangle": func(o *CrossSection) {
		b, h := o.Wid, o.Hei
		o.A = b * h
		o.I2 = b * math.Pow(h, 3) / 12.0
		o.I3 = math.Pow(b, 3) * h / 12.0
		o.J = rectTorsion(b, h)
	},

	"I-beam": func(o *CrossSection) {
		b, h, tf, tw := o.Wid, o.Hei, o.Tf, o.Tw
		web := h - 2.0*tf
		o.A = b*h - web*(b-tw)
		o.I2 = (b*math.Pow(h, 3) - (b-tw)*math.Pow(web, 3)) / 12.0
		o.I3 = web*math.Pow(tw, 3)/12.0 + tf*math.Pow(b, 3)/6.0
		o.J = (2.0*b*math.Pow(tf, 3) + web*math.Pow(tw, 3)) / 3.0
	},

	"circle": func(o *CrossSection) {
		o.A = math.Pi * o.R * o.R
		o.I2 = o.A * o.R * o.R / 4.0
		o.I3 = o.I2
		o.J = 2.0 * o.I2
	},
}

// rectTorsion returns the torsional constant of a b×h rectangle. Squares use 9b⁴/64; other
// rectangles use the series approximation with the short side t and the long side w
func rectTorsion(b, h float64) float64 {
	if b == h {
		return 9.0 * math.Pow(b, 4) / 64.0
	}
	t, w := math.Min(b, h), math.Max(b, h)
	return w * math.Pow(t, 3) * (1.0/3.0 - 0.21*(t/w)*(1.0-math.Pow(t/w, 4)/12.0))
}

// Init initialises structure and computes the sectional properties
func (o *CrossSection) Init(typ, unitLen string, wid, hei, tf, tw, rad float64) {
	props, ok := sectionProps[typ]
	if !ok {
		chk.Panic("cross-section type %q is unavailable", typ)
	}
	o.Type, o.Unit, o.Wid, o.Hei, o.Tf, o.Tw, o.R = typ, unitLen, wid, hei, tf, tw, rad
	props(o)
}

// GetMatString returns string representation of cross-section for .mat file
func (o *CrossSection) GetMatString(numfmt string) string {
	u2, u4 := o.Unit+"²", o.Unit+"⁴"
	return strings.Join([]string{
		matPrm("A", numfmt, o.A, u2),
		matPrm("I2", numfmt, o.I2, u4),
		matPrm("I3", numfmt, o.I3, u4),
		matPrm("J", numfmt, o.J, u4),
	}, ",\n")
}

// Material holds parameters of some reference materials
type Material struct {

	// input
	Type     string // type of material; e.g. "steel"
	UnitPres string // unit of pressure

	// derived
	UnitDens string  // unit of density
	Desc     string  // description
	E        float64 // Young's modulus
	Nu       float64 // Poisson's coefficient
	G        float64 // shear modulus
	Rho      float64 // density
}

// refMaterial holds E [MPa], ν and ρ [Gg/m³] of a reference material
type refMaterial struct {
	desc    string
	E, Nu   float64
	density float64
}

// refMaterials holds the available reference materials
var refMaterials = map[string]refMaterial{
	"steel":            {"Steel: structural A36", 200000.0, 0.32, 7.85e-3},
	"aluminum":         {"Aluminum: 2014-T6", 73100.0, 0.35, 2.79e-3},
	"concrete-low":     {"Concrete: low strength", 22100.0, 0.15, 2.38e-3},
	"concrete-high":    {"Concrete: high strength", 30000.0, 0.15, 2.38e-3},
	"soft-soil":        {"Soil: soft", 10.0, 0.30, 1.80e-3},
	"wood-douglas-fir": {"Wood: Douglas-fir", 13100.0, 0.29, 4.70e-4},
	"nitinol":          {"Nickel-titanium wire (austenite)", 75000.0, 0.33, 6.45e-3},
}

// pressureUnits maps units of pressure to the factor converting MPa to the unit and to the
// consistent unit of density (with m for lengths and s for time)
var pressureUnits = map[string]struct {
	factor float64
	dens   string
}{
	"kPa": {1e3, "Mg/m³"},
	"MPa": {1, "Gg/m³"},
	"GPa": {1e-3, "Tg/m³"},
}

// RefMaterials returns the sorted names of the reference materials
func RefMaterials() (names []string) {
	for name := range refMaterials {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Init initialises material paramters
//
//	Input:
//	 unitPres:  "kPa" => E:[kPa], rho:[Mg/m^3]
//	            "MPa" => E:[MPa], rho:[Gg/m^3]
//	            "GPa" => E:[GPa], rho:[Tg/m^3]
func (o *Material) Init(typ, unitPres string) {
	ref, ok := refMaterials[typ]
	if !ok {
		chk.Panic("material type %q is unavailable. available: %v", typ, RefMaterials())
	}
	unit, ok := pressureUnits[unitPres]
	if !ok {
		chk.Panic("unit of pressure %q is invalid", unitPres)
	}
	o.Type, o.Desc, o.UnitPres, o.UnitDens = typ, ref.desc, unitPres, unit.dens
	o.E = ref.E * unit.factor
	o.Nu = ref.Nu
	o.Rho = ref.density * unit.factor
	o.G = o.E / (2.0 * (1.0 + o.Nu))
}

// GetMatString returns the representation of a beam material for .mat files
func (o *Material) GetMatString(name, model, numfmt string, section *CrossSection) string {
	if model == "" {
		model = "oned-elast"
	}
	prms := []string{
		matPrm("E", numfmt, o.E, o.UnitPres),
		matPrm("G", numfmt, o.G, o.UnitPres),
		matPrm("nu", numfmt, o.Nu, "-"),
		matPrm("rho", numfmt, o.Rho, o.UnitDens),
	}
	if section != nil {
		prms = append(prms, section.GetMatString(numfmt))
	}
	return io.Sf("    {\n      \"name\" : %q,\n      \"type\" : \"sld\",\n      \"model\" : %q,\n      \"prms\" : [\n%s\n      ]\n    }",
		name, model, strings.Join(prms, ",\n"))
}

// matPrm returns one entry of the parameters list of a .mat file
func matPrm(name, numfmt string, val float64, unit string) string {
	return io.Sf("        {\"n\":%q, \"v\":"+numfmt+", \"u\":%q}", name, val, unit)
}
