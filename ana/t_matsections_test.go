// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_sections01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sections01. typical cross-sections")

	var rect CrossSection
	b, h := 4.0, 6.0
	rect.Init("rectangle", "in", b, h, 0, 0, 0)
	io.Pforan("4 x 6 rectangle:\n%v\n", rect.GetMatString("%g"))
	chk.Float64(tst, "rect: A  ", 1e-17, rect.A, 24.0)
	chk.Float64(tst, "rect: I2 ", 1e-17, rect.I2, 72.0)
	chk.Float64(tst, "rect: I3 ", 1e-17, rect.I3, 32.0)
	chk.Float64(tst, "rect: J  ", 1e-11, rect.J, 75.1249382716)

	b, h = 4.0, 4.0
	rect.Init("rectangle", "in", b, h, 0, 0, 0)
	io.Pforan("\n4 x 4 rectangle:\n%v\n", rect.GetMatString("%g"))
	chk.Float64(tst, "rect: A  ", 1e-17, rect.A, 16.0)
	chk.Float64(tst, "rect: I2 ", 1e-13, rect.I2, 21.3333333333333)
	chk.Float64(tst, "rect: I3 ", 1e-13, rect.I3, 21.3333333333333)
	chk.Float64(tst, "rect: J  ", 1e-17, rect.J, 36.0)

	var ibeam CrossSection
	b, h = 4.0, 6.0
	tf, tw := 0.5, 0.3
	ibeam.Init("I-beam", "in", b, h, tf, tw, 0)
	io.Pforan("\n4 x 6 I-beam:\n%v\n", ibeam.GetMatString("%g"))
	chk.Float64(tst, "I-beam: A  ", 1e-17, ibeam.A, 5.5)
	chk.Float64(tst, "I-beam: I2 ", 1e-10, ibeam.I2, 33.4583333333)
	chk.Float64(tst, "I-beam: I3 ", 1e-10, ibeam.I3, 5.3445833333)
	chk.Float64(tst, "I-beam: J  ", 1e-10, ibeam.J, 0.3783333333)

	var circle CrossSection
	r := 1.0
	circle.Init("circle", "m", 0, 0, 0, 0, r)
	io.Pforan("\nr=1 circle:\n%v\n", circle.GetMatString("%g"))
	chk.Float64(tst, "circle: A  ", 1e-17, circle.A, math.Pi)
	chk.Float64(tst, "circle: I2 ", 1e-10, circle.I2, 0.7853981634)
	chk.Float64(tst, "circle: I3 ", 1e-10, circle.I3, 0.7853981634)
	chk.Float64(tst, "circle: J  ", 1e-11, circle.J, 1.5707963268)
}

func Test_materials01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("materials01. reference materials parameters")

	var rect CrossSection
	b, h := 0.2, 0.3
	rect.Init("rectangle", "m", b, h, 0, 0, 0)

	var mat Material
	mat.Init("steel", "MPa")
	l := mat.GetMatString("steel", "", "%e", &rect)
	io.Pforan("%v\n", l)
	chk.Float64(tst, "G", 1e-10, mat.G, 200000.0/2.64)
	if !strings.Contains(l, `"oned-elast"`) || !strings.Contains(l, `"I3"`) {
		tst.Errorf("material string is incorrect:\n%s", l)
	}
}
