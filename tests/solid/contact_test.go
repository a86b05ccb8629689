// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/cpmech/beamcontact/contact"
	"github.com/cpmech/beamcontact/fem"
	"github.com/cpmech/beamcontact/tests"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

// runContact runs the cantilever/obstacle simulation with the given strategy and returns the
// solution vector and the tip multiplier
func runContact(tst *testing.T, mode string, semismooth bool) (main *fem.Main, Y []float64, λ float64) {
	main = fem.NewMain("data/contact.sim", "", true, false, false, chk.Verbose)
	main.Sim.Contact[0].Mode = mode
	main.Sim.Contact[0].SemiSmooth = semismooth
	require.NoError(tst, main.Run())
	dom := main.Domains[0]
	require.Len(tst, dom.Contacts, 1)
	c := dom.Contacts[0]
	io.Pforan("%s (semismooth=%v): status=%v  gap=%v  λn=%v\n", mode, semismooth, c.Status, c.Gap, c.Ln)
	return main, append([]float64{}, dom.Sol.Y...), c.Ln[1]
}

func Test_contact01(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("contact01. cantilever pushed against rigid obstacle")

	// condensed and semi-smooth
	main, Y, λ := runContact(tst, "condensed", true)
	dom := main.Domains[0]
	c := dom.Contacts[0]

	// interface
	chk.Ints(tst, "slave", []int{c.Slave[0].Vid, c.Slave[1].Vid}, []int{1, 3})
	chk.Ints(tst, "master", []int{c.Master[0].Vid, c.Master[1].Vid}, []int{5, 6})
	chk.Ints(tst, "master eqs", c.Master[0].Eqs[:], []int{-1, -1})

	// tip touches the obstacle; the middle node does not
	chk.Float64(tst, "uy(tip)", 1e-8, tests.NodeVal(dom, 3, "uy"), -0.05)
	require.Greater(tst, tests.NodeVal(dom, 1, "uy"), -0.05)
	require.Equal(tst, []contact.Status{contact.Inactive, contact.Slip}, c.Status)
	require.Greater(tst, λ, 0.0)
	chk.Float64(tst, "λn(0)", 1e-12, c.Ln[0], 0)
	require.Greater(tst, main.Summary.ActiveSteps, 0)

	// the contact force and the clamp reaction balance the applied load
	fs, fm := c.NodalForces()
	io.Pforan("fs = %v  fm = %v\n", fs, fm)
	Ry := tests.Reaction(dom, 0, "uy")
	chk.Float64(tst, "ΣFy", 1e-7, Ry+fs[0][1]+fs[1][1]-0.24, 0)
	chk.Float64(tst, "Σfs + Σfm", 1e-10, fs[0][1]+fs[1][1]+fm[0][1]+fm[1][1], 0)

	// other strategies
	for _, s := range []struct {
		mode       string
		semismooth bool
	}{
		{"saddle", true},
		{"condensed", false},
		{"saddle", false},
	} {
		_, Ys, λs := runContact(tst, s.mode, s.semismooth)
		chk.Array(tst, io.Sf("Y(%s,%v)", s.mode, s.semismooth), 1e-7, Ys, Y)
		chk.Float64(tst, io.Sf("λ(%s,%v)", s.mode, s.semismooth), 1e-7, λs, λ)
	}
}

func Test_contact02(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("contact02. one contact interface per region")

	main := fem.NewMain("data/contact.sim", "", true, false, false, chk.Verbose)
	second := *main.Sim.Contact[0]
	second.Desc = "beam on the same rigid line"
	main.Sim.Contact = append(main.Sim.Contact, &second)
	err := main.SetStage(0)
	require.Error(tst, err)
	require.Contains(tst, err.Error(), "only one contact interface per region")
	require.Error(tst, main.Run())
}
