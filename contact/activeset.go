// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Status defines the contact status of slave nodes
type Status int

const (
	Inactive Status = iota // no contact
	Stick                  // active and sticking
	Slip                   // active and slipping (also frictionless active nodes)
)

// String returns the name of status
func (o Status) String() string {
	switch o {
	case Stick:
		return "stick"
	case Slip:
		return "slip"
	}
	return "inactive"
}

// NumActive returns the number of active slave nodes
func (o *Interface) NumActive() (n int) {
	for _, s := range o.Status {
		if s != Inactive {
			n++
		}
	}
	return
}

// NextStep increments the number of active set steps and returns an error if the maximum is exceeded
func (o *Interface) NextStep() (err error) {
	o.Steps++
	if o.Steps > o.Dat.MaxActive {
		return chk.Err("active set did not converge within %d steps", o.Dat.MaxActive)
	}
	return
}

// UpdateActiveSetSemiSmooth updates the active set using the complementarity functions of the
// semi-smooth Newton method. It is called after each Newton iteration. If the new set was already
// seen in the last iterations (zig-zagging), the previous set is kept, Zigzag is set and changed
// is false.
func (o *Interface) UpdateActiveSetSemiSmooth() (changed bool) {
	status := make([]Status, len(o.Slave))
	sgn := make([]float64, len(o.Slave))
	for j := range o.Slave {
		if !o.HasMaster[j] {
			continue
		}
		an := o.Ln[j] - o.Dat.Cn*o.Gap[j]
		if an <= 0 {
			continue
		}
		status[j], sgn[j] = o.tangential(j, o.Lt[j]+o.Dat.Ct*o.Jump[j], o.bound(an))
	}
	return o.apply(status, sgn)
}

// UpdateActiveSet updates the active set after a converged Newton loop (fixed-point strategy):
// inactive nodes with penetration become active and active nodes with tensile multipliers become
// inactive
func (o *Interface) UpdateActiveSet() (changed bool) {
	const tol = 1e-12
	status := make([]Status, len(o.Slave))
	sgn := make([]float64, len(o.Slave))
	for j := range o.Slave {
		if !o.HasMaster[j] {
			continue
		}
		if o.Status[j] == Inactive {
			if o.Gap[j] >= -tol {
				continue
			}
		} else if o.Ln[j] < 0 {
			continue
		}
		status[j], sgn[j] = o.tangential(j, o.Lt[j]+o.Dat.Ct*o.Jump[j], o.bound(math.Max(o.Ln[j], 0)))
	}
	return o.apply(status, sgn)
}

// Residual returns the largest violation of the contact conditions with the current statuses
func (o *Interface) Residual() (res float64) {
	for j := range o.Slave {
		var rn, rt float64
		switch o.Status[j] {
		case Inactive:
			rn, rt = o.Ln[j], o.Lt[j]
		case Stick:
			rn, rt = o.Gap[j], o.Jump[j]
		case Slip:
			rn, rt = o.Gap[j], o.Lt[j]-o.slipTraction(j)
		}
		res = math.Max(res, math.Max(math.Abs(rn), math.Abs(rt)))
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// bound returns the frictional bound corresponding to the normal pressure pn
func (o *Interface) bound(pn float64) float64 {
	switch o.Dat.Friction {
	case "coulomb":
		return o.Mu * pn
	case "tresca":
		return o.Bound
	}
	return 0
}

// tangential returns the status of an active node given the trial tangential traction at and the bound s
func (o *Interface) tangential(j int, at, s float64) (Status, float64) {
	if o.Dat.Friction == "none" {
		return Slip, 0
	}
	if math.Abs(at) < s {
		return Stick, 0
	}
	switch {
	case at > 0:
		return Slip, 1
	case at < 0:
		return Slip, -1
	}
	return Slip, 0
}

// slipTraction returns the tangential traction of a slipping node
func (o *Interface) slipTraction(j int) float64 {
	switch o.Dat.Friction {
	case "coulomb":
		return o.Mu * o.Sgn[j] * o.Ln[j]
	case "tresca":
		return o.Bound * o.Sgn[j]
	}
	return 0
}

// apply sets the new statuses unless they cause zig-zagging
func (o *Interface) apply(status []Status, sgn []float64) (changed bool) {
	for j := range o.Slave {
		if status[j] != o.Status[j] || sgn[j] != o.Sgn[j] {
			changed = true
			break
		}
	}
	if o.hist.size == 0 {
		o.hist.Push(snapshot(o.Status, o.Sgn)) // starting set
	}
	snap := snapshot(status, sgn)
	if changed && o.hist.Contains(snap) {
		o.Zigzag = true
		if o.Dat.Verbose {
			io.Pfyel("contact: zig-zagging of active set detected. forcing convergence\n")
		}
		return false
	}
	o.hist.Push(snap)
	if changed {
		copy(o.Status, status)
		copy(o.Sgn, sgn)
		if o.Dat.Verbose {
			io.Pf("contact: active set changed. %d active nodes\n", o.NumActive())
		}
	}
	return
}

// snapshot encodes statuses and slip directions
func snapshot(status []Status, sgn []float64) (s []int) {
	s = make([]int, len(status))
	for j := range status {
		s[j] = int(status[j])*3 + int(sgn[j]) + 1
	}
	return
}

// setBuffer is a ring buffer holding the latest active sets
type setBuffer struct {
	sets [][]int
	next int
	size int
}

func newSetBuffer(capacity int) *setBuffer {
	return &setBuffer{sets: make([][]int, capacity)}
}

// Push adds a set, overwriting the oldest one
func (o *setBuffer) Push(s []int) {
	o.sets[o.next] = s
	o.next = (o.next + 1) % len(o.sets)
	if o.size < len(o.sets) {
		o.size++
	}
}

// Contains tells whether s equals one of the stored sets
func (o *setBuffer) Contains(s []int) bool {
	for i := 0; i < o.size; i++ {
		if equalInts(o.sets[i], s) {
			return true
		}
	}
	return false
}

// Reset clears the buffer
func (o *setBuffer) Reset() {
	o.next, o.size = 0, 0
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
