// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "sort"

// IpsMap holds output values at integration points (or beam stations); key => [nip] values
type IpsMap map[string][]float64

// NewIpsMap returns a new IpsMap
func NewIpsMap() *IpsMap {
	M := make(IpsMap)
	return &M
}

// Set sets the value of key at integration point idx. The slice of key is allocated with nip
// entries the first time the key is set
func (o *IpsMap) Set(key string, idx, nip int, val float64) {
	slice, ok := (*o)[key]
	if !ok {
		slice = make([]float64, nip)
		(*o)[key] = slice
	}
	slice[idx] = val
}

// Get returns the value of key at integration point idx; zero if key is not available
func (o *IpsMap) Get(key string, idx int) float64 {
	if slice, ok := (*o)[key]; ok && idx < len(slice) {
		return slice[idx]
	}
	return 0
}

// Keys returns the sorted keys
func (o *IpsMap) Keys() (keys []string) {
	for key := range *o {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return
}
