// Copyright 2025 The QMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package twolevel

import (
	"math"
	"slices"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Configuration is a sorted, even length sequence of flip times in [0, beta]
type Configuration []float64

// Initial is the empty configuration every chain starts from
func Initial() Configuration {
	return Configuration{}
}

// Valid checks the configuration invariants
func (c Configuration) Valid(beta float64) bool {
	if len(c)%2 != 0 || !slices.IsSorted(c) {
		return false
	}
	for _, t := range c {
		if t < 0 || t > beta {
			return false
		}
	}
	return true
}

var alternating = struct {
	sync.Mutex
	ones map[int][]float64
}{ones: make(map[int][]float64)}

// alternatingOnes returns [1, -1, 1, -1, ...] of length n; do not modify
func alternatingOnes(n int) []float64 {
	alternating.Lock()
	defer alternating.Unlock()
	if ones, ok := alternating.ones[n]; ok {
		return ones
	}
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
		if i%2 == 1 {
			ones[i] = -1
		}
	}
	alternating.ones[n] = ones
	return ones
}

// Weight is the unnormalized weight 2 gamma^L cosh(h (beta + 2s)) of a configuration,
// s being the alternating sum of the flip times
func Weight(p SystemParameters, ts Configuration) float64 {
	s := floats.Dot(alternatingOnes(len(ts)), ts)
	return 2 * math.Pow(p.gamma, float64(len(ts))) * math.Cosh(p.h*(p.beta+2*s))
}
