// Copyright 2025 The QMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package twolevel

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Stream is the random source of a single run
type Stream struct {
	src *rand.PCG
	rng *rand.Rand
}

// splitmix64 mixes one word of seed material
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// newStream folds the seed sequence into the two PCG words
func newStream(seed Seed) *Stream {
	hi, lo := uint64(len(seed)), ^uint64(len(seed))
	for _, s := range seed {
		hi = splitmix64(hi ^ uint64(s))
		lo = splitmix64(lo + hi)
	}
	src := rand.NewPCG(hi, lo)
	return &Stream{
		src: src,
		rng: rand.New(src),
	}
}

// Uniform draws from [0, 1)
func (s *Stream) Uniform() float64 {
	return s.rng.Float64()
}

// UniformRange draws n values from [lo, hi)
func (s *Stream) UniformRange(lo, hi float64, n int) []float64 {
	u := distuv.Uniform{Min: lo, Max: hi, Src: s.src}
	values := make([]float64, n)
	for i := range values {
		values[i] = u.Rand()
	}
	return values
}

// Choose picks k distinct indices from [0, n)
func (s *Stream) Choose(n, k int) []int {
	idxs := make([]int, k)
	sampleuv.WithoutReplacement(idxs, n, s.src)
	return idxs
}
