// Copyright 2025 The QMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package twolevel

import (
	"math"
	"slices"
)

// SystemParameters are the physical constants of H = -h*sz - gamma*sx
type SystemParameters struct {
	beta  float64
	h     float64
	gamma float64
	b     float64
}

// NewSystemParameters validates and builds the system parameters
func NewSystemParameters(beta, h, gamma float64) (SystemParameters, error) {
	if !(beta > 0) {
		return SystemParameters{}, &ValidationError{Field: "beta", Value: beta, Reason: "must be greater than 0"}
	}
	return SystemParameters{
		beta:  beta,
		h:     h,
		gamma: gamma,
		b:     math.Sqrt(h*h + gamma*gamma),
	}, nil
}

// Beta is the inverse temperature
func (p SystemParameters) Beta() float64 { return p.beta }

// H is the longitudinal field
func (p SystemParameters) H() float64 { return p.h }

// Gamma is the transverse field
func (p SystemParameters) Gamma() float64 { return p.gamma }

// B is the total magnetic field strength
func (p SystemParameters) B() float64 { return p.b }

// M is the exact transverse magnetization <sx>
func (p SystemParameters) M() float64 {
	if p.b == 0 {
		return 0
	}
	return p.gamma / p.b * math.Tanh(p.beta*p.b)
}

// Seed seeds the random stream of a run, a single integer or a sequence
type Seed []int64

// SimulationParameters control the length and sampling of a run
type SimulationParameters struct {
	nSamples   int
	nThinning  int
	nInitSteps int
	seed       Seed
}

// NewSimulationParameters validates and builds the simulation parameters
func NewSimulationParameters(nSamples, nThinning, nInitSteps int, seed Seed) (SimulationParameters, error) {
	for _, field := range []struct {
		name  string
		value int
	}{
		{"n_samples", nSamples},
		{"n_thinning", nThinning},
		{"n_init_steps", nInitSteps},
	} {
		if field.value < 0 {
			return SimulationParameters{}, &ValidationError{Field: field.name, Value: field.value, Reason: "must not be negative"}
		}
	}
	if len(seed) == 0 {
		return SimulationParameters{}, &ValidationError{Field: "seed", Value: seed, Reason: "must not be empty"}
	}
	return SimulationParameters{
		nSamples:   nSamples,
		nThinning:  nThinning,
		nInitSteps: nInitSteps,
		seed:       slices.Clone(seed),
	}, nil
}

// NSamples is the number of recorded samples
func (p SimulationParameters) NSamples() int { return p.nSamples }

// NThinning is the number of steps between samples
func (p SimulationParameters) NThinning() int { return p.nThinning }

// NInitSteps is the number of burn-in steps
func (p SimulationParameters) NInitSteps() int { return p.nInitSteps }

// Seed returns a copy of the seed
func (p SimulationParameters) Seed() Seed { return slices.Clone(p.seed) }

// NSteps is the number of sampling steps, burn-in excluded
func (p SimulationParameters) NSteps() int { return p.nSamples * p.nThinning }
