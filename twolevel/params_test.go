// Copyright 2025 The QMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package twolevel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystemParameters_Beta(t *testing.T) {
	for _, beta := range []float64{0, -1, math.Inf(-1), math.NaN()} {
		_, err := NewSystemParameters(beta, 1, 1)
		require.ErrorIs(t, err, ErrValidation, "beta=%v", beta)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "beta", verr.Field)
	}

	p, err := NewSystemParameters(0.5, -2, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.5, p.Beta())
	assert.Equal(t, -2.0, p.H())
	assert.Equal(t, 3.0, p.Gamma())
}

func TestSystemParameters_B(t *testing.T) {
	p, err := NewSystemParameters(1, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 5.0, p.B())

	for _, c := range []struct{ h, gamma float64 }{{0, 1}, {1, 0}, {-2, 0.5}, {0.3, -7}} {
		p, err := NewSystemParameters(2, c.h, c.gamma)
		require.NoError(t, err)
		assert.Equal(t, math.Sqrt(c.h*c.h+c.gamma*c.gamma), p.B())
	}
}

func TestSystemParameters_M(t *testing.T) {
	tests := []struct {
		name           string
		beta, h, gamma float64
		expected       float64
	}{
		{"pure transverse field", 1, 0, 1, math.Tanh(1)},
		{"pure longitudinal field", 1, 1, 0, 0},
		{"no field", 1, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewSystemParameters(tt.beta, tt.h, tt.gamma)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.M())
		})
	}

	for _, beta := range []float64{0.01, 1, 10, 100} {
		for _, h := range []float64{-5, 0, 0.5, 5} {
			for _, gamma := range []float64{-3, 0.1, 1, 3} {
				p, err := NewSystemParameters(beta, h, gamma)
				require.NoError(t, err)
				assert.LessOrEqual(t, math.Abs(p.M()), 1.0)
			}
		}
	}
}

func TestNewSimulationParameters(t *testing.T) {
	p, err := NewSimulationParameters(10, 5, 10, Seed{42})
	require.NoError(t, err)
	assert.Equal(t, 50, p.NSteps())
	assert.Equal(t, 10, p.NSamples())
	assert.Equal(t, 5, p.NThinning())
	assert.Equal(t, 10, p.NInitSteps())

	tests := []struct {
		name                         string
		samples, thinning, initSteps int
		seed                         Seed
		field                        string
	}{
		{"negative samples", -1, 1, 1, Seed{1}, "n_samples"},
		{"negative thinning", 1, -1, 1, Seed{1}, "n_thinning"},
		{"negative init", 1, 1, -1, Seed{1}, "n_init_steps"},
		{"empty seed", 1, 1, 1, nil, "seed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSimulationParameters(tt.samples, tt.thinning, tt.initSteps, tt.seed)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSimulationParameters_SeedIsCopied(t *testing.T) {
	seed := Seed{1, 2, 3}
	p, err := NewSimulationParameters(1, 1, 1, seed)
	require.NoError(t, err)

	seed[0] = 100
	assert.Equal(t, Seed{1, 2, 3}, p.Seed())

	got := p.Seed()
	got[1] = 100
	assert.Equal(t, Seed{1, 2, 3}, p.Seed())
}
