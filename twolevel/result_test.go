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

func newTestResult(t *testing.T, samples []Configuration, accepted int) *SimulationResult {
	t.Helper()
	system, err := NewSystemParameters(1, 1, 1)
	require.NoError(t, err)
	simulation, err := NewSimulationParameters(9, 11, 10, Seed{42})
	require.NoError(t, err)
	return NewSimulationResult(samples, accepted, system, simulation)
}

func TestSimulationResult_AcceptanceRate(t *testing.T) {
	r := newTestResult(t, []Configuration{{0.1, 0.2}, {0.3, 0.4}}, 50)
	assert.Equal(t, 50.0/99, r.AcceptanceRate())
}

func TestSimulationResult_EstimateMagnetization(t *testing.T) {
	r := newTestResult(t, []Configuration{{0.1, 0.2}, {0.3, 0.4}}, 50)
	mean, sem := r.EstimateMagnetization()
	assert.Equal(t, 2.0, mean)
	assert.Equal(t, 0.0, sem)

	r = newTestResult(t, []Configuration{{}, {0.1, 0.2}, {0.1, 0.2, 0.3, 0.4}}, 0)
	mean, sem = r.EstimateMagnetization()
	assert.InDelta(t, 2.0, mean, 1e-12)
	assert.InDelta(t, 2/math.Sqrt(3), sem, 1e-12)

	mean, sem = newTestResult(t, []Configuration{{0.1, 0.2}}, 0).EstimateMagnetization()
	assert.Equal(t, 2.0, mean)
	assert.True(t, math.IsNaN(sem))

	mean, sem = newTestResult(t, nil, 0).EstimateMagnetization()
	assert.True(t, math.IsNaN(mean))
	assert.True(t, math.IsNaN(sem))
}

func TestSimulationResult_Immutable(t *testing.T) {
	samples := []Configuration{{0.1, 0.2}, {0.3, 0.4}}
	r := newTestResult(t, samples, 1)

	samples[0][0] = 0.9
	got := r.Samples()
	assert.Equal(t, Configuration{0.1, 0.2}, got[0])

	got[1][0] = 0.9
	assert.Equal(t, Configuration{0.3, 0.4}, r.Samples()[1])
}

func TestSimulationResult_OrderHistogram(t *testing.T) {
	r := newTestResult(t, []Configuration{{}, {0.1, 0.2}, {0.1, 0.2, 0.3, 0.4}, {0.5, 0.6}}, 0)
	assert.Equal(t, []int{1, 2, 1}, r.OrderHistogram())
	assert.Empty(t, newTestResult(t, nil, 0).OrderHistogram())
}

func TestSimulationResult_Summary(t *testing.T) {
	_, err := newTestResult(t, nil, 0).Summary()
	require.Error(t, err)

	r := newTestResult(t, []Configuration{{}, {0.1, 0.2}, {0.1, 0.2, 0.3, 0.4}}, 0)
	summary, err := r.Summary()
	require.NoError(t, err)
	assert.Equal(t, 2.0, summary.MeanOrder)
	assert.Equal(t, 2.0, summary.MedianOrder)
	assert.Equal(t, 0.0, summary.MinOrder)
	assert.Equal(t, 4.0, summary.MaxOrder)
	assert.LessOrEqual(t, summary.P05Order, summary.P95Order)

	summary, err = newTestResult(t, []Configuration{{0.1, 0.2}}, 0).Summary()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(summary.Autocorrelation))
}

func TestMergeMagnetization(t *testing.T) {
	a := newTestResult(t, []Configuration{{}, {0.1, 0.2}}, 0)
	b := newTestResult(t, []Configuration{{0.1, 0.2, 0.3, 0.4}}, 0)

	mean, sem, err := MergeMagnetization(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, mean, 1e-12)
	assert.InDelta(t, 2/math.Sqrt(3), sem, 1e-12)

	system, err := NewSystemParameters(2, 1, 1)
	require.NoError(t, err)
	other := NewSimulationResult(nil, 0, system, a.SimulationParameters())
	_, _, err = MergeMagnetization(a, other)
	assert.Error(t, err)

	mean, _, err = MergeMagnetization()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(mean))
}
