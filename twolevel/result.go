// Copyright 2025 The QMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package twolevel

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// SimulationResult is the outcome of one run
type SimulationResult struct {
	samples       []Configuration
	acceptedSteps int
	system        SystemParameters
	simulation    SimulationParameters
}

// NewSimulationResult builds a result from recorded samples
func NewSimulationResult(samples []Configuration, acceptedSteps int, system SystemParameters, simulation SimulationParameters) *SimulationResult {
	r := &SimulationResult{
		samples:       make([]Configuration, len(samples)),
		acceptedSteps: acceptedSteps,
		system:        system,
		simulation:    simulation,
	}
	for i, sample := range samples {
		r.samples[i] = slices.Clone(sample)
	}
	r.simulation.seed = simulation.Seed()
	return r
}

// Samples returns a copy of the recorded configurations
func (r *SimulationResult) Samples() []Configuration {
	samples := make([]Configuration, len(r.samples))
	for i, sample := range r.samples {
		samples[i] = slices.Clone(sample)
	}
	return samples
}

// Len is the number of samples
func (r *SimulationResult) Len() int { return len(r.samples) }

// AcceptedSteps counts accepted steps over the whole run, burn-in included
func (r *SimulationResult) AcceptedSteps() int { return r.acceptedSteps }

// SystemParameters used for the run
func (r *SimulationResult) SystemParameters() SystemParameters { return r.system }

// SimulationParameters used for the run
func (r *SimulationResult) SimulationParameters() SimulationParameters {
	p := r.simulation
	p.seed = r.simulation.Seed()
	return p
}

// AcceptanceRate is the accepted steps over the sampling steps. The numerator
// includes burn-in, the denominator does not. NaN when no sampling steps ran.
func (r *SimulationResult) AcceptanceRate() float64 {
	n := r.simulation.NSteps()
	if n == 0 {
		return math.NaN()
	}
	return float64(r.acceptedSteps) / float64(n)
}

// magnetizations are the per sample estimates L/(beta gamma)
func (r *SimulationResult) magnetizations() []float64 {
	scale := r.system.beta * r.system.gamma
	m := make([]float64, len(r.samples))
	for i, sample := range r.samples {
		m[i] = float64(len(sample)) / scale
	}
	return m
}

// EstimateMagnetization returns the mean of the per sample magnetization and
// its standard error
func (r *SimulationResult) EstimateMagnetization() (mean, sem float64) {
	m := r.magnetizations()
	if len(m) == 0 {
		return math.NaN(), math.NaN()
	}
	mean, std := stat.MeanStdDev(m, nil)
	return mean, std / math.Sqrt(float64(len(m)))
}

// OrderHistogram counts samples by number of flip pairs
func (r *SimulationResult) OrderHistogram() []int {
	var histogram []int
	for _, sample := range r.samples {
		pairs := len(sample) / 2
		for len(histogram) <= pairs {
			histogram = append(histogram, 0)
		}
		histogram[pairs]++
	}
	return histogram
}

// Summary describes the expansion order of the samples
type Summary struct {
	MeanOrder       float64
	MedianOrder     float64
	MinOrder        float64
	MaxOrder        float64
	P05Order        float64
	P95Order        float64
	Autocorrelation float64
}

// Summary computes order statistics and the lag 1 autocorrelation of the
// magnetization estimates
func (r *SimulationResult) Summary() (Summary, error) {
	if len(r.samples) == 0 {
		return Summary{}, errors.New("twolevel: no samples")
	}
	orders := make(stats.Float64Data, len(r.samples))
	for i, sample := range r.samples {
		orders[i] = float64(len(sample))
	}

	var (
		summary Summary
		err     error
	)
	if summary.MeanOrder, err = orders.Mean(); err != nil {
		return Summary{}, errors.Wrap(err, "mean order")
	}
	if summary.MedianOrder, err = orders.Median(); err != nil {
		return Summary{}, errors.Wrap(err, "median order")
	}
	if summary.MinOrder, err = orders.Min(); err != nil {
		return Summary{}, errors.Wrap(err, "min order")
	}
	if summary.MaxOrder, err = orders.Max(); err != nil {
		return Summary{}, errors.Wrap(err, "max order")
	}
	if summary.P05Order, err = orders.PercentileNearestRank(5); err != nil {
		return Summary{}, errors.Wrap(err, "5th percentile")
	}
	if summary.P95Order, err = orders.PercentileNearestRank(95); err != nil {
		return Summary{}, errors.Wrap(err, "95th percentile")
	}
	summary.Autocorrelation = math.NaN()
	if len(r.samples) > 1 {
		if summary.Autocorrelation, err = stats.AutoCorrelation(r.magnetizations(), 1); err != nil {
			return Summary{}, errors.Wrap(err, "autocorrelation")
		}
	}
	return summary, nil
}

// MergeMagnetization pools the per sample magnetization of independent
// chains of the same system into one mean and standard error
func MergeMagnetization(results ...*SimulationResult) (mean, sem float64, err error) {
	var m []float64
	for i, r := range results {
		if r.system != results[0].system {
			return 0, 0, errors.Errorf("twolevel: chain %d has different system parameters", i)
		}
		m = append(m, r.magnetizations()...)
	}
	if len(m) == 0 {
		return math.NaN(), math.NaN(), nil
	}
	mean, std := stat.MeanStdDev(m, nil)
	return mean, std / math.Sqrt(float64(len(m))), nil
}
