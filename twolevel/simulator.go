// Copyright 2025 The QMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package twolevel

import (
	"context"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// pAdd is the probability to propose an add move
const pAdd = 0.5

// Simulator is a continuous imaginary time Monte Carlo simulator for
//
//	H = -h*sz - gamma*sx
//
// A Simulator is not safe for concurrent use; run independent chains on
// separate simulators.
type Simulator struct {
	system SystemParameters
	logger *log.Logger
	rng    *Stream
}

// Option configures a Simulator
type Option func(*Simulator)

// WithLogger sets the logger used for run progress
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSimulator creates a simulator for the system
func NewSimulator(system SystemParameters, opts ...Option) *Simulator {
	s := &Simulator{
		system: system,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// System returns the physical parameters
func (s *Simulator) System() SystemParameters {
	return s.system
}

// RNG returns the random stream of the active run
func (s *Simulator) RNG() (*Stream, error) {
	if s.rng == nil {
		return nil, ErrNoRNG
	}
	return s.rng, nil
}

// Weight is the weight of a configuration of this system
func (s *Simulator) Weight(ts Configuration) float64 {
	return Weight(s.system, ts)
}

// Step is one Metropolis-Hastings transition; it returns the next
// configuration and 1 if the proposal was accepted
func (s *Simulator) Step(ts Configuration) (Configuration, int, error) {
	next, _, accepted, err := s.step(ts, s.Weight(ts))
	return next, accepted, err
}

// step is Step with the weight of ts already known
func (s *Simulator) step(ts Configuration, weight float64) (Configuration, float64, int, error) {
	rng, err := s.RNG()
	if err != nil {
		return ts, weight, 0, err
	}

	beta := s.system.beta
	var (
		candidate Configuration
		ratio     float64
	)
	if len(ts) == 0 || rng.Uniform() < pAdd {
		// add two flips
		candidate = make(Configuration, 0, len(ts)+2)
		candidate = append(candidate, ts...)
		candidate = append(candidate, rng.UniformRange(0, beta, 2)...)
		slices.Sort(candidate)
		ratio, err = ProposalRatio(beta, len(ts), Add)
	} else {
		// remove two flips
		idxs := rng.Choose(len(ts), 2)
		candidate = make(Configuration, 0, len(ts)-2)
		for i, t := range ts {
			if i != idxs[0] && i != idxs[1] {
				candidate = append(candidate, t)
			}
		}
		ratio, err = ProposalRatio(beta, len(ts), Remove)
	}
	if err != nil {
		return ts, weight, 0, err
	}

	candidateWeight := s.Weight(candidate)
	p := candidateWeight / weight * ratio
	if rng.Uniform() < p {
		return candidate, candidateWeight, 1, nil
	}
	return ts, weight, 0, nil
}

// Run runs a chain from the empty configuration: burn-in, then one sample
// every NThinning steps
func (s *Simulator) Run(ctx context.Context, simulation SimulationParameters) (*SimulationResult, error) {
	s.rng = newStream(simulation.seed)
	defer func() {
		s.rng = nil
	}()

	s.logger.Debug("run started",
		"beta", s.system.beta, "h", s.system.h, "gamma", s.system.gamma,
		"samples", simulation.nSamples, "thinning", simulation.nThinning, "init", simulation.nInitSteps)

	var (
		ts       = Initial()
		weight   = s.Weight(ts)
		accepted int
		err      error
	)
	for range simulation.nInitSteps {
		var a int
		ts, weight, a, err = s.step(ts, weight)
		if err != nil {
			return nil, errors.Wrap(err, "burn-in")
		}
		accepted += a
	}
	s.logger.Debug("burn-in done", "accepted", accepted, "order", len(ts))

	samples := make([]Configuration, 0, simulation.nSamples)
	for i := range simulation.nSamples {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "run interrupted at sample %d", i)
		}
		for range simulation.nThinning {
			var a int
			ts, weight, a, err = s.step(ts, weight)
			if err != nil {
				return nil, errors.Wrapf(err, "sample %d", i)
			}
			accepted += a
		}
		samples = append(samples, ts)
	}

	result := &SimulationResult{
		samples:       samples,
		acceptedSteps: accepted,
		system:        s.system,
		simulation:    simulation,
	}
	result.simulation.seed = simulation.Seed()
	s.logger.Debug("run done", "accepted", accepted, "acceptance", result.AcceptanceRate())
	return result, nil
}

// Run runs a single chain on a fresh simulator
func Run(ctx context.Context, system SystemParameters, simulation SimulationParameters, opts ...Option) (*SimulationResult, error) {
	return NewSimulator(system, opts...).Run(ctx, simulation)
}
