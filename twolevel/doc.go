// Copyright 2025 The QMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package twolevel samples the equilibrium statistics of a spin-1/2 in a
// transverse and longitudinal field,
//
//	H = -h*sz - gamma*sx
//
// with continuous imaginary time Monte Carlo. The partition function is
// expanded in powers of gamma; each term is a sorted, even length sequence
// of flip times in [0, beta] (a [Configuration]). A Metropolis-Hastings
// chain adds or removes pairs of flips:
//
//	system, _ := twolevel.NewSystemParameters(1, 1, 1)
//	simulation, _ := twolevel.NewSimulationParameters(1000, 10, 1000, twolevel.Seed{42})
//	result, _ := twolevel.Run(ctx, system, simulation)
//	m, sem := result.EstimateMagnetization()
//
// The mean expansion order divided by beta*gamma estimates <sx>, which is
// known exactly as [SystemParameters.M].
package twolevel
