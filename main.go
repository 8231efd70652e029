// Copyright 2025 The QMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/pointlander/qpspin/internal/config"
	"github.com/pointlander/qpspin/twolevel"
)

// Chains runs independent chains concurrently, one simulator per chain
func Chains(ctx context.Context, cfg *config.Config, logger *log.Logger) ([]*twolevel.SimulationResult, error) {
	system, err := cfg.System()
	if err != nil {
		return nil, err
	}
	results := make([]*twolevel.SimulationResult, cfg.Chains)
	g, ctx := errgroup.WithContext(ctx)
	for i := range cfg.Chains {
		simulation, err := cfg.Simulation(i)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			chainLogger := logger.With("run", uuid.NewString(), "chain", i, "seed", simulation.Seed())
			result, err := twolevel.NewSimulator(system, twolevel.WithLogger(chainLogger)).Run(ctx, simulation)
			if err != nil {
				return errors.Wrapf(err, "chain %d", i)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Report prints the estimates
func Report(w io.Writer, results []*twolevel.SimulationResult) error {
	system := results[0].SystemParameters()
	simulation := results[0].SimulationParameters()
	fmt.Fprintln(w, " Continuous Imaginary Time Monte Carlo for the Two-Level System")
	fmt.Fprintln(w, " --------------------------------------------------------------")
	fmt.Fprintln(w, " Inverse temperature beta = ", system.Beta())
	fmt.Fprintln(w, " Longitudinal field h = ", system.H())
	fmt.Fprintln(w, " Transverse field gamma = ", system.Gamma())
	fmt.Fprintln(w, " Number of samples = ", simulation.NSamples())
	fmt.Fprintln(w, " Thinning = ", simulation.NThinning())
	fmt.Fprintln(w, " Burn-in steps = ", simulation.NInitSteps())
	fmt.Fprintln(w, " Chains = ", len(results))

	for i, result := range results {
		mean, sem := result.EstimateMagnetization()
		fmt.Fprintf(w, " chain %d: acceptance = %.4f <m> = %v +/- %v\n", i, result.AcceptanceRate(), mean, sem)
		summary, err := result.Summary()
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "   order mean = %.3f median = %v range = [%v, %v] 90%% = [%v, %v] autocorrelation = %.4f\n",
			summary.MeanOrder, summary.MedianOrder, summary.MinOrder, summary.MaxOrder,
			summary.P05Order, summary.P95Order, summary.Autocorrelation)
	}

	mean, sem, err := twolevel.MergeMagnetization(results...)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "<m> = ", mean, " +/- ", sem)
	fmt.Fprintln(w, " exact m = ", system.M())
	return nil
}

// WriteSamples writes one sample per line, flip times tab separated
func WriteSamples(name string, result *twolevel.SimulationResult) (err error) {
	of, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "create samples file")
	}
	defer func() {
		if cerr := of.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close samples file")
		}
	}()
	w := bufio.NewWriter(of)
	for _, sample := range result.Samples() {
		for i, t := range sample {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, t)
		}
		fmt.Fprintln(w)
	}
	return errors.Wrap(w.Flush(), "write samples")
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "qmc",
		ReportTimestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := Chains(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if err := Report(os.Stdout, results); err != nil {
		return err
	}
	if cfg.Out != "" {
		if err := WriteSamples(cfg.Out, results[0]); err != nil {
			return err
		}
		logger.Info("samples written", "file", cfg.Out, "samples", results[0].Len())
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Cause(err) == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
