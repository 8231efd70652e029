// Copyright 2025 The QMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the qmc command configuration from flags, QMC_*
// environment variables, an optional .env file and an optional config file.
// Flags take precedence over the environment, the environment over the file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pointlander/qpspin/twolevel"
)

// EnvPrefix prefixes the environment variables
const EnvPrefix = "QMC"

// Config is the command configuration
type Config struct {
	Beta     float64
	H        float64
	Gamma    float64
	Samples  int
	Thinning int
	Init     int
	Seed     twolevel.Seed
	Chains   int
	Out      string
	LogLevel string
}

// Flags defines the command line flags
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Float64("beta", 1.0, "inverse temperature")
	fs.Float64("h", 1.0, "longitudinal field")
	fs.Float64("gamma", 1.0, "transverse field")
	fs.Int("samples", 1000, "number of samples")
	fs.Int("thinning", 10, "steps between samples")
	fs.Int("init", 1000, "burn-in steps")
	fs.String("seed", "42", "seed, an integer or a comma separated sequence")
	fs.Int("chains", 1, "number of independent chains")
	fs.String("out", "", "write the samples of the first chain to this file")
	fs.String("log-level", "info", "log level")
	fs.String("config", "", "config file")
	fs.String("env-file", ".env", "dotenv file")
	return fs
}

// Load parses args and resolves the configuration
func Load(args []string) (*Config, error) {
	fs := Flags("qmc")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parse flags")
	}

	envFile, err := fs.GetString("env-file")
	if err != nil {
		return nil, errors.Wrap(err, "env-file")
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrapf(err, "load %s", envFile)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", file)
		}
	}

	seed, err := ParseSeed(v.GetString("seed"))
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Beta:     v.GetFloat64("beta"),
		H:        v.GetFloat64("h"),
		Gamma:    v.GetFloat64("gamma"),
		Samples:  v.GetInt("samples"),
		Thinning: v.GetInt("thinning"),
		Init:     v.GetInt("init"),
		Seed:     seed,
		Chains:   v.GetInt("chains"),
		Out:      v.GetString("out"),
		LogLevel: v.GetString("log-level"),
	}
	if cfg.Chains < 1 {
		return nil, errors.Errorf("chains must be at least 1, got %d", cfg.Chains)
	}
	return cfg, nil
}

// ParseSeed parses "42" or "1,2,3"
func ParseSeed(s string) (twolevel.Seed, error) {
	var seed twolevel.Seed
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "seed %q", s)
		}
		seed = append(seed, value)
	}
	if len(seed) == 0 {
		return nil, errors.Errorf("seed %q is empty", s)
	}
	return seed, nil
}

// System builds the validated physical parameters
func (c *Config) System() (twolevel.SystemParameters, error) {
	return twolevel.NewSystemParameters(c.Beta, c.H, c.Gamma)
}

// Simulation builds the validated parameters of a chain; chains after the
// first extend the seed with their index so every chain is independent
func (c *Config) Simulation(chain int) (twolevel.SimulationParameters, error) {
	seed := append(twolevel.Seed{}, c.Seed...)
	if chain > 0 {
		seed = append(seed, int64(chain))
	}
	return twolevel.NewSimulationParameters(c.Samples, c.Thinning, c.Init, seed)
}
