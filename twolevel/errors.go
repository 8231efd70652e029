// Copyright 2025 The QMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package twolevel

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrValidation invalid construction parameters
	ErrValidation = errors.New("twolevel: validation failed")
	// ErrInvalidProposal a move that is not defined for the configuration
	ErrInvalidProposal = errors.New("twolevel: invalid proposal")
	// ErrNoRNG the random stream was used outside of a run
	ErrNoRNG = errors.New("twolevel: RNG not configured")
)

// ValidationError is returned by the parameter constructors
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("twolevel: invalid %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Is matches ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidProposalError is returned by ProposalRatio for undefined moves
type InvalidProposalError struct {
	Length int
	Move   Move
}

func (e *InvalidProposalError) Error() string {
	return fmt.Sprintf("twolevel: invalid proposal: %d %s", e.Length, e.Move)
}

// Is matches ErrInvalidProposal
func (e *InvalidProposalError) Is(target error) bool {
	return target == ErrInvalidProposal
}
