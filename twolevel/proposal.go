// Copyright 2025 The QMC Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package twolevel

import "sync"

// Move is the kind of proposed update
type Move int

const (
	// Add two flips
	Add Move = iota
	// Remove two flips
	Remove
)

func (m Move) String() string {
	switch m {
	case Add:
		return "add"
	case Remove:
		return "remove"
	}
	return "unknown"
}

type proposalKey struct {
	beta   float64
	length int
	move   Move
}

var proposals = struct {
	sync.Mutex
	ratios map[proposalKey]float64
}{ratios: make(map[proposalKey]float64)}

// ProposalRatio is the Hastings correction for a move from a configuration of
// the given length. The L=0 add and L=2 remove cases differ from the general
// formulas because an add is forced on the empty configuration.
func ProposalRatio(beta float64, length int, move Move) (float64, error) {
	key := proposalKey{beta: beta, length: length, move: move}
	proposals.Lock()
	defer proposals.Unlock()
	if ratio, ok := proposals.ratios[key]; ok {
		return ratio, nil
	}

	var ratio float64
	switch {
	case length == 0 && move == Add:
		ratio = beta * beta / 4
	case length == 2 && move == Remove:
		ratio = 4 / (beta * beta)
	case length >= 0 && move == Add:
		ratio = beta * beta / float64((length+2)*(length+1))
	case length > 0 && move == Remove:
		ratio = float64(length*(length-1)) / (beta * beta)
	default:
		return 0, &InvalidProposalError{Length: length, Move: move}
	}
	proposals.ratios[key] = ratio
	return ratio, nil
}
