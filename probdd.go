// Copyright 2024 BINARY Members
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package deltamin

import (
	"context"
	"math"
	"slices"
)

// _logOddsBound is the clamp applied to an atom's belief once expressed
// as log-odds, preventing the probability representation from
// underflowing to an exact 0 or 1 before the atom is formally pinned
// (spec.md §9 "pin at |log-odds| >= ~7").
const _logOddsBound = 7

func clampLogOdds(l float64) float64 {
	if l > _logOddsBound {
		return _logOddsBound
	}
	if l < -_logOddsBound {
		return -_logOddsBound
	}
	return l
}

func logOdds(p float64) float64 {
	const eps = 1e-9
	p = math.Min(math.Max(p, eps), 1-eps)
	return clampLogOdds(math.Log(p / (1 - p)))
}

func sigmoid(l float64) float64 {
	return 1 / (1 + math.Exp(-l))
}

// ProbDD runs probabilistic delta debugging (spec.md §4.7): it maintains
// a per-atom belief that the atom is required for failure, trial-removes
// a greedy prefix of the least-likely-required atoms, and updates belief
// by a Bayesian rule over the oracle's verdict. It certifies 1-minimality
// with a final ddmin pass over the survivors.
func ProbDD(ctx context.Context, n int, oracle Oracle, materialize func(Configuration) []byte, cfg Config) (Result, error) {
	s, err := newSession(cfg, oracle, materialize)
	if err != nil {
		return Result{}, err
	}
	defer s.close()
	if n == 0 {
		return Result{}, ErrEmptyInput
	}

	fullCfg := full(n)
	if s.query(ctx, fullCfg) != FAIL {
		return Result{}, ErrContractViolation
	}

	deadline := deadlineFor(cfg.TimeBudget)

	belief := make([]float64, n) // log-odds, initialized to 0 => p=0.5
	dropped := make([]bool, n)   // pi pinned to 0, permanently removed
	pinned := make([]bool, n)    // pi pinned to 1, never trial-removed

	stallLimit := cfg.ProbDD.StallK * n
	stall := 0
	cancelled := false

	for {
		if s.cancelled(ctx, deadline) {
			cancelled = true
			break
		}

		survivors := survivingIndices(dropped)
		if allPinnedOrDropped(survivors, pinned) {
			break
		}
		if stall >= stallLimit {
			break
		}

		trial := greedyTrialSubset(survivors, belief, pinned, cfg.ProbDD.Tau)
		if len(trial) == 0 {
			// No unpinned survivor has a removal probability (1-p) of
			// at least tau, so nothing is queried and no belief or pin
			// changes this round. Count as a stalled iteration.
			stall++
			continue
		}

		candidate := indicesToConfiguration(survivors).Minus(indicesToConfiguration(trial))
		v := s.query(ctx, candidate)

		progressed := false
		switch v {
		case FAIL:
			for _, i := range trial {
				dropped[i] = true
			}
			progressed = true
		case PASS:
			updateBeliefs(belief, trial)
		case UNRESOLVED:
			// leave p unchanged (spec.md §4.7 step 3)
		}

		for _, i := range trial {
			if !dropped[i] && sigmoid(belief[i]) >= 1-cfg.ProbDD.Epsilon {
				pinned[i] = true
				progressed = true
			}
		}

		if progressed {
			stall = 0
		} else {
			stall++
		}
	}

	survivors := survivingIndices(dropped)
	finalSet := indicesToConfiguration(survivors)

	// Certify 1-minimality with a final ddmin pass over the survivors
	// (spec.md §4.7 "After termination, run a single ddmin pass").
	if !cancelled && finalSet.Len() > 0 {
		certified, ddCancelled := ddminLoop(ctx, s, s.query, finalSet, deadline)
		finalSet = certified
		cancelled = ddCancelled
	}

	s.drain(ctx)
	return s.result(finalSet, cancelled), nil
}

func survivingIndices(dropped []bool) []int {
	idx := make([]int, 0, len(dropped))
	for i, d := range dropped {
		if !d {
			idx = append(idx, i)
		}
	}
	return idx
}

func allPinnedOrDropped(survivors []int, pinned []bool) bool {
	for _, i := range survivors {
		if !pinned[i] {
			return false
		}
	}
	return true
}

// greedyTrialSubset orders unpinned survivors by ascending belief
// (least likely required first) and takes the longest prefix whose
// joint removal probability π_T = prod(1-p_i) stays at or above tau
// (spec.md §4.7 step 1). Ties break by index.
func greedyTrialSubset(survivors []int, belief []float64, pinned []bool, tau float64) []int {
	candidates := make([]int, 0, len(survivors))
	for _, i := range survivors {
		if !pinned[i] {
			candidates = append(candidates, i)
		}
	}
	slices.SortStableFunc(candidates, func(a, b int) int {
		pa, pb := sigmoid(belief[a]), sigmoid(belief[b])
		switch {
		case pa < pb:
			return -1
		case pa > pb:
			return 1
		default:
			return a - b
		}
	})

	var trial []int
	joint := 1.0
	for _, i := range candidates {
		p := sigmoid(belief[i])
		nextJoint := joint * (1 - p)
		if nextJoint < tau {
			break
		}
		joint = nextJoint
		trial = append(trial, i)
	}
	return trial
}

// updateBeliefs applies the Bayesian update for a PASS verdict on the
// trial subset T: each i in T has its odds divided by the probability
// that some other member of T, not i, was the required atom
// (spec.md §4.7 step 3).
func updateBeliefs(belief []float64, trial []int) {
	if len(trial) == 0 {
		return
	}
	ps := make(map[int]float64, len(trial))
	for _, i := range trial {
		ps[i] = sigmoid(belief[i])
	}
	for _, i := range trial {
		piNotI := 1.0
		for _, j := range trial {
			if j == i {
				continue
			}
			piNotI *= 1 - ps[j]
		}
		pi := ps[i]
		denom := pi + (1-pi)*(1-piNotI)
		if denom <= 0 {
			continue
		}
		posterior := pi / denom
		belief[i] = logOdds(posterior)
	}
}

func indicesToConfiguration(idx []int) Configuration {
	c := make(Configuration, len(idx))
	copy(c, idx)
	slices.Sort(c)
	return c
}
