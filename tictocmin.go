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
	"time"
)

// TicTocMin alternates forward (prefix-shrink) and backward
// (suffix-shrink) sweeps with a monotonically non-increasing block size
// (spec.md §4.5). It exploits the common case that a failure clusters
// near one end of the input, avoiding ddmin's symmetric complement
// testing.
func TicTocMin(ctx context.Context, n int, oracle Oracle, materialize func(Configuration) []byte, cfg Config) (Result, error) {
	s, err := newSession(cfg, oracle, materialize)
	if err != nil {
		return Result{}, err
	}
	defer s.close()
	if n == 0 {
		return Result{}, ErrEmptyInput
	}

	c := full(n)
	if s.query(ctx, c) != FAIL {
		return Result{}, ErrContractViolation
	}

	deadline := deadlineFor(cfg.TimeBudget)
	c, cancelled := tictocLoop(ctx, s, s.query, c, deadline)
	s.drain(ctx)
	return s.result(c, cancelled), nil
}

// tictocLoop is the shared core driving both TicTocMin and HDD's
// per-level inner reducer when configured with InnerTicTocMin. query is
// factored out for the same reason as ddminLoop's.
func tictocLoop(ctx context.Context, s *session, query func(context.Context, Configuration) Verdict, c Configuration, deadline time.Time) (Configuration, bool) {
	b := max(c.Len()/2, 1)
	forward := true
	for b >= 1 {
		if s.cancelled(ctx, deadline) {
			return c, true
		}

		next, committed := sweep(ctx, s, query, c, b, forward, deadline)
		c = next
		forward = !forward

		if !committed {
			b /= 2
		}
	}

	// Final 1-minimality certification pass: a b=1 sweep in both
	// directions (spec.md §4.5 "Final configuration satisfies a
	// 1-minimality guarantee by a final b = 1 sweep over both directions").
	for _, dir := range []bool{true, false} {
		if s.cancelled(ctx, deadline) {
			return c, true
		}
		c, _ = sweep(ctx, s, query, c, 1, dir, deadline)
	}

	return c, false
}

// sweep tests removal of the leading (forward) or trailing (backward)
// block of size b at the current position; on FAIL it commits the
// removal and retries at the same position (the configuration has
// shrunk), on non-FAIL it advances the window by b (spec.md §4.5). It
// returns the resulting configuration and whether any removal committed
// during the sweep.
func sweep(ctx context.Context, s *session, query func(context.Context, Configuration) Verdict, c Configuration, b int, forward bool, deadline time.Time) (Configuration, bool) {
	committed := false
	pos := 0
	for pos < c.Len() {
		if s.cancelled(ctx, deadline) {
			break
		}
		remaining := c.Len() - pos
		size := min(b, remaining)

		var block Configuration
		if forward {
			block = c[pos : pos+size]
		} else {
			block = c[c.Len()-pos-size : c.Len()-pos]
		}

		candidate := c.Minus(block)
		if query(ctx, candidate) == FAIL {
			c = candidate
			committed = true
			continue
		}

		pos += size
	}
	return c, committed
}
