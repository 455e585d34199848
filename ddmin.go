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

// DDMin runs the classical recursive-bisection reducer (spec.md §4.4):
// it repeatedly partitions the current configuration into g contiguous
// blocks and tries reducing to a single block, then to a block's
// complement, before increasing granularity. The full input must
// already reproduce FAIL; materialize renders a Configuration into the
// bytes the oracle consumes.
func DDMin(ctx context.Context, n int, oracle Oracle, materialize func(Configuration) []byte, cfg Config) (Result, error) {
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
	final, cancelled := ddminLoop(ctx, s, s.query, c, deadline)
	s.drain(ctx)
	return s.result(final, cancelled), nil
}

// ddminLoop is the shared core driving both DDMin and HDD's per-level
// inner reducer (spec.md §4.6 "1-minimizing sequence reducer"). query is
// factored out so HDD can substitute a tree-aware query that short
// circuits to UNRESOLVED on a tree-illegal candidate without invoking
// the oracle.
func ddminLoop(ctx context.Context, s *session, query func(context.Context, Configuration) Verdict, c Configuration, deadline time.Time) (Configuration, bool) {
	g := 2

	for {
		if s.cancelled(ctx, deadline) {
			return c, true
		}
		if c.Len() < 2 {
			return c, false
		}

		blocks := c.Split(g)
		progressed := false

		// Reduce-to-subset.
		for _, block := range blocks {
			if s.cancelled(ctx, deadline) {
				return c, true
			}
			if query(ctx, block) == FAIL {
				c = block
				g = 2
				progressed = true
				break
			}
		}
		if progressed {
			continue
		}

		// Reduce-to-complement.
		for _, block := range blocks {
			if s.cancelled(ctx, deadline) {
				return c, true
			}
			complement := c.Minus(block)
			if query(ctx, complement) == FAIL {
				c = complement
				if g-1 > 2 {
					g = g - 1
				} else {
					g = 2
				}
				progressed = true
				break
			}
		}
		if progressed {
			continue
		}

		// Increase granularity.
		if g < c.Len() {
			g = min(2*g, c.Len())
			continue
		}

		// Done: c is 1-minimal.
		return c, false
	}
}
