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

	"github.com/DELTA-GR0UP/deltamin/input"
)

// buildSequence renders data into the atom sequence cfg.Granularity
// selects (spec.md §4.1), returning the atom count and a materializer
// from a Configuration back to the bytes the oracle consumes — the two
// inputs every sequence reducer (DDMin, TicTocMin, ProbDD) is driven by.
func (cfg Config) buildSequence(data []byte) (int, func(Configuration) []byte) {
	switch cfg.Granularity {
	case Lines:
		seq := input.NewLines(data)
		return seq.Size(), func(c Configuration) []byte { return seq.Materialize(c) }
	case Custom:
		seq := input.NewTokenized(data, cfg.Tokenizer)
		return seq.Size(), func(c Configuration) []byte { return seq.Materialize(c) }
	default:
		seq := input.NewBytes(data)
		return seq.Size(), func(c Configuration) []byte { return seq.Materialize(c) }
	}
}

// ReduceDDMin runs DDMin over data, splitting it into atoms per
// cfg.Granularity before reducing. This is the byte-oriented entry
// point most callers want; DDMin itself stays atom-count-and-
// materializer-agnostic so HDD's inner loop and tests can drive it over
// any sequence shape.
func ReduceDDMin(ctx context.Context, data []byte, oracle Oracle, cfg Config) (Result, error) {
	if cfg.Granularity == Custom && cfg.Tokenizer == nil {
		return Result{}, ErrNilTokenizer
	}
	n, materialize := cfg.buildSequence(data)
	return DDMin(ctx, n, oracle, materialize, cfg)
}

// ReduceTicTocMin runs TicTocMin over data, splitting it into atoms per
// cfg.Granularity before reducing.
func ReduceTicTocMin(ctx context.Context, data []byte, oracle Oracle, cfg Config) (Result, error) {
	if cfg.Granularity == Custom && cfg.Tokenizer == nil {
		return Result{}, ErrNilTokenizer
	}
	n, materialize := cfg.buildSequence(data)
	return TicTocMin(ctx, n, oracle, materialize, cfg)
}

// ReduceProbDD runs ProbDD over data, splitting it into atoms per
// cfg.Granularity before reducing.
func ReduceProbDD(ctx context.Context, data []byte, oracle Oracle, cfg Config) (Result, error) {
	if cfg.Granularity == Custom && cfg.Tokenizer == nil {
		return Result{}, ErrNilTokenizer
	}
	n, materialize := cfg.buildSequence(data)
	return ProbDD(ctx, n, oracle, materialize, cfg)
}
