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

import "time"

// Granularity selects how a string/byte input is tokenized into atoms.
type Granularity int

const (
	Bytes Granularity = iota
	Lines
	Custom
)

// InnerReducer selects the sequence reducer HDD runs at each tree level.
type InnerReducer int

const (
	InnerDDMin InnerReducer = iota
	InnerTicTocMin
)

// FingerprintMode selects how a Configuration is turned into a cache key
// (spec.md §3 "Fingerprint", §9 open question).
type FingerprintMode int

const (
	// FingerprintIndexSet uses the sorted index set itself, trivially
	// injective across distinct index sets.
	FingerprintIndexSet FingerprintMode = iota
	// FingerprintContentDigest hashes the materialized candidate bytes,
	// useful when many distinct index sets materialize to the same bytes
	// (e.g. whitespace-only removals) and should share a cache entry.
	FingerprintContentDigest
)

// ProbDDConfig holds the tunables of the ProbDD reducer (spec.md §4.7, §6).
type ProbDDConfig struct {
	// Tau is the joint-removal-probability threshold for the greedy trial
	// subset.
	Tau float64
	// Epsilon is the distance from 1 at which an atom is pinned.
	Epsilon float64
	// StallK is the number of consecutive no-progress iterations, expressed
	// as a multiple of n, after which ProbDD terminates.
	StallK int
}

// Config customizes a reducer run.
type Config struct {
	// Granularity controls how string/byte inputs are split into atoms.
	Granularity Granularity
	// Tokenizer is used when Granularity == Custom.
	Tokenizer func([]byte) [][]byte

	// CacheEnabled toggles the verdict cache. Default true.
	CacheEnabled bool
	// CacheCapacity bounds the cache with LRU eviction; 0 means unbounded.
	CacheCapacity int

	// TimeBudget is an optional wall-clock limit for a run; zero means
	// unbounded.
	TimeBudget time.Duration

	ProbDD ProbDDConfig

	// HDDInnerReducer selects the sequence reducer HDD runs per level.
	HDDInnerReducer InnerReducer

	// FingerprintMode selects the cache-key strategy.
	FingerprintMode FingerprintMode
}

var DefaultConfig = Config{
	Granularity:   Bytes,
	CacheEnabled:  true,
	CacheCapacity: 0,
	TimeBudget:    0,
	ProbDD: ProbDDConfig{
		Tau:     0.7,
		Epsilon: 1e-3,
		StallK:  2,
	},
	HDDInnerReducer: InnerDDMin,
}

func (c *Config) validate() error {
	if c.Granularity == Custom && c.Tokenizer == nil {
		return ErrNilTokenizer
	}
	if c.CacheCapacity < 0 {
		c.CacheCapacity = DefaultConfig.CacheCapacity
	}
	if c.ProbDD.Tau <= 0 || c.ProbDD.Tau >= 1 {
		c.ProbDD.Tau = DefaultConfig.ProbDD.Tau
	}
	if c.ProbDD.Epsilon <= 0 {
		c.ProbDD.Epsilon = DefaultConfig.ProbDD.Epsilon
	}
	if c.ProbDD.StallK <= 0 {
		c.ProbDD.StallK = DefaultConfig.ProbDD.StallK
	}
	return nil
}
