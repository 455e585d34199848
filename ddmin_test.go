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
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// byteMaterialize renders a Configuration as the selected bytes of src,
// in index order — the granularity every scenario in this file uses.
func byteMaterialize(src []byte) func(Configuration) []byte {
	return func(c Configuration) []byte {
		out := make([]byte, len(c))
		for i, idx := range c {
			out[i] = src[idx]
		}
		return out
	}
}

// containsOracle FAILs iff the candidate contains needle as a substring
// (spec.md §8 scenario 1).
func containsOracle(needle string) Oracle {
	return OracleFunc(func(_ context.Context, candidate []byte) (Verdict, error) {
		if bytes.Contains(candidate, []byte(needle)) {
			return FAIL, nil
		}
		return PASS, nil
	})
}

func TestDDMinSingleCharacterOracle(t *testing.T) {
	src := []byte("xxxabcxxx")
	oracle := containsOracle("abc")

	res, err := DDMin(context.Background(), len(src), oracle, byteMaterialize(src), DefaultConfig)
	assert.NoError(t, err)
	assert.Equal(t, "abc", string(byteMaterialize(src)(res.Final)))
	assert.Greater(t, res.Snapshot.CacheHits, uint64(0))
	assertOneMinimal(t, oracle, byteMaterialize(src), res.Final)
}

// disjointOracle FAILs iff the candidate (a set of 1-indexed integers)
// contains both a and b (spec.md §8 scenario 2).
func disjointOracle(a, b int) Oracle {
	return OracleFunc(func(_ context.Context, candidate []byte) (Verdict, error) {
		var hasA, hasB bool
		for _, v := range candidate {
			if int(v) == a {
				hasA = true
			}
			if int(v) == b {
				hasB = true
			}
		}
		if hasA && hasB {
			return FAIL, nil
		}
		return PASS, nil
	})
}

func listMaterialize(src []int) func(Configuration) []byte {
	return func(c Configuration) []byte {
		out := make([]byte, len(c))
		for i, idx := range c {
			out[i] = byte(src[idx])
		}
		return out
	}
}

func TestDDMinDisjointRequiredAtoms(t *testing.T) {
	src := []int{1, 2, 3, 4, 5, 6, 7, 8}
	oracle := disjointOracle(3, 6)

	res, err := DDMin(context.Background(), len(src), oracle, listMaterialize(src), DefaultConfig)
	assert.NoError(t, err)

	var got []int
	for _, idx := range res.Final {
		got = append(got, src[idx])
	}
	assert.Equal(t, []int{3, 6}, got)
}

func TestDDMinContractViolation(t *testing.T) {
	src := []byte("xxxxxxxxx")
	oracle := containsOracle("abc")

	_, err := DDMin(context.Background(), len(src), oracle, byteMaterialize(src), DefaultConfig)
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestDDMinEmptyInput(t *testing.T) {
	_, err := DDMin(context.Background(), 0, containsOracle("x"), byteMaterialize(nil), DefaultConfig)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

// unresolvedBelowThreeOracle returns UNRESOLVED for any candidate
// smaller than 3 atoms, FAIL for the full input only, PASS otherwise
// (spec.md §8 scenario 6).
func unresolvedBelowThreeOracle(fullLen int) Oracle {
	return OracleFunc(func(_ context.Context, candidate []byte) (Verdict, error) {
		if len(candidate) < 3 {
			return UNRESOLVED, nil
		}
		if len(candidate) == fullLen {
			return FAIL, nil
		}
		return PASS, nil
	})
}

func TestDDMinUnresolvedHandling(t *testing.T) {
	src := []byte("abcdefgh")
	oracle := unresolvedBelowThreeOracle(len(src))

	res, err := DDMin(context.Background(), len(src), oracle, byteMaterialize(src), DefaultConfig)
	assert.NoError(t, err)
	assert.Equal(t, len(src), res.Final.Len())
	assert.Greater(t, res.Snapshot.Unresolved, uint64(0))
}

// assertOneMinimal checks that removing any single atom from final no
// longer reproduces FAIL (spec.md §8 "1-minimality").
func assertOneMinimal(t *testing.T, oracle Oracle, materialize func(Configuration) []byte, final Configuration) {
	t.Helper()
	for _, idx := range final {
		reduced := final.Without(idx)
		v, err := oracle.Query(context.Background(), materialize(reduced))
		assert.NoError(t, err)
		assert.NotEqual(t, FAIL, v, "removing atom %d should not still FAIL", idx)
	}
}
