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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicTocMinSingleCharacterOracle(t *testing.T) {
	src := []byte("xxxabcxxx")
	oracle := containsOracle("abc")

	res, err := TicTocMin(context.Background(), len(src), oracle, byteMaterialize(src), DefaultConfig)
	assert.NoError(t, err)
	assert.Equal(t, "abc", string(byteMaterialize(src)(res.Final)))
	assertOneMinimal(t, oracle, byteMaterialize(src), res.Final)
}

func TestTicTocMinDisjointRequiredAtoms(t *testing.T) {
	src := []int{1, 2, 3, 4, 5, 6, 7, 8}
	oracle := disjointOracle(3, 6)

	res, err := TicTocMin(context.Background(), len(src), oracle, listMaterialize(src), DefaultConfig)
	assert.NoError(t, err)

	var got []int
	for _, idx := range res.Final {
		got = append(got, src[idx])
	}
	assert.Equal(t, []int{3, 6}, got)
}

// alternatingOracle FAILs iff the candidate retains at least one 'a' and
// at least one 'b' of an alternating "abababab" pattern (spec.md §8
// scenario 3): it never certifies past 1-minimality, so TicTocMin may
// land on a different but equally 1-minimal configuration than ddmin.
func alternatingOracle() Oracle {
	return OracleFunc(func(_ context.Context, candidate []byte) (Verdict, error) {
		var hasA, hasB bool
		for _, c := range candidate {
			if c == 'a' {
				hasA = true
			}
			if c == 'b' {
				hasB = true
			}
		}
		if hasA && hasB {
			return FAIL, nil
		}
		return PASS, nil
	})
}

func TestTicTocMinAlternatingPatternIsOneMinimal(t *testing.T) {
	src := []byte("abababab")
	oracle := alternatingOracle()

	res, err := TicTocMin(context.Background(), len(src), oracle, byteMaterialize(src), DefaultConfig)
	assert.NoError(t, err)
	assertOneMinimal(t, oracle, byteMaterialize(src), res.Final)
}

func TestTicTocMinContractViolation(t *testing.T) {
	src := []byte("xxxxxxxxx")
	oracle := containsOracle("abc")

	_, err := TicTocMin(context.Background(), len(src), oracle, byteMaterialize(src), DefaultConfig)
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestTicTocMinEmptyInput(t *testing.T) {
	_, err := TicTocMin(context.Background(), 0, containsOracle("x"), byteMaterialize(nil), DefaultConfig)
	assert.ErrorIs(t, err, ErrEmptyInput)
}
