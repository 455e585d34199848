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

// requireAllOracle FAILs iff the candidate retains every atom in
// required (spec.md §8 scenario 5: requirement {2,7,13} out of 20 atoms).
func requireAllOracle(required ...int) Oracle {
	set := make(map[int]bool, len(required))
	for _, r := range required {
		set[r] = true
	}
	return OracleFunc(func(_ context.Context, candidate []byte) (Verdict, error) {
		seen := make(map[int]bool, len(required))
		for _, b := range candidate {
			if set[int(b)] {
				seen[int(b)] = true
			}
		}
		if len(seen) == len(set) {
			return FAIL, nil
		}
		return PASS, nil
	})
}

func TestProbDDRequirementSubset(t *testing.T) {
	src := make([]int, 20)
	for i := range src {
		src[i] = i + 1
	}
	oracle := requireAllOracle(2, 7, 13)

	res, err := ProbDD(context.Background(), len(src), oracle, listMaterialize(src), DefaultConfig)
	assert.NoError(t, err)

	var got []int
	for _, idx := range res.Final {
		got = append(got, src[idx])
	}
	assert.Equal(t, []int{2, 7, 13}, got)
	assertOneMinimal(t, oracle, listMaterialize(src), res.Final)
}

func TestProbDDContractViolation(t *testing.T) {
	oracle := requireAllOracle(2, 7, 13)
	src := []int{100, 101, 102}
	_, err := ProbDD(context.Background(), len(src), oracle, listMaterialize(src), DefaultConfig)
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestProbDDEmptyInput(t *testing.T) {
	_, err := ProbDD(context.Background(), 0, requireAllOracle(1), listMaterialize(nil), DefaultConfig)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestGreedyTrialSubsetRespectsTau(t *testing.T) {
	belief := []float64{logOdds(0.01), logOdds(0.02), logOdds(0.9)}
	pinned := []bool{false, false, false}
	survivors := []int{0, 1, 2}

	trial := greedyTrialSubset(survivors, belief, pinned, 0.9)
	assert.Contains(t, trial, 0)
	assert.NotContains(t, trial, 2)
}

func TestUpdateBeliefsIncreasesSurvivorOdds(t *testing.T) {
	belief := []float64{0, 0}
	before := sigmoid(belief[0])
	updateBeliefs(belief, []int{0, 1})
	after := sigmoid(belief[0])
	assert.Greater(t, after, before)
}
