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

package cache

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMissOnEmptyCache(t *testing.T) {
	c := New(0)
	_, ok := c.Get("fp1")
	assert.False(t, ok)
	assert.Equal(t, uint64(1), c.Misses())
}

func TestSetThenGetHits(t *testing.T) {
	c := New(0)
	c.Set("fp1", FAIL)
	v, ok := c.Get("fp1")
	assert.True(t, ok)
	assert.Equal(t, FAIL, v)
	assert.Equal(t, uint64(1), c.Hits())
}

func TestEvaluateCallsMissExactlyOnce(t *testing.T) {
	c := New(0)
	var calls atomic.Int64
	miss := func() Verdict {
		calls.Add(1)
		return PASS
	}

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := c.Evaluate("fp1", miss)
			assert.Equal(t, PASS, v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
}

func TestEvaluateIsIdempotentPerFingerprint(t *testing.T) {
	c := New(0)
	calls := map[string]int{}
	var mu sync.Mutex
	miss := func(fp string, v Verdict) func() Verdict {
		return func() Verdict {
			mu.Lock()
			calls[fp]++
			mu.Unlock()
			return v
		}
	}

	for range 5 {
		assert.Equal(t, FAIL, c.Evaluate("fp-a", miss("fp-a", FAIL)))
		assert.Equal(t, PASS, c.Evaluate("fp-b", miss("fp-b", PASS)))
	}

	assert.Equal(t, 1, calls["fp-a"])
	assert.Equal(t, 1, calls["fp-b"])
}

func TestBoundedCacheEvicts(t *testing.T) {
	c := New(_shards) // one slot per shard

	// Write many more keys than capacity allows, so shards evict; the
	// most recently set key must still be answered by Get.
	var last string
	for i := range 200 {
		last = keyFor(i)
		c.Set(last, FAIL)
	}

	v, ok := c.Get(last)
	assert.True(t, ok)
	assert.Equal(t, FAIL, v)
}

func TestSetInconsistencyIsCounted(t *testing.T) {
	c := New(0)
	c.Set("fp1", FAIL)
	assert.Equal(t, uint64(0), c.Inconsistencies())

	c.Set("fp1", PASS) // bypasses Evaluate's at-most-once guarantee on purpose
	assert.Equal(t, uint64(1), c.Inconsistencies())

	v, ok := c.Get("fp1")
	assert.True(t, ok)
	assert.Equal(t, FAIL, v, "first-stored verdict wins")
}

func keyFor(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return string(letters[i%len(letters)]) + string(rune('0'+i%10)) + string(rune('A'+i%26))
}
