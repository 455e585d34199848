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
	"sync/atomic"
	"time"
)

// Counters tracks the bookkeeping of a single reducer run (spec.md §3).
// All fields are monotonic during a run and read-only once the run
// returns.
type Counters struct {
	queries     atomic.Uint64
	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64
	fails       atomic.Uint64
	passes      atomic.Uint64
	unresolved  atomic.Uint64

	start time.Time
}

func newCounters() *Counters {
	return &Counters{start: time.Now()}
}

func (c *Counters) recordQuery(v Verdict) {
	c.queries.Add(1)
	switch v {
	case FAIL:
		c.fails.Add(1)
	case PASS:
		c.passes.Add(1)
	case UNRESOLVED:
		c.unresolved.Add(1)
	}
}

func (c *Counters) recordCacheHit()  { c.cacheHits.Add(1) }
func (c *Counters) recordCacheMiss() { c.cacheMisses.Add(1) }

// Snapshot is an immutable view of Counters taken at the end of a run.
type Snapshot struct {
	Queries           uint64
	CacheHits         uint64
	CacheMisses       uint64
	Fails             uint64
	Passes            uint64
	Unresolved        uint64
	CacheInconsistent uint64
	FinalSize         int
	WallTime          time.Duration
	Cancelled         bool
}

func (c *Counters) snapshot(finalSize int, cancelled bool, cacheInconsistent uint64) Snapshot {
	return Snapshot{
		Queries:           c.queries.Load(),
		CacheHits:         c.cacheHits.Load(),
		CacheMisses:       c.cacheMisses.Load(),
		Fails:             c.fails.Load(),
		Passes:            c.passes.Load(),
		Unresolved:        c.unresolved.Load(),
		CacheInconsistent: cacheInconsistent,
		FinalSize:         finalSize,
		WallTime:          time.Since(c.start),
		Cancelled:         cancelled,
	}
}
