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
	"sync/atomic"
	"time"

	"github.com/DELTA-GR0UP/deltamin/cache"
	"github.com/DELTA-GR0UP/deltamin/pkg/logger"
	"github.com/DELTA-GR0UP/deltamin/pkg/watermark"
)

// Result is what every reducer returns: the final configuration, its
// counters, and whether the run was cancelled before converging.
type Result struct {
	Final     Configuration
	Snapshot  Snapshot
	Cancelled bool
}

// session owns the resources a single reducer run needs: exactly one
// verdict cache and one watermark, matching the teacher's one-DB-owns-
// one-levelManager ownership style (spec.md §5).
type session struct {
	oracle Oracle
	cache  *cache.Cache
	wm     *watermark.WaterMark
	seq    atomic.Uint64
	logger logger.Logger

	counters *Counters
	cfg      *Config

	fingerprint func(Configuration, []byte) Fingerprint
	materialize func(Configuration) []byte
}

func newSession(cfg Config, oracle Oracle, materialize func(Configuration) []byte) (*session, error) {
	if oracle == nil {
		return nil, ErrNilOracle
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &session{
		oracle:      safeOracle(oracle),
		wm:          watermark.New(),
		logger:      logger.GetLogger(),
		counters:    newCounters(),
		cfg:         &cfg,
		materialize: materialize,
	}
	if cfg.CacheEnabled {
		s.cache = cache.New(cfg.CacheCapacity)
	}

	switch cfg.FingerprintMode {
	case FingerprintContentDigest:
		s.fingerprint = func(_ Configuration, materialized []byte) Fingerprint {
			return fingerprintDigest(materialized)
		}
	default:
		s.fingerprint = func(c Configuration, _ []byte) Fingerprint {
			return fingerprintIndexSet(c)
		}
	}
	return s, nil
}

// query runs the oracle for configuration c, going through the cache
// when enabled. No per-query timeout is applied. Every query is
// bracketed by a watermark Begin/Done pair keyed by a monotonically
// increasing sequence number, so cancellation can wait for in-flight
// queries to settle before reading the best-known FAIL configuration
// (spec.md §5).
func (s *session) query(ctx context.Context, c Configuration) Verdict {
	materialized := s.materialize(c)
	return s.queryMaterialized(ctx, materialized, s.fingerprint(c, materialized))
}

// queryBytes runs the oracle over an already-materialized candidate,
// fingerprinting by content digest. HDD uses this directly: its
// candidates come from pruning a tree, which has no stable flat
// Configuration to feed s.fingerprint.
func (s *session) queryBytes(ctx context.Context, materialized []byte) Verdict {
	return s.queryMaterialized(ctx, materialized, fingerprintDigest(materialized))
}

func (s *session) queryMaterialized(ctx context.Context, materialized []byte, fp Fingerprint) Verdict {
	ts := s.seq.Add(1)
	s.wm.Begin(ts)
	defer s.wm.Done(ts)

	eval := func() Verdict {
		v, err := s.oracle.Query(ctx, materialized)
		if err != nil {
			// safeOracle never returns an error; this is defensive only.
			s.logger.Warnf("oracle returned an error despite safeOracle: %v", err)
			v = UNRESOLVED
		}
		s.counters.recordQuery(v)
		return v
	}

	if s.cache == nil {
		return eval()
	}

	key := string(fp)
	if v, ok := s.cache.Get(key); ok {
		s.counters.recordCacheHit()
		return Verdict(v)
	}
	s.counters.recordCacheMiss()

	result := s.cache.Evaluate(key, func() cache.Verdict {
		return cache.Verdict(eval())
	})
	return Verdict(result)
}

// cancelled reports whether ctx has been cancelled or the configured
// time budget has elapsed.
func (s *session) cancelled(ctx context.Context, deadline time.Time) bool {
	if ctx.Err() != nil {
		return true
	}
	return !deadline.IsZero() && time.Now().After(deadline)
}

// drain waits for every query issued so far to finish, so a cancelled
// run never loses an in-flight verdict (spec.md §5).
func (s *session) drain(ctx context.Context) {
	last := s.seq.Load()
	_ = s.wm.WaitForMark(ctx, last)
}

func (s *session) result(final Configuration, cancelled bool) Result {
	return Result{
		Final:     final,
		Snapshot:  s.counters.snapshot(final.Len(), cancelled, s.cacheInconsistencies()),
		Cancelled: cancelled,
	}
}

// cacheInconsistencies reports how many times the cache observed two
// different verdicts stored for the same fingerprint, 0 when caching is
// disabled.
func (s *session) cacheInconsistencies() uint64 {
	if s.cache == nil {
		return 0
	}
	return s.cache.Inconsistencies()
}

// close releases the resources a session owns. Every reducer entry
// point must defer this: watermark.New starts a background goroutine
// that only exits on Stop (spec.md §5, grounded on the teacher's
// oracle.go Stop() stopping its own readMark/commitMark).
func (s *session) close() {
	s.wm.Stop()
}

func deadlineFor(budget time.Duration) time.Time {
	if budget <= 0 {
		return time.Time{}
	}
	return time.Now().Add(budget)
}
