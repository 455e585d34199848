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

	"github.com/DELTA-GR0UP/deltamin/pkg/logger"
)

// Oracle classifies a materialized candidate. Implementations may own
// external resources (subprocesses, files) and are responsible for their
// own cleanup under all exit paths (spec.md §6). An oracle is assumed
// deterministic in verdict, even though its latency may vary.
//
// A context deadline or cancellation reaching the oracle must be mapped
// to UNRESOLVED rather than propagated as a hard error, so a reducer can
// keep making progress under a time budget (spec.md §7).
type Oracle interface {
	Query(ctx context.Context, candidate []byte) (Verdict, error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(ctx context.Context, candidate []byte) (Verdict, error)

func (f OracleFunc) Query(ctx context.Context, candidate []byte) (Verdict, error) {
	return f(ctx, candidate)
}

// safeOracle wraps an Oracle so a context error surfacing from the
// underlying call is reported as UNRESOLVED rather than propagated,
// preserving soundness under per-query timeouts (spec.md §7).
func safeOracle(o Oracle) Oracle {
	log := logger.GetLogger()
	return OracleFunc(func(ctx context.Context, candidate []byte) (Verdict, error) {
		v, err := o.Query(ctx, candidate)
		if err != nil {
			log.Warnf("oracle exception, treating as UNRESOLVED: %v", err)
			return UNRESOLVED, nil
		}
		return v, nil
	})
}
