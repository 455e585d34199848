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

package bench

import (
	"context"
	"time"

	"github.com/DELTA-GR0UP/deltamin/pkg/logger"
)

// Cell is one (reducer, input, oracle) combination the harness drives.
// Run is supplied by the caller so bench stays independent of the root
// package's concrete reducer types; it must construct a fresh cache per
// call (spec.md §5) and return the final counters.
type Cell struct {
	Reducer     string
	InputID     string
	InitialSize int
	Run         func(ctx context.Context) (Counters, Status, error)
}

// Harness iterates a matrix of cells, collecting one Record per cell
// (spec.md §4.8). It does not interpret the records; callers persist them
// via RecordLog and/or CSVWriter.
type Harness struct {
	logger logger.Logger
}

// NewHarness constructs a harness bound to the package logger.
func NewHarness() *Harness {
	return &Harness{logger: logger.GetLogger()}
}

// RunMatrix executes every cell in order and returns one Record per cell.
// A cell whose Run returns an error still produces a record (status
// Timeout, with whatever counters Run returned) so the matrix stays
// rectangular; the error is
// logged, not propagated, matching the harness's role as a passive
// collector (spec.md §4.8 "does not interpret the records").
func (h *Harness) RunMatrix(ctx context.Context, cells []Cell) []Record {
	records := make([]Record, 0, len(cells))
	for _, cell := range cells {
		start := time.Now()
		snap, status, err := cell.Run(ctx)
		wall := time.Since(start)
		if err != nil {
			h.logger.Errorf("bench cell %s/%s failed: %v", cell.Reducer, cell.InputID, err)
			status = Timeout
		}
		records = append(records, NewRecord(cell.Reducer, cell.InputID, cell.InitialSize, status, wall, snap))
	}
	return records
}
