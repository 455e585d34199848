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
	"encoding/csv"
	"io"
	"strconv"
)

// CSVWriter renders Records as rows consumable by any tabular reader
// (spec.md §6). It is intentionally the one place in this module that
// reaches for the standard library over a pack dependency: the schema is
// a flat row of scalars with no nesting, compression, or schema
// evolution need, and encoding/csv already is what every downstream
// plotting tool (the out-of-scope collaborator, spec.md §1) expects to
// read — there is no third-party tabular writer in the retrieved
// dependency set that improves on it.
type CSVWriter struct {
	w *csv.Writer
}

var _header = []string{
	"reducer", "input_id", "initial_size", "final_size", "query_count",
	"cache_hit_count", "fail_count", "pass_count", "unresolved_count",
	"wall_time_nanos", "completion_state",
}

// NewCSVWriter wraps dst and writes the fixed header row immediately.
func NewCSVWriter(dst io.Writer) (*CSVWriter, error) {
	w := csv.NewWriter(dst)
	if err := w.Write(_header); err != nil {
		return nil, err
	}
	return &CSVWriter{w: w}, nil
}

// WriteRecord appends one row for rec.
func (c *CSVWriter) WriteRecord(rec Record) error {
	row := []string{
		rec.Reducer,
		rec.InputID,
		strconv.FormatInt(rec.InitialSize, 10),
		strconv.FormatInt(rec.FinalSize, 10),
		strconv.FormatInt(rec.QueryCount, 10),
		strconv.FormatInt(rec.CacheHitCount, 10),
		strconv.FormatInt(rec.FailCount, 10),
		strconv.FormatInt(rec.PassCount, 10),
		strconv.FormatInt(rec.UnresolvedCount, 10),
		strconv.FormatInt(rec.WallTimeNanos, 10),
		rec.CompletionState,
	}
	return c.w.Write(row)
}

// Flush flushes any buffered rows to the underlying writer.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}
