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

// Package bench runs the (reducer, input, oracle) matrix and persists
// one Record per cell (spec.md §4.8, §6).
package bench

import (
	"time"
)

// Status is a benchmark cell's completion status.
type Status string

const (
	Completed Status = "completed"
	Cancelled Status = "cancelled"
	Timeout   Status = "timeout"
)

// Record is one row of the benchmark record schema (spec.md §6). Field
// order and types are fixed by the schema; Record implements
// thrift.TStruct (see record_thrift.go) so it can be persisted with the
// same frugal-backed encode path the rest of the module uses for binary
// payloads.
type Record struct {
	Reducer         string
	InputID         string
	InitialSize     int64
	FinalSize       int64
	QueryCount      int64
	CacheHitCount   int64
	FailCount       int64
	PassCount       int64
	UnresolvedCount int64
	WallTimeNanos   int64
	CompletionState string
}

// NewRecord builds a Record from a run's inputs and its final counters.
func NewRecord(reducer, inputID string, initialSize int, status Status, wall time.Duration, snap Counters) Record {
	return Record{
		Reducer:         reducer,
		InputID:         inputID,
		InitialSize:     int64(initialSize),
		FinalSize:       int64(snap.FinalSize),
		QueryCount:      int64(snap.Queries),
		CacheHitCount:   int64(snap.CacheHits),
		FailCount:       int64(snap.Fails),
		PassCount:       int64(snap.Passes),
		UnresolvedCount: int64(snap.Unresolved),
		WallTimeNanos:   wall.Nanoseconds(),
		CompletionState: string(status),
	}
}

// Counters is the subset of root-package Snapshot fields a Record needs.
// Declared here rather than imported so bench has no dependency on the
// root package's reducer implementations, only on the shape of their
// output.
type Counters struct {
	Queries     uint64
	CacheHits   uint64
	Fails       uint64
	Passes      uint64
	Unresolved  uint64
	FinalSize   int
}

