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

// Package deltamin isolates a minimal failure-inducing input from a larger
// input that triggers some observable failure.
//
// Given an input and an oracle that classifies candidates as FAIL, PASS or
// UNRESOLVED, a reducer searches for a locally minimal subset that still
// reproduces FAIL. Four reducers are provided: ddmin (classical recursive
// bisection), TicTocMin (bidirectional granularity-aware sweeps), HDD
// (hierarchical reduction over a parse tree) and ProbDD (probabilistic
// reduction driven by per-atom belief estimates).
package deltamin
