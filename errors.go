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

import "errors"

var (
	// ErrNilOracle is returned when a reducer is started without an oracle.
	ErrNilOracle = errors.New("deltamin: oracle must be provided")
	// ErrEmptyInput is returned when a reducer is started with a zero-atom input.
	ErrEmptyInput = errors.New("deltamin: input is empty")
	// ErrContractViolation is returned when the full input does not reproduce
	// FAIL on entry, violating the reducer's precondition.
	ErrContractViolation = errors.New("deltamin: full input does not reproduce FAIL")
	// ErrTreeIllegal describes a removal that would yield a syntactically
	// invalid candidate with no placeholder available. HDD does not
	// return it: such a candidate is classified UNRESOLVED instead.
	ErrTreeIllegal = errors.New("deltamin: removal yields an invalid tree without a placeholder")
	// ErrNilTokenizer is returned when Config.Granularity is Custom without
	// a Tokenizer.
	ErrNilTokenizer = errors.New("deltamin: custom granularity requires a tokenizer")
)
