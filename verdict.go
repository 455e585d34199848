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

import "fmt"

// Verdict is the classification of a candidate produced by an Oracle.
type Verdict int

const (
	// PASS means the failure does not reproduce on the candidate.
	PASS Verdict = iota
	// FAIL means the failure reproduces on the candidate.
	FAIL
	// UNRESOLVED means the candidate could not be evaluated meaningfully.
	UNRESOLVED
)

func (v Verdict) String() string {
	switch v {
	case PASS:
		return "pass"
	case FAIL:
		return "fail"
	case UNRESOLVED:
		return "unresolved"
	default:
		return fmt.Sprintf("unknown(%d)", int(v))
	}
}
