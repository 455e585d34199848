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
	"encoding/binary"

	"github.com/DELTA-GR0UP/deltamin/pkg/bufferpool"
	"github.com/DELTA-GR0UP/deltamin/pkg/utils"
	rootutils "github.com/DELTA-GR0UP/deltamin/utils"
)

// Fingerprint is a deterministic identity for a Configuration, used as the
// verdict cache key (spec.md §3). Two configurations with different
// materializations must never collide.
type Fingerprint string

// fingerprintIndexSet renders the sorted index set itself as the
// fingerprint. It is trivially injective: distinct sorted index sets
// produce distinct byte strings. Encoding mirrors the teacher's
// table/index.go Encode(): a pooled buffer plus a sticky-error binary
// writer.
func fingerprintIndexSet(c Configuration) Fingerprint {
	buf := bufferpool.Pool.Get()
	defer bufferpool.Pool.Put(buf)

	w := rootutils.NewErrorWriter(buf)
	w.Write(binary.LittleEndian, uint32(len(c)))
	for _, idx := range c {
		w.Write(binary.LittleEndian, uint64(idx))
	}
	// w.Error() is ignored: writing to a bytes.Buffer never fails.
	return Fingerprint(buf.Bytes())
}

// fingerprintDigest renders a sha1 digest (truncated to 8 bytes, the
// teacher's pkg/utils.Magic pattern) over the materialized bytes of the
// candidate.
func fingerprintDigest(materialized []byte) Fingerprint {
	magic := utils.Magic(string(materialized))
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], magic)
	return Fingerprint(b[:])
}
