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

// Package input gives reducers a uniform, immutable view over a
// reducible sequence: its atom count, its atoms, and the materialized
// bytes for any index subset (spec.md §4.1).
package input

import (
	"bytes"
	"os"
)

// Atom is the element type a sequence reducer operates over. Reducers
// require only equality, so atoms may be bytes, lines, or tokens.
type Atom interface {
	comparable
}

// Sequence is the uniform view a sequence reducer drives through the
// oracle. It is immutable after construction: reducers operate on index
// sets over it, never on the underlying buffer.
type Sequence[A Atom] struct {
	atoms      []A
	materialer func([]A) []byte
}

// Size reports the number of atoms.
func (s *Sequence[A]) Size() int { return len(s.atoms) }

// Atoms returns a read-only view of the full atom buffer.
func (s *Sequence[A]) Atoms() []A { return s.atoms }

// Materialize renders the external byte representation for the atoms at
// the given indices, preserving index order. Indices must already be
// sorted ascending (the Configuration invariant).
func (s *Sequence[A]) Materialize(indices []int) []byte {
	selected := make([]A, len(indices))
	for i, idx := range indices {
		selected[i] = s.atoms[idx]
	}
	return s.materialer(selected)
}

// NewBytes wraps raw bytes as a byte-granularity sequence.
func NewBytes(data []byte) *Sequence[byte] {
	return &Sequence[byte]{
		atoms: append([]byte(nil), data...),
		materialer: func(a []byte) []byte {
			return append([]byte{}, a...)
		},
	}
}

// NewLines wraps text as a line-granularity sequence. Lines are
// rejoined with "\n" on materialization; a trailing newline in the
// source is preserved as an empty trailing atom.
func NewLines(data []byte) *Sequence[string] {
	lines := bytes.Split(data, []byte("\n"))
	atoms := make([]string, len(lines))
	for i, l := range lines {
		atoms[i] = string(l)
	}
	return &Sequence[string]{
		atoms: atoms,
		materialer: func(a []string) []byte {
			return []byte(join(a, "\n"))
		},
	}
}

// Tokenizer splits raw bytes into a caller-defined token stream for a
// Custom granularity.
type Tokenizer func([]byte) [][]byte

// NewTokenized wraps raw bytes using a caller-supplied tokenizer,
// concatenating tokens with no separator on materialization (the
// tokenizer is responsible for any separators it cares about, e.g. by
// keeping them as part of a token).
func NewTokenized(data []byte, tok Tokenizer) *Sequence[string] {
	tokens := tok(data)
	atoms := make([]string, len(tokens))
	for i, t := range tokens {
		atoms[i] = string(t)
	}
	return &Sequence[string]{
		atoms: atoms,
		materialer: func(a []string) []byte {
			return []byte(join(a, ""))
		},
	}
}

// FromFile reads a file once at construction time; the file is not
// re-read during reduction (spec.md §4.1, §6).
func FromFile(path string, g func([]byte) *Sequence[byte]) (*Sequence[byte], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return g(data), nil
}

func join(parts []string, sep string) string {
	if len(parts) == 0 {
		return ""
	}
	var b bytes.Buffer
	for i, p := range parts {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(p)
	}
	return b.String()
}
