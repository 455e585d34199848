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

import "slices"

// Configuration is an ordered subset of atom indices (spec.md §3). It is
// represented as a sorted, duplicate-free slice: cheap to materialize in
// order, cheap to diff and intersect, and stable as a fingerprint source.
type Configuration []int

// full returns the configuration containing every index in [0, n).
func full(n int) Configuration {
	c := make(Configuration, n)
	for i := range c {
		c[i] = i
	}
	return c
}

// Len reports the number of atoms in the configuration.
func (c Configuration) Len() int { return len(c) }

// Contains reports whether idx is present.
func (c Configuration) Contains(idx int) bool {
	_, found := slices.BinarySearch(c, idx)
	return found
}

// Union returns the sorted union of c and other.
func (c Configuration) Union(other Configuration) Configuration {
	set := make(map[int]struct{}, len(c)+len(other))
	for _, i := range c {
		set[i] = struct{}{}
	}
	for _, i := range other {
		set[i] = struct{}{}
	}
	return setToConfiguration(set)
}

// Minus returns c with every index in other removed (relative complement).
func (c Configuration) Minus(other Configuration) Configuration {
	if len(other) == 0 {
		return slices.Clone(c)
	}
	exclude := make(map[int]struct{}, len(other))
	for _, i := range other {
		exclude[i] = struct{}{}
	}
	res := make(Configuration, 0, len(c))
	for _, i := range c {
		if _, skip := exclude[i]; !skip {
			res = append(res, i)
		}
	}
	return res
}

// Intersect returns the sorted intersection of c and other.
func (c Configuration) Intersect(other Configuration) Configuration {
	present := make(map[int]struct{}, len(other))
	for _, i := range other {
		present[i] = struct{}{}
	}
	res := make(Configuration, 0, min(len(c), len(other)))
	for _, i := range c {
		if _, ok := present[i]; ok {
			res = append(res, i)
		}
	}
	return res
}

// Without returns c with a single index removed.
func (c Configuration) Without(idx int) Configuration {
	res := make(Configuration, 0, len(c))
	for _, i := range c {
		if i != idx {
			res = append(res, i)
		}
	}
	return res
}

// Split partitions c into g contiguous blocks of size ceil(|c|/g) or
// floor(|c|/g), as required by ddmin (spec.md §4.4 step 1).
func (c Configuration) Split(g int) []Configuration {
	n := len(c)
	if g > n {
		g = n
	}
	if g < 1 {
		g = 1
	}
	blocks := make([]Configuration, 0, g)
	base := n / g
	rem := n % g
	off := 0
	for i := 0; i < g; i++ {
		size := base
		if i < rem {
			size++
		}
		blocks = append(blocks, c[off:off+size])
		off += size
	}
	return blocks
}

func setToConfiguration(set map[int]struct{}) Configuration {
	res := make(Configuration, 0, len(set))
	for i := range set {
		res = append(res, i)
	}
	slices.Sort(res)
	return res
}
