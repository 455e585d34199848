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

package kway

import (
	"container/heap"
)

// Merge combines already-sorted, disjoint lists of node indices into one
// globally ordered sequence. Unlike a key-value merge, no list wins over
// another: a node id appears in exactly one source list because sibling
// subtrees never share nodes.
func Merge(lists ...[]int) []int {
	h := &Heap{}
	heap.Init(h)

	// push first element of each list
	for i, list := range lists {
		if len(list) > 0 {
			heap.Push(h, Element{
				NodeID: list[0],
				LI:     i,
			})
			lists[i] = list[1:]
		}
	}

	merged := make([]int, 0)

	for h.Len() > 0 {
		// pop minimum element
		e := heap.Pop(h).(Element)
		merged = append(merged, e.NodeID)
		// push next element
		if len(lists[e.LI]) > 0 {
			heap.Push(h, Element{
				NodeID: lists[e.LI][0],
				LI:     e.LI,
			})
			lists[e.LI] = lists[e.LI][1:]
		}
	}

	return merged
}
