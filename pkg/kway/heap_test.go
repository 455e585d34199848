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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeap(t *testing.T) {
	h := &Heap{}
	heap.Init(h)

	nodes := []int{3, 1, 2}

	for _, id := range nodes {
		heap.Push(h, Element{NodeID: id, LI: 0})
	}

	expectedOrder := []int{1, 2, 3}

	for _, expected := range expectedOrder {
		e := heap.Pop(h).(Element)
		assert.Equal(t, expected, e.NodeID)
	}
}
