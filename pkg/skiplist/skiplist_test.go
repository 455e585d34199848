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

package skiplist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	sl := New[string](4, 0.5)
	assert.NotNil(t, sl)
	assert.Equal(t, 4, sl.maxLevel)
	assert.Equal(t, 0.5, sl.p)
	assert.Equal(t, 1, sl.level)
	assert.Equal(t, 0, sl.size)
	assert.NotNil(t, sl.head)
	assert.Equal(t, _head, sl.head.Key)
}

func TestSetAndGet(t *testing.T) {
	sl := New[string](4, 0.5)
	sl.Set("key1", "fail")

	result, found := sl.Get("key1")
	assert.True(t, found)
	assert.Equal(t, "fail", result)

	// Test updating the entry
	sl.Set("key1", "pass")
	result, found = sl.Get("key1")
	assert.True(t, found)
	assert.Equal(t, "pass", result)
}

func TestGetNonExistent(t *testing.T) {
	sl := New[string](4, 0.5)
	result, found := sl.Get("nonexistent")
	assert.False(t, found)
	assert.Equal(t, "", result)
}

func TestDelete(t *testing.T) {
	sl := New[string](4, 0.5)
	sl.Set("key1", "fail")
	sl.Set("key2", "pass")

	// Delete an existing entry
	deleted := sl.Delete("key1")
	assert.True(t, deleted)

	// Verify the entry is deleted
	_, found := sl.Get("key1")
	assert.False(t, found)

	// Verify the other entry still exists
	result, found := sl.Get("key2")
	assert.True(t, found)
	assert.Equal(t, "pass", result)

	// Try to delete a non-existent entry
	deleted = sl.Delete("nonexistent")
	assert.False(t, deleted)
}

func TestAll(t *testing.T) {
	sl := New[string](4, 0.5)
	entries := []Element[string]{
		{Key: "key1", Value: "fail"},
		{Key: "key2", Value: "unresolved"},
		{Key: "key3", Value: "pass"},
	}

	for _, entry := range entries {
		sl.Set(entry.Key, entry.Value)
	}

	all := sl.All()
	assert.Equal(t, len(entries), len(all))
	for i, entry := range entries {
		assert.Equal(t, entry.Key, all[i].Key)
		assert.Equal(t, entry.Value, all[i].Value)
	}
}

func TestReset(t *testing.T) {
	sl := New[string](4, 0.5)
	sl.Set("key1", "fail")

	sl = sl.Reset()
	assert.Equal(t, 0, sl.size)
	assert.Equal(t, 1, sl.level)
	assert.Nil(t, sl.head.next[0])
}
