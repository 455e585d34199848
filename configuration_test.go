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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationSplitEvenly(t *testing.T) {
	c := full(6)
	blocks := c.Split(3)
	assert.Len(t, blocks, 3)
	for _, b := range blocks {
		assert.Equal(t, 2, b.Len())
	}
}

func TestConfigurationSplitUneven(t *testing.T) {
	c := full(7)
	blocks := c.Split(3)
	assert.Len(t, blocks, 3)
	total := 0
	for _, b := range blocks {
		total += b.Len()
	}
	assert.Equal(t, 7, total)
}

func TestConfigurationSplitGranularityAboveLength(t *testing.T) {
	c := full(2)
	blocks := c.Split(10)
	assert.Len(t, blocks, 2)
}

func TestConfigurationMinus(t *testing.T) {
	c := Configuration{1, 2, 3, 4}
	got := c.Minus(Configuration{2, 4})
	assert.Equal(t, Configuration{1, 3}, got)
}

func TestConfigurationIntersect(t *testing.T) {
	c := Configuration{1, 2, 3, 4}
	got := c.Intersect(Configuration{2, 4, 5})
	assert.Equal(t, Configuration{2, 4}, got)
}

func TestConfigurationUnion(t *testing.T) {
	c := Configuration{1, 3}
	got := c.Union(Configuration{2, 3})
	assert.Equal(t, Configuration{1, 2, 3}, got)
}

func TestConfigurationWithout(t *testing.T) {
	c := Configuration{1, 2, 3}
	got := c.Without(2)
	assert.Equal(t, Configuration{1, 3}, got)
}

func TestConfigurationContains(t *testing.T) {
	c := Configuration{1, 3, 5}
	assert.True(t, c.Contains(3))
	assert.False(t, c.Contains(4))
}
