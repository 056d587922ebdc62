// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package main

import (
	"math/bits"

	"github.com/optakt/deque-cell/service/action"
)

// Workload is the data shared by the actions of a run.
type Workload struct {
	Executed uint
	Deepest  uint
}

// Tree builds actions that each spawn fanout children until they reach the
// given depth. Children are queued behind the pending actions, or in front of
// them when front is set, which walks the tree depth-first.
type Tree struct {
	Depth  uint
	Fanout uint
	Front  bool
}

// Seed returns the root action of a tree.
func (t Tree) Seed() action.Action[Workload] {
	return t.node(0)
}

// Size returns the number of actions a single tree runs. It returns false if
// the number does not fit in a uint.
func (t Tree) Size() (uint, bool) {
	size := uint(1)
	level := uint(1)
	for i := uint(0); i < t.Depth; i++ {
		hi, lo := bits.Mul(level, t.Fanout)
		if hi != 0 {
			return 0, false
		}
		level = lo
		var carry uint
		size, carry = bits.Add(size, level, 0)
		if carry != 0 {
			return 0, false
		}
	}
	return size, true
}

// Total returns the number of actions run by the given number of trees. It
// returns false if the number does not fit in a uint.
func (t Tree) Total(seeds uint) (uint, bool) {
	size, ok := t.Size()
	if !ok {
		return 0, false
	}
	hi, total := bits.Mul(size, seeds)
	if hi != 0 {
		return 0, false
	}
	return total, true
}

func (t Tree) node(level uint) action.Action[Workload] {
	return func(c *action.Context[Workload]) {
		c.Data.Executed++
		if level > c.Data.Deepest {
			c.Data.Deepest = level
		}
		if level >= t.Depth {
			return
		}
		for i := uint(0); i < t.Fanout; i++ {
			child := t.node(level + 1)
			if t.Front {
				c.DeferFirst(child)
				continue
			}
			c.Defer(child)
		}
	}
}
