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

package cell

import (
	"iter"
)

// Drain pops elements from the front of a deque as it is advanced. Each step
// looks at the deque as it is at that moment, so elements pushed while
// draining are visited too, and a drain is only exhausted once it finds the
// deque empty.
//
// A Drain does not own any elements. Abandoning it before it is exhausted
// leaves the remaining elements in the deque.
type Drain[T any] struct {
	deque *Deque[T]
}

// Next removes and returns the element currently at the front of the deque.
// It returns false if the deque is empty.
func (d *Drain[T]) Next() (T, bool) {
	return d.deque.PopFront()
}

// Seq returns the drain as a sequence for use with range. Breaking out of the
// loop stops popping; elements still queued at that point stay in the deque.
func (d *Drain[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := d.deque.PopFront()
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}
