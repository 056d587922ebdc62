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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeque_Guard(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		d := New[int]()
		d.PushBack(1)

		assert.Equal(t, opNone, operation(d.guard.holder.Load()))
	})

	t.Run("handles push from update callback", func(t *testing.T) {
		t.Parallel()

		d := New[int]()
		d.PushBack(1)

		assert.PanicsWithValue(t, "cell: PushBack called while deque is borrowed by Update", func() {
			d.Update(0, func(v *int) {
				d.PushBack(2)
			})
		})

		assert.Equal(t, opNone, operation(d.guard.holder.Load()))
		assert.Equal(t, 1, d.Len())
	})

	t.Run("handles nested update", func(t *testing.T) {
		t.Parallel()

		d := New[int]()
		d.PushBack(1)
		d.PushBack(2)

		assert.PanicsWithValue(t, "cell: Update called while deque is borrowed by Update", func() {
			d.Update(0, func(v *int) {
				d.Update(1, func(w *int) {
					*w = *v
				})
			})
		})
	})

	t.Run("handles read from update callback", func(t *testing.T) {
		t.Parallel()

		d := New[int]()
		d.PushBack(1)

		assert.PanicsWithValue(t, "cell: Len called while deque is borrowed by Update", func() {
			d.Update(0, func(v *int) {
				*v = d.Len()
			})
		})
	})

	t.Run("releases borrow when callback panics", func(t *testing.T) {
		t.Parallel()

		d := New[int]()
		d.PushBack(1)

		assert.Panics(t, func() {
			d.Update(0, func(v *int) {
				panic("boom")
			})
		})

		d.PushBack(2)
		assert.Equal(t, 2, d.Len())
	})

	t.Run("allows other deques in update callback", func(t *testing.T) {
		t.Parallel()

		d := New[int]()
		d.PushBack(1)
		other := New[int]()

		ok := d.Update(0, func(v *int) {
			other.PushBack(*v)
		})

		require.True(t, ok)
		got, ok := other.PopFront()
		require.True(t, ok)
		assert.Equal(t, 1, got)
	})
}

func TestDeque_ZeroValue(t *testing.T) {
	var d Deque[int]

	assert.True(t, d.IsEmpty())
	assert.Zero(t, d.Cap())

	d.PushBack(1)
	d.PushFront(0)
	d.Reserve(10)

	assert.GreaterOrEqual(t, d.Cap(), 12)
	got, ok := d.PopFront()
	require.True(t, ok)
	assert.Equal(t, 0, got)
	got, ok = d.PopBack()
	require.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestBorrowedMessage(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		assert.Equal(t, "cell: Cap called while deque is borrowed by Update", borrowedMessage(opCap, opUpdate))
	})

	t.Run("handles released holder", func(t *testing.T) {
		got := borrowedMessage(opPushBack, opNone)

		assert.Equal(t, "cell: PushBack called while deque is borrowed from another goroutine", got)
		assert.NotContains(t, got, "none")
	})
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "PopFront", opPopFront.String())
	assert.Equal(t, "none", opNone.String())
	assert.Equal(t, "operation(99)", operation(99).String())
}
