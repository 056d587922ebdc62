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
	"math/bits"

	"github.com/gammazero/deque"
)

// maxCapacity is the largest power of two the ring buffer can be sized to.
const maxCapacity = 1 << (bits.UintSize - 2)

// Deque is a double-ended queue that can be mutated by every holder of a
// pointer to it, including code that runs while the deque is being drained.
//
// Every method borrows the underlying ring buffer for the duration of its own
// body and releases it before returning. Overlapping borrows on the same deque
// are a programming error and cause a panic. The only method that runs foreign
// code while holding a borrow is Update, so the deque must not be used from
// within an Update callback.
//
// A Deque must only be used from a single goroutine. The zero value is an empty
// deque ready to use, and a Deque must not be copied after first use.
type Deque[T any] struct {
	guard  guard
	ring   *deque.Deque[T]
	minExp uint
}

// New creates an empty deque. The optional capacity reserves room for at least
// that many elements up front. It panics if the capacity exceeds the largest
// possible ring buffer.
func New[T any](capacity ...int) *Deque[T] {
	var ring *deque.Deque[T]
	if len(capacity) > 0 && capacity[0] > 0 {
		if capacity[0] > maxCapacity {
			panic("cell: capacity overflow")
		}
		ring = deque.New[T](capacity[0])
	} else {
		ring = deque.New[T]()
	}
	d := Deque[T]{
		ring: ring,
	}
	return &d
}

// Len returns the number of elements in the deque.
func (d *Deque[T]) Len() int {
	d.guard.acquire(opLen)
	defer d.guard.release()
	return d.buffer().Len()
}

// Cap returns the number of elements the deque can hold before it has to grow.
func (d *Deque[T]) Cap() int {
	d.guard.acquire(opCap)
	defer d.guard.release()
	return d.buffer().Cap()
}

// IsEmpty returns whether the deque holds no elements.
func (d *Deque[T]) IsEmpty() bool {
	d.guard.acquire(opIsEmpty)
	defer d.guard.release()
	return d.buffer().Len() == 0
}

// Front returns a copy of the element at the front of the deque, without
// removing it. It returns false if the deque is empty.
func (d *Deque[T]) Front() (T, bool) {
	d.guard.acquire(opFront)
	defer d.guard.release()
	ring := d.buffer()
	if ring.Len() == 0 {
		var zero T
		return zero, false
	}
	return ring.Front(), true
}

// Back returns a copy of the element at the back of the deque, without
// removing it. It returns false if the deque is empty.
func (d *Deque[T]) Back() (T, bool) {
	d.guard.acquire(opBack)
	defer d.guard.release()
	ring := d.buffer()
	if ring.Len() == 0 {
		var zero T
		return zero, false
	}
	return ring.Back(), true
}

// PushFront prepends an element to the front of the deque.
func (d *Deque[T]) PushFront(v T) {
	d.guard.acquire(opPushFront)
	defer d.guard.release()
	d.buffer().PushFront(v)
}

// PushBack appends an element to the back of the deque.
func (d *Deque[T]) PushBack(v T) {
	d.guard.acquire(opPushBack)
	defer d.guard.release()
	d.buffer().PushBack(v)
}

// PopFront removes and returns the element at the front of the deque. It
// returns false if the deque is empty.
func (d *Deque[T]) PopFront() (T, bool) {
	d.guard.acquire(opPopFront)
	defer d.guard.release()
	ring := d.buffer()
	if ring.Len() == 0 {
		var zero T
		return zero, false
	}
	return ring.PopFront(), true
}

// PopBack removes and returns the element at the back of the deque. It returns
// false if the deque is empty.
func (d *Deque[T]) PopBack() (T, bool) {
	d.guard.acquire(opPopBack)
	defer d.guard.release()
	ring := d.buffer()
	if ring.Len() == 0 {
		var zero T
		return zero, false
	}
	return ring.PopBack(), true
}

// Rotate rotates the deque n steps front-to-back. A negative n rotates it
// back-to-front.
func (d *Deque[T]) Rotate(n int) {
	d.guard.acquire(opRotate)
	defer d.guard.release()
	d.buffer().Rotate(n)
}

// Update gives fn mutable access to the element at index i, counted from the
// front, and stores the result back in place. It returns false if i is out of
// range, in which case fn is not called.
//
// The deque stays borrowed while fn runs: calling any method of the same deque
// from within fn panics.
func (d *Deque[T]) Update(i int, fn func(v *T)) bool {
	d.guard.acquire(opUpdate)
	defer d.guard.release()
	ring := d.buffer()
	if i < 0 || i >= ring.Len() {
		return false
	}
	v := ring.At(i)
	fn(&v)
	ring.Set(i, v)
	return true
}

// Reserve makes room for at least n more elements than the deque currently
// holds. The reserved capacity is kept when elements are popped again; the
// deque does not shrink below it. It panics if the resulting capacity exceeds
// the largest possible ring buffer.
func (d *Deque[T]) Reserve(n int) {
	d.guard.acquire(opReserve)
	defer d.guard.release()
	if n <= 0 {
		return
	}
	need := d.required(n)
	d.grow(need)
	exp := uint(bits.Len(uint(need - 1)))
	if exp > d.minExp {
		d.minExp = exp
		d.ring.SetMinCapacity(exp)
	}
}

// ReserveExact makes room for at least n more elements than the deque
// currently holds, growing the buffer to the smallest size that fits them.
// Unlike Reserve, the deque may shrink again as elements are popped. It panics
// if the resulting capacity exceeds the largest possible ring buffer.
func (d *Deque[T]) ReserveExact(n int) {
	d.guard.acquire(opReserveExact)
	defer d.guard.release()
	if n <= 0 {
		return
	}
	d.grow(d.required(n))
}

// Clear removes all elements from the deque, but retains the current
// capacity.
func (d *Deque[T]) Clear() {
	d.guard.acquire(opClear)
	defer d.guard.release()
	d.buffer().Clear()
}

// Drain returns a sequence that pops elements from the front of the deque as
// it is advanced.
func (d *Deque[T]) Drain() *Drain[T] {
	r := Drain[T]{
		deque: d,
	}
	return &r
}

// buffer returns the ring buffer, allocating it for zero-value deques. It must
// only be called while the guard is held.
func (d *Deque[T]) buffer() *deque.Deque[T] {
	if d.ring == nil {
		d.ring = deque.New[T]()
	}
	return d.ring
}

// required returns the capacity needed to hold n more elements. It must only
// be called while the guard is held.
func (d *Deque[T]) required(n int) int {
	length := d.buffer().Len()
	if n > maxCapacity-length {
		panic("cell: capacity overflow")
	}
	return length + n
}

// grow moves the elements into a new ring buffer able to hold size elements,
// unless the current one already can. It must only be called while the guard
// is held.
func (d *Deque[T]) grow(size int) {
	if d.ring.Cap() >= size {
		return
	}
	ring := deque.New[T](size)
	ring.SetMinCapacity(d.minExp)
	for i := 0; i < d.ring.Len(); i++ {
		ring.PushBack(d.ring.At(i))
	}
	d.ring = ring
}
