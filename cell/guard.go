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
	"fmt"
	"sync/atomic"
)

type operation int32

const (
	opNone operation = iota
	opLen
	opCap
	opIsEmpty
	opFront
	opBack
	opPushFront
	opPushBack
	opPopFront
	opPopBack
	opRotate
	opUpdate
	opReserve
	opReserveExact
	opClear
)

var operationNames = [...]string{
	opNone:         "none",
	opLen:          "Len",
	opCap:          "Cap",
	opIsEmpty:      "IsEmpty",
	opFront:        "Front",
	opBack:         "Back",
	opPushFront:    "PushFront",
	opPushBack:     "PushBack",
	opPopFront:     "PopFront",
	opPopBack:      "PopBack",
	opRotate:       "Rotate",
	opUpdate:       "Update",
	opReserve:      "Reserve",
	opReserveExact: "ReserveExact",
	opClear:        "Clear",
}

func (o operation) String() string {
	if o < 0 || int(o) >= len(operationNames) {
		return fmt.Sprintf("operation(%d)", int32(o))
	}
	return operationNames[o]
}

// guard hands out exclusive access to the ring buffer of a deque. It holds the
// operation that currently borrows the buffer, or opNone when it is free.
type guard struct {
	holder atomic.Int32
}

func (g *guard) acquire(op operation) {
	if g.holder.CompareAndSwap(int32(opNone), int32(op)) {
		return
	}
	panic(borrowedMessage(op, operation(g.holder.Load())))
}

// borrowedMessage describes a borrow of op that conflicted with holder. A free
// holder means the conflicting borrow was released after the swap failed,
// which only happens with concurrent use.
func borrowedMessage(op operation, holder operation) string {
	if holder == opNone {
		return fmt.Sprintf("cell: %s called while deque is borrowed from another goroutine", op)
	}
	return fmt.Sprintf("cell: %s called while deque is borrowed by %s", op, holder)
}

func (g *guard) release() {
	g.holder.Store(int32(opNone))
}
