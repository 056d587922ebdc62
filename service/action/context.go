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

package action

import (
	"github.com/hashicorp/go-multierror"

	"github.com/optakt/deque-cell/cell"
)

// Action is a deferred unit of work. It is run at most once and receives the
// context it was queued on, so it can read and change the shared data and
// queue further actions on the same context.
type Action[S any] func(*Context[S])

// Context holds the queue of pending actions together with the data they
// operate on.
type Context[S any] struct {
	Actions *cell.Deque[Action[S]]
	Data    S

	errs *multierror.Error
}

// NewContext creates a context with an empty action queue around the given
// data.
func NewContext[S any](data S) *Context[S] {
	c := Context[S]{
		Actions: cell.New[Action[S]](),
		Data:    data,
	}
	return &c
}

// Defer queues the action behind all pending actions.
func (c *Context[S]) Defer(action Action[S]) {
	c.Actions.PushBack(action)
}

// DeferFirst queues the action in front of all pending actions, so that it is
// the next one to run.
func (c *Context[S]) DeferFirst(action Action[S]) {
	c.Actions.PushFront(action)
}

// Fail records the failure of an action. Failures do not stop the remaining
// actions from running.
func (c *Context[S]) Fail(err error) {
	c.errs = multierror.Append(c.errs, err)
}

// Err returns the failures recorded since they were last reported by a
// runner, or nil if there were none.
func (c *Context[S]) Err() error {
	return c.errs.ErrorOrNil()
}

// flush returns the recorded failures and clears them.
func (c *Context[S]) flush() error {
	err := c.errs.ErrorOrNil()
	c.errs = nil
	return err
}

// Drain runs pending actions from the front of the queue until it is empty,
// including the ones queued by the actions themselves. It returns the number
// of actions that were run.
func (c *Context[S]) Drain() uint {
	var executed uint
	for {
		action, ok := c.Actions.PopFront()
		if !ok {
			return executed
		}
		action(c)
		executed++
	}
}
