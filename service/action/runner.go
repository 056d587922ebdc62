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
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// Runner drains the action queue of a context, running each action as it is
// popped. Actions may queue further actions on the same context while the
// runner is draining it.
type Runner[S any] struct {
	log      zerolog.Logger
	observer Observer
	cfg      Config
}

// NewRunner creates a new action runner which reports every executed action to
// the given observer.
func NewRunner[S any](log zerolog.Logger, observer Observer, options ...func(*Config)) *Runner[S] {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	r := Runner[S]{
		log:      log.With().Str("component", "action_runner").Logger(),
		observer: observer,
		cfg:      cfg,
	}

	return &r
}

// Run executes pending actions of the context until none are left, or until
// the configured limit is reached. It returns the number of executed actions.
// Failures recorded on the context are returned wrapped in ErrActionFailed,
// together with ErrLimitExceeded if the limit was reached, and are cleared
// from the context once returned.
func (r *Runner[S]) Run(c *Context[S]) (uint, error) {

	r.log.Debug().Int("pending", c.Actions.Len()).Msg("starting action run")

	// The drain holds no borrow on the queue while an action runs, so actions
	// can queue more work on the same context.
	var executed uint
	for action := range c.Actions.Drain().Seq() {
		action(c)
		executed++

		pending := c.Actions.Len()
		r.observer.Executed(pending)

		r.log.Trace().Uint("executed", executed).Int("pending", pending).Msg("action executed")

		if r.cfg.Limit != 0 && executed >= r.cfg.Limit && pending != 0 {
			err := fmt.Errorf("could not drain actions after %d executions (pending: %d): %w", executed, pending, ErrLimitExceeded)
			failures := c.flush()
			if failures != nil {
				return executed, multierror.Append(err, fmt.Errorf("%w: %w", ErrActionFailed, failures))
			}
			return executed, err
		}
	}

	failures := c.flush()
	if failures != nil {
		return executed, fmt.Errorf("could not execute all actions: %w: %w", ErrActionFailed, failures)
	}

	r.log.Debug().Uint("executed", executed).Msg("action run complete")

	return executed, nil
}
