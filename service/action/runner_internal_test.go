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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optakt/deque-cell/testing/mocks"
)

func TestNewRunner(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		observer := mocks.BaselineObserver(t)

		r := NewRunner[int](mocks.NoopLogger, observer)

		assert.Equal(t, observer, r.observer)
		assert.Equal(t, DefaultConfig, r.cfg)
	})

	t.Run("with limit", func(t *testing.T) {
		observer := mocks.BaselineObserver(t)

		r := NewRunner[int](mocks.NoopLogger, observer, WithLimit(42))

		assert.Equal(t, uint(42), r.cfg.Limit)
	})
}

func BaselineRunner[S any](t *testing.T, opts ...func(*Runner[S])) *Runner[S] {
	t.Helper()

	r := Runner[S]{
		log:      mocks.NoopLogger,
		observer: mocks.BaselineObserver(t),
		cfg:      DefaultConfig,
	}

	for _, opt := range opts {
		opt(&r)
	}

	return &r
}

func WithObserver[S any](observer Observer) func(*Runner[S]) {
	return func(r *Runner[S]) {
		r.observer = observer
	}
}

func WithConfig[S any](cfg Config) func(*Runner[S]) {
	return func(r *Runner[S]) {
		r.cfg = cfg
	}
}
