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

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/deque-cell/service/action"
	"github.com/optakt/deque-cell/service/metrics"
	"github.com/optakt/deque-cell/testing/mocks"
)

func TestRunner_Executed(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		registry := prometheus.NewRegistry()
		observer := metrics.NewRunner(registry)

		observer.Executed(5)
		observer.Executed(2)

		count, err := testutil.GatherAndCount(registry, "deque_actions_executed_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		families, err := registry.Gather()
		require.NoError(t, err)

		values := make(map[string]float64)
		for _, family := range families {
			metric := family.GetMetric()[0]
			switch {
			case metric.GetCounter() != nil:
				values[family.GetName()] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[family.GetName()] = metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				values[family.GetName()] = float64(metric.GetHistogram().GetSampleCount())
			}
		}

		assert.Equal(t, float64(2), values["deque_actions_executed_total"])
		assert.Equal(t, float64(2), values["deque_actions_pending"])
		assert.Equal(t, float64(2), values["deque_actions_pending_depth"])
	})

	t.Run("observes action runner", func(t *testing.T) {
		t.Parallel()

		registry := prometheus.NewRegistry()
		observer := metrics.NewRunner(registry)
		runner := action.NewRunner[int](mocks.NoopLogger, observer)

		c := action.NewContext(0)
		for i := 0; i < 4; i++ {
			c.Defer(func(c *action.Context[int]) {
				c.Data++
			})
		}

		executed, err := runner.Run(c)
		require.NoError(t, err)
		assert.Equal(t, uint(4), executed)

		count, err := testutil.GatherAndCount(registry)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("handles duplicate registration", func(t *testing.T) {
		t.Parallel()

		registry := prometheus.NewRegistry()
		_ = metrics.NewRunner(registry)

		assert.Panics(t, func() {
			_ = metrics.NewRunner(registry)
		})
	})
}
