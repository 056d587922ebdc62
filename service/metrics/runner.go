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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "deque"

// Runner records metrics for the actions executed by an action runner.
type Runner struct {
	executed prometheus.Counter
	pending  prometheus.Gauge
	depth    prometheus.Histogram
}

// NewRunner creates a new action observer that registers its metrics with the
// given registerer.
func NewRunner(registerer prometheus.Registerer) *Runner {
	factory := promauto.With(registerer)

	executedOpts := prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_executed_total",
		Help:      "the number of executed actions",
	}
	executed := factory.NewCounter(executedOpts)

	pendingOpts := prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "actions_pending",
		Help:      "the number of actions queued after the last executed action",
	}
	pending := factory.NewGauge(pendingOpts)

	depthOpts := prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "actions_pending_depth",
		Help:      "the distribution of queue lengths observed after each executed action",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
	}
	depth := factory.NewHistogram(depthOpts)

	r := Runner{
		executed: executed,
		pending:  pending,
		depth:    depth,
	}

	return &r
}

// Executed records an executed action and the number of actions still pending.
func (r *Runner) Executed(pending int) {
	r.executed.Inc()
	r.pending.Set(float64(pending))
	r.depth.Observe(float64(pending))
}
