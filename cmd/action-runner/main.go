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
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/deque-cell/metrics/output"
	"github.com/optakt/deque-cell/service/action"
	"github.com/optakt/deque-cell/service/metrics"
)

const (
	success = 0
	failure = 1
)

// Flags holds the command line parameters.
type Flags struct {
	Level    string `validate:"oneof=trace debug info warn error"`
	Seeds    uint   `validate:"min=1,max=1048576"`
	Depth    uint   `validate:"max=24"`
	Fanout   uint   `validate:"min=1,max=16"`
	Limit    uint
	Front    bool
	Metrics  string        `validate:"omitempty,hostname_port"`
	Interval time.Duration `validate:"gte=0"`
}

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var flags Flags

	pflag.StringVarP(&flags.Level, "level", "l", "info", "log output level")
	pflag.UintVarP(&flags.Seeds, "seeds", "s", 4, "number of root actions queued before the run")
	pflag.UintVarP(&flags.Depth, "depth", "d", 6, "number of levels each root action spawns below itself")
	pflag.UintVarP(&flags.Fanout, "fanout", "f", 3, "number of child actions each action queues")
	pflag.UintVar(&flags.Limit, "limit", 0, "maximum number of actions to execute (0 for unlimited)")
	pflag.BoolVar(&flags.Front, "front", false, "queue child actions in front of pending actions")
	pflag.StringVarP(&flags.Metrics, "metrics", "m", "", "address on which to serve prometheus metrics (empty to disable)")
	pflag.DurationVarP(&flags.Interval, "interval", "i", 0, "interval at which to log metrics during the run (0 to disable)")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)

	err := validator.New().Struct(flags)
	if err != nil {
		log.Error().Err(err).Msg("invalid command line parameters")
		return failure
	}

	level, err := zerolog.ParseLevel(flags.Level)
	if err != nil {
		log.Error().Str("level", flags.Level).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	// Metrics are always collected; they are only exposed when an address is
	// given.
	registry := prometheus.NewRegistry()
	observer := metrics.NewRunner(registry)

	var server *metrics.Server
	if flags.Metrics != "" {
		server = metrics.NewServer(log, flags.Metrics, registry)
		go func() {
			err := server.Start()
			if err != nil {
				log.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	if flags.Interval > 0 {
		out := output.New(log, flags.Interval, registry)
		out.Run()
		defer out.Stop()
	}

	tree := Tree{
		Depth:  flags.Depth,
		Fanout: flags.Fanout,
		Front:  flags.Front,
	}

	expected, ok := tree.Total(flags.Seeds)
	if !ok {
		log.Error().Uint("seeds", flags.Seeds).Uint("depth", flags.Depth).Uint("fanout", flags.Fanout).Msg("workload size overflows")
		return failure
	}

	c := action.NewContext(Workload{})
	c.Actions.ReserveExact(int(flags.Seeds))
	for i := uint(0); i < flags.Seeds; i++ {
		c.Defer(tree.Seed())
	}

	runner := action.NewRunner[Workload](log, observer, action.WithLimit(flags.Limit))

	start := time.Now()
	executed, err := runner.Run(c)
	switch {
	case errors.Is(err, action.ErrActionFailed):
		log.Error().Err(err).Uint("executed", executed).Msg("actions failed")
		return failure
	case errors.Is(err, action.ErrLimitExceeded):
		log.Warn().Err(err).Uint("executed", executed).Int("pending", c.Actions.Len()).Msg("action limit reached")
	case err != nil:
		log.Error().Err(err).Msg("could not run actions")
		return failure
	default:
		log.Info().
			Uint("executed", executed).
			Uint("expected", expected).
			Uint("deepest", c.Data.Deepest).
			Dur("duration", time.Since(start)).
			Msg("all actions executed")
	}

	if server == nil {
		return success
	}

	log.Info().Msg("serving metrics until interrupted")
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = server.Stop(ctx)
	if err != nil {
		log.Error().Err(err).Msg("could not stop metrics server")
		return failure
	}

	return success
}
