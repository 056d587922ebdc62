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

// DefaultConfig is the default configuration for the action runner.
var DefaultConfig = Config{
	Limit: 0, // unlimited
}

// Config contains optional parameters for the action runner.
type Config struct {
	Limit uint
}

// WithLimit sets the maximum number of actions a single run executes. When the
// limit is reached with actions still pending, the run stops and leaves them
// queued. A limit of zero means no limit.
func WithLimit(limit uint) func(*Config) {
	return func(cfg *Config) {
		cfg.Limit = limit
	}
}
