// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package defaults

import "time"

// Collector timeouts for data collection operations.
const (
	// CollectorTimeout is the default timeout for collector operations.
	// Collectors should respect parent context deadlines when shorter.
	CollectorTimeout = 10 * time.Second

	// DBusTimeout is the timeout for systemd D-Bus calls when querying
	// time sync service state.
	DBusTimeout = 5 * time.Second
)

// Benchmark bounds for the timestamp-read microbenchmark.
const (
	// BenchmarkTimeout caps the total time spent benchmarking.
	BenchmarkTimeout = 3 * time.Second

	// BenchmarkMinDuration is the minimum sampling window per batch;
	// shorter windows produce too much jitter to be useful.
	BenchmarkMinDuration = 50 * time.Millisecond
)

// CLI timeouts for command-line operations.
const (
	// CLISnapshotTimeout is the default timeout for snapshot operations.
	CLISnapshotTimeout = 1 * time.Minute

	// CLICheckTimeout is the default timeout for the check command,
	// including the optional microbenchmark.
	CLICheckTimeout = 30 * time.Second
)
