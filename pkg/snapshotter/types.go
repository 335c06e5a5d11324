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

package snapshotter

import (
	"context"

	"github.com/NVIDIA/perf-advisor/pkg/header"
	"github.com/NVIDIA/perf-advisor/pkg/measurement"
)

// Snapshotter defines the interface for collecting timekeeping snapshots.
// Implementations gather measurements from host interfaces and serialize
// the results for analysis or later replay.
type Snapshotter interface {
	Measure(ctx context.Context) (*Snapshot, error)
}

// NewSnapshot creates a new Snapshot instance with an initialized Measurements slice.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Measurements: make([]*measurement.Measurement, 0),
	}
}

// Snapshot represents collected timekeeping state from a host. It contains
// metadata and measurements from the clock, time sync, and sysctl collectors.
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	// Measurements contains the collected measurements from various collectors.
	Measurements []*measurement.Measurement `json:"measurements" yaml:"measurements"`
}

// GetMeasurement returns the first measurement of the given type, or nil.
func (s *Snapshot) GetMeasurement(mt measurement.Type) *measurement.Measurement {
	for _, m := range s.Measurements {
		if m != nil && m.Type == mt {
			return m
		}
	}
	return nil
}
