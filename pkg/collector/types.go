/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package collector

import (
	"context"

	"github.com/NVIDIA/perf-advisor/pkg/measurement"
)

// Collector gathers one category of host facts into a measurement.
// Implementations must respect context cancellation and should degrade
// to partial measurements on non-critical errors (missing /proc or /sys
// entries on hosts that do not expose them) rather than failing.
type Collector interface {
	Collect(ctx context.Context) (*measurement.Measurement, error)
}
