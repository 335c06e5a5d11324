/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package collector

import (
	"github.com/NVIDIA/perf-advisor/pkg/collector/clock"
	"github.com/NVIDIA/perf-advisor/pkg/collector/sysctl"
	"github.com/NVIDIA/perf-advisor/pkg/collector/timesync"
)

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateClockCollector() Collector
	CreateTimeSyncCollector() Collector
	CreateSysctlCollector() Collector
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	// Benchmark enables the timestamp-read microbenchmark in the clock
	// collector. Off by default since it burns CPU for its sampling window.
	Benchmark bool

	// TimeSyncUnits are the systemd units checked by the timesync collector.
	TimeSyncUnits []string
}

// Option is a functional option for configuring the DefaultFactory.
type Option func(*DefaultFactory)

// WithBenchmark enables or disables the clock microbenchmark.
func WithBenchmark(enabled bool) Option {
	return func(f *DefaultFactory) {
		f.Benchmark = enabled
	}
}

// WithTimeSyncUnits overrides the default set of time sync services.
func WithTimeSyncUnits(units ...string) Option {
	return func(f *DefaultFactory) {
		f.TimeSyncUnits = units
	}
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		TimeSyncUnits: []string{
			"chronyd.service",
			"ntpd.service",
			"systemd-timesyncd.service",
		},
	}

	// Apply options
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateClockCollector creates a clock source collector.
func (f *DefaultFactory) CreateClockCollector() Collector {
	return &clock.Collector{
		Benchmark: f.Benchmark,
	}
}

// CreateTimeSyncCollector creates a time sync service collector.
func (f *DefaultFactory) CreateTimeSyncCollector() Collector {
	return &timesync.Collector{
		Units: f.TimeSyncUnits,
	}
}

// CreateSysctlCollector creates a sysctl collector for the parameters
// referenced by the built-in tuning reference.
func (f *DefaultFactory) CreateSysctlCollector() Collector {
	return &sysctl.Collector{}
}
