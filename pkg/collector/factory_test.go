/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/perf-advisor/pkg/collector/clock"
	"github.com/NVIDIA/perf-advisor/pkg/collector/timesync"
)

func TestNewDefaultFactory(t *testing.T) {
	f := NewDefaultFactory()

	assert.False(t, f.Benchmark)
	assert.Equal(t, []string{
		"chronyd.service",
		"ntpd.service",
		"systemd-timesyncd.service",
	}, f.TimeSyncUnits)
}

func TestFactoryOptions(t *testing.T) {
	f := NewDefaultFactory(
		WithBenchmark(true),
		WithTimeSyncUnits("chronyd.service"),
	)

	cc, ok := f.CreateClockCollector().(*clock.Collector)
	require.True(t, ok)
	assert.True(t, cc.Benchmark)

	tc, ok := f.CreateTimeSyncCollector().(*timesync.Collector)
	require.True(t, ok)
	assert.Equal(t, []string{"chronyd.service"}, tc.Units)

	assert.NotNil(t, f.CreateSysctlCollector())
}
