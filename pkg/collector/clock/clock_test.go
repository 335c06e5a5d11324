/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package clock

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/perf-advisor/pkg/measurement"
)

const fakeCPUInfo = `processor	: 0
vendor_id	: GenuineIntel
cpu MHz		: 2999.998
flags		: fpu vme tsc msr pae constant_tsc nonstop_tsc rdtscp tsc_deadline_timer

processor	: 1
vendor_id	: GenuineIntel
cpu MHz		: 2999.998
flags		: fpu vme tsc msr pae constant_tsc nonstop_tsc rdtscp tsc_deadline_timer
`

const fakeMaps = `7f0000000000-7f0000021000 rw-p 00000000 00:00 0
7ffd7a9c0000-7ffd7a9e1000 rw-p 00000000 00:00 0                          [stack]
7ffd7a9f3000-7ffd7a9f5000 r-xp 00000000 00:00 0                          [vdso]
ffffffffff600000-ffffffffff601000 --xp 00000000 00:00 0                  [vsyscall]
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func swapPath(t *testing.T, target *string, value string) {
	t.Helper()
	prev := *target
	*target = value
	t.Cleanup(func() { *target = prev })
}

func TestCollect_FullHost(t *testing.T) {
	swapPath(t, &currentClocksourcePath, writeFixture(t, "current", "tsc\n"))
	swapPath(t, &availableClocksourcePath, writeFixture(t, "available", "tsc hpet acpi_pm\n"))
	swapPath(t, &cpuinfoPath, writeFixture(t, "cpuinfo", fakeCPUInfo))
	swapPath(t, &selfMapsPath, writeFixture(t, "maps", fakeMaps))

	c := &Collector{}
	m, err := c.Collect(t.Context())
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Equal(t, measurement.TypeClock, m.Type)

	cs := m.GetSubtype(SubtypeClocksource)
	require.NotNil(t, cs)
	source, err := cs.GetString(measurement.KeyClockSource)
	require.NoError(t, err)
	assert.Equal(t, "tsc", source)
	available, err := cs.GetString(measurement.KeyAvailableSources)
	require.NoError(t, err)
	assert.Equal(t, "tsc hpet acpi_pm", available)

	tsc := m.GetSubtype(SubtypeTSC)
	require.NotNil(t, tsc)
	supported, err := tsc.GetBool(measurement.KeyTSCSupported)
	require.NoError(t, err)
	assert.True(t, supported)
	flags, err := tsc.GetString(measurement.KeyTSCFlags)
	require.NoError(t, err)
	assert.Contains(t, flags, "constant_tsc")
	assert.Contains(t, flags, "rdtscp")

	vdso := m.GetSubtype(SubtypeVDSO)
	require.NotNil(t, vdso)
	present, err := vdso.GetBool(measurement.KeyVDSOPresent)
	require.NoError(t, err)
	assert.True(t, present)

	assert.Nil(t, m.GetSubtype(SubtypeBenchmark), "benchmark off by default")
}

func TestCollect_PartialHost(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	swapPath(t, &currentClocksourcePath, writeFixture(t, "current", "kvm-clock\n"))
	swapPath(t, &availableClocksourcePath, missing)
	swapPath(t, &cpuinfoPath, missing)
	swapPath(t, &selfMapsPath, missing)

	c := &Collector{}
	m, err := c.Collect(t.Context())
	require.NoError(t, err)

	cs := m.GetSubtype(SubtypeClocksource)
	require.NotNil(t, cs)
	assert.False(t, cs.Has(measurement.KeyAvailableSources))
	assert.Nil(t, m.GetSubtype(SubtypeTSC))
	assert.Nil(t, m.GetSubtype(SubtypeVDSO))
}

func TestCollect_NothingObservable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	swapPath(t, &currentClocksourcePath, missing)
	swapPath(t, &availableClocksourcePath, missing)
	swapPath(t, &cpuinfoPath, missing)
	swapPath(t, &selfMapsPath, missing)

	c := &Collector{}
	_, err := c.Collect(t.Context())
	require.Error(t, err)
}

func TestCollect_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	c := &Collector{}
	_, err := c.Collect(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseTSCFlags(t *testing.T) {
	tests := []struct {
		name          string
		flags         string
		wantSupported bool
	}{
		{"both markers", "fpu tsc constant_tsc nonstop_tsc rdtscp", true},
		{"constant only", "fpu tsc constant_tsc", false},
		{"nonstop only", "fpu tsc nonstop_tsc", false},
		{"no tsc at all", "fpu vme de pse", false},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			supported, _ := ParseTSCFlags(tc.flags)
			assert.Equal(t, tc.wantSupported, supported)
		})
	}
}

func TestParseTSCFlags_CollectsRelatedFlags(t *testing.T) {
	_, flags := ParseTSCFlags("fpu tsc constant_tsc nonstop_tsc rdtscp tsc_deadline_timer tsc_adjust")
	assert.Equal(t,
		[]string{"tsc", "constant_tsc", "nonstop_tsc", "rdtscp", "tsc_deadline_timer", "tsc_adjust"},
		flags)
}

func TestCollect_LiveHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live /proc probe in short mode")
	}
	if _, err := os.Stat(currentClocksourcePath); err != nil {
		t.Skipf("no clocksource sysfs entry: %v", err)
	}

	c := &Collector{}
	m, err := c.Collect(t.Context())
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.NotNil(t, m.GetSubtype(SubtypeClocksource))
}

func TestHasVDSO(t *testing.T) {
	assert.True(t, HasVDSO([]string{
		"7f00-7f01 rw-p 00000000 00:00 0",
		"7ffd-7ffe r-xp 00000000 00:00 0                          [vdso]",
	}))
	assert.False(t, HasVDSO([]string{
		"7f00-7f01 rw-p 00000000 00:00 0 [stack]",
	}))
	assert.False(t, HasVDSO(nil))
}
