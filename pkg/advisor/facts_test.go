/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/perf-advisor/pkg/collector/clock"
	"github.com/NVIDIA/perf-advisor/pkg/measurement"
	"github.com/NVIDIA/perf-advisor/pkg/snapshotter"
)

func clockSnapshot(subtypes ...measurement.Subtype) *snapshotter.Snapshot {
	snap := snapshotter.NewSnapshot()
	snap.Measurements = append(snap.Measurements, &measurement.Measurement{
		Type:     measurement.TypeClock,
		Subtypes: subtypes,
	})
	return snap
}

func TestFactsFromSnapshot_Full(t *testing.T) {
	snap := clockSnapshot(
		measurement.Subtype{
			Name: clock.SubtypeClocksource,
			Data: map[string]measurement.Reading{
				measurement.KeyClockSource: measurement.Str("tsc"),
			},
		},
		measurement.Subtype{
			Name: clock.SubtypeTSC,
			Data: map[string]measurement.Reading{
				measurement.KeyTSCSupported: measurement.Bool(true),
			},
		},
		measurement.Subtype{
			Name: clock.SubtypeVDSO,
			Data: map[string]measurement.Reading{
				measurement.KeyVDSOPresent: measurement.Bool(true),
			},
		},
		measurement.Subtype{
			Name: clock.SubtypeBenchmark,
			Data: map[string]measurement.Reading{
				measurement.KeyBenchmarkCycles: measurement.Float64(42.5),
			},
		},
	)

	facts, err := FactsFromSnapshot(snap)
	require.NoError(t, err)

	assert.Equal(t, ClockSourceTSC, facts.ClockSource)
	require.NotNil(t, facts.TSCSupported)
	assert.True(t, *facts.TSCSupported)
	require.NotNil(t, facts.VDSOPresent)
	assert.True(t, *facts.VDSOPresent)
	require.NotNil(t, facts.BenchmarkCyclesPerCall)
	assert.InDelta(t, 42.5, *facts.BenchmarkCyclesPerCall, 0.001)
}

func TestFactsFromSnapshot_ClocksourceOnly(t *testing.T) {
	snap := clockSnapshot(measurement.Subtype{
		Name: clock.SubtypeClocksource,
		Data: map[string]measurement.Reading{
			measurement.KeyClockSource: measurement.Str("kvm-clock"),
		},
	})

	facts, err := FactsFromSnapshot(snap)
	require.NoError(t, err)

	assert.Equal(t, ClockSourceKVMClock, facts.ClockSource)
	assert.Nil(t, facts.TSCSupported)
	assert.Nil(t, facts.VDSOPresent)
	assert.Nil(t, facts.BenchmarkCyclesPerCall)

	verdict := Evaluate(facts)
	assert.Equal(t, ConfidencePartial, verdict.Confidence)
}

func TestFactsFromSnapshot_UnknownSourceMapsToOther(t *testing.T) {
	snap := clockSnapshot(measurement.Subtype{
		Name: clock.SubtypeClocksource,
		Data: map[string]measurement.Reading{
			measurement.KeyClockSource: measurement.Str("jiffies"),
		},
	})

	facts, err := FactsFromSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, ClockSourceOther, facts.ClockSource)
}

func TestFactsFromSnapshot_Errors(t *testing.T) {
	_, err := FactsFromSnapshot(nil)
	assert.Error(t, err)

	_, err = FactsFromSnapshot(snapshotter.NewSnapshot())
	assert.Error(t, err, "no clock measurement")

	_, err = FactsFromSnapshot(clockSnapshot())
	assert.Error(t, err, "no clock source reading")
}

func TestFactsFromSnapshot_RoundTripThroughEvaluate(t *testing.T) {
	snap := clockSnapshot(
		measurement.Subtype{
			Name: clock.SubtypeClocksource,
			Data: map[string]measurement.Reading{
				measurement.KeyClockSource: measurement.Str("xen"),
			},
		},
		measurement.Subtype{
			Name: clock.SubtypeTSC,
			Data: map[string]measurement.Reading{
				measurement.KeyTSCSupported: measurement.Bool(true),
			},
		},
		measurement.Subtype{
			Name: clock.SubtypeVDSO,
			Data: map[string]measurement.Reading{
				measurement.KeyVDSOPresent: measurement.Bool(true),
			},
		},
	)

	facts, err := FactsFromSnapshot(snap)
	require.NoError(t, err)

	verdict := Evaluate(facts)
	assert.Equal(t, SeverityCritical, verdict.Severity)
	assert.Equal(t, ConfidenceFull, verdict.Confidence)
}
