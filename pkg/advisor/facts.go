/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package advisor

import (
	"log/slog"

	"github.com/NVIDIA/perf-advisor/pkg/collector/clock"
	"github.com/NVIDIA/perf-advisor/pkg/errors"
	"github.com/NVIDIA/perf-advisor/pkg/measurement"
	"github.com/NVIDIA/perf-advisor/pkg/snapshotter"
)

// FactsFromSnapshot extracts advisor facts from a snapshot's clock
// measurement. Facts the snapshot does not carry stay nil, which lowers
// the verdict confidence but never fails the evaluation. An error is only
// returned when the snapshot has no clock measurement at all.
func FactsFromSnapshot(snap *snapshotter.Snapshot) (Facts, error) {
	var facts Facts

	if snap == nil {
		return facts, errors.New(errors.ErrCodeInvalidRequest, "snapshot is nil")
	}

	m := snap.GetMeasurement(measurement.TypeClock)
	if m == nil {
		return facts, errors.New(errors.ErrCodeNotFound, "snapshot has no clock measurement")
	}

	if st := m.GetSubtype(clock.SubtypeClocksource); st != nil {
		if source, err := st.GetString(measurement.KeyClockSource); err == nil {
			facts.ClockSource = ParseClockSource(source)
		}
	}
	if facts.ClockSource == "" {
		return facts, errors.New(errors.ErrCodeNotFound, "snapshot has no clock source reading")
	}

	if st := m.GetSubtype(clock.SubtypeTSC); st != nil {
		if supported, err := st.GetBool(measurement.KeyTSCSupported); err == nil {
			facts.TSCSupported = &supported
		}
	}

	if st := m.GetSubtype(clock.SubtypeVDSO); st != nil {
		if present, err := st.GetBool(measurement.KeyVDSOPresent); err == nil {
			facts.VDSOPresent = &present
		}
	}

	if st := m.GetSubtype(clock.SubtypeBenchmark); st != nil {
		if cycles, err := st.GetFloat64(measurement.KeyBenchmarkCycles); err == nil {
			facts.BenchmarkCyclesPerCall = &cycles
		} else {
			slog.Debug("benchmark subtype present but cycles unreadable", "error", err)
		}
	}

	return facts, nil
}
