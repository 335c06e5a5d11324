/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package clock

import (
	"context"
	"log/slog"
	"strings"

	"github.com/NVIDIA/perf-advisor/pkg/benchmark"
	"github.com/NVIDIA/perf-advisor/pkg/collector/file"
	"github.com/NVIDIA/perf-advisor/pkg/errors"
	"github.com/NVIDIA/perf-advisor/pkg/measurement"
)

// Subtype names within the Clock measurement.
const (
	SubtypeClocksource = "clocksource"
	SubtypeTSC         = "tsc"
	SubtypeVDSO        = "vdso"
	SubtypeBenchmark   = "benchmark"
)

// Kernel interface paths, package vars so tests can point at fixtures.
var (
	currentClocksourcePath   = "/sys/devices/system/clocksource/clocksource0/current_clocksource"
	availableClocksourcePath = "/sys/devices/system/clocksource/clocksource0/available_clocksource"
	cpuinfoPath              = "/proc/cpuinfo"
	selfMapsPath             = "/proc/self/maps"
)

// Collector gathers clock source facts from /sys and /proc.
type Collector struct {
	// Benchmark enables the timestamp-read microbenchmark.
	Benchmark bool
}

// Collect probes the active and available clock sources, TSC capability
// flags, and vDSO presence, and optionally runs the timestamp-read
// microbenchmark. Probes that fail on this host are logged and skipped so
// the measurement degrades to what is observable.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := &measurement.Measurement{Type: measurement.TypeClock}
	parser := file.NewParser()

	c.collectClocksource(parser, m)
	c.collectTSC(parser, m)
	c.collectVDSO(parser, m)

	if c.Benchmark {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.collectBenchmark(ctx, m)
	}

	if len(m.Subtypes) == 0 {
		return nil, errors.New(errors.ErrCodeUnavailable,
			"no clock source information available on this host")
	}

	return m, nil
}

func (c *Collector) collectClocksource(parser *file.Parser, m *measurement.Measurement) {
	current, err := parser.GetValue(currentClocksourcePath)
	if err != nil {
		slog.Debug("current clocksource unavailable", "error", err)
		return
	}

	st := m.GetOrCreateSubtype(SubtypeClocksource)
	st.Data[measurement.KeyClockSource] = measurement.Str(current)

	if available, err := parser.GetValue(availableClocksourcePath); err == nil {
		st.Data[measurement.KeyAvailableSources] = measurement.Str(available)
	} else {
		slog.Debug("available clocksources unavailable", "error", err)
	}
}

func (c *Collector) collectTSC(parser *file.Parser, m *measurement.Measurement) {
	info, err := parser.GetMap(cpuinfoPath)
	if err != nil {
		slog.Debug("cpuinfo unavailable", "error", err)
		return
	}

	flags, ok := info["flags"]
	if !ok {
		// non-x86 kernels label the field differently or omit it
		flags = info["Features"]
	}
	if flags == "" {
		slog.Debug("no CPU flags in cpuinfo")
		return
	}

	supported, tscFlags := ParseTSCFlags(flags)
	st := m.GetOrCreateSubtype(SubtypeTSC)
	st.Data[measurement.KeyTSCSupported] = measurement.Bool(supported)
	if len(tscFlags) > 0 {
		st.Data[measurement.KeyTSCFlags] = measurement.Str(strings.Join(tscFlags, " "))
	}
}

func (c *Collector) collectVDSO(parser *file.Parser, m *measurement.Measurement) {
	lines, err := parser.GetLines(selfMapsPath)
	if err != nil {
		slog.Debug("process maps unavailable", "error", err)
		return
	}

	st := m.GetOrCreateSubtype(SubtypeVDSO)
	st.Data[measurement.KeyVDSOPresent] = measurement.Bool(HasVDSO(lines))
}

func (c *Collector) collectBenchmark(ctx context.Context, m *measurement.Measurement) {
	result, err := benchmark.New().Run(ctx)
	if err != nil {
		slog.Debug("timestamp-read benchmark failed", "error", err)
		return
	}

	st := m.GetOrCreateSubtype(SubtypeBenchmark)
	st.Data[measurement.KeyBenchmarkCycles] = measurement.Float64(result.CyclesPerCall)
	st.Data[measurement.KeyBenchmarkNanoseconds] = measurement.Float64(result.NsPerCall)
	st.Data[measurement.KeyBenchmarkIterations] = measurement.Int64(result.Iterations)
	st.Data[measurement.KeyCPUMHz] = measurement.Float64(result.CPUMHz)
}

// ParseTSCFlags inspects a space-separated CPU flags field and reports
// whether the TSC is a reliable clock source. The kernel only promotes
// tsc to a stable clocksource when the counter runs at a constant rate
// (constant_tsc) and keeps counting in deep C-states (nonstop_tsc), so
// both are required. The returned slice holds every tsc-related flag
// present, for diagnostics.
func ParseTSCFlags(flags string) (bool, []string) {
	var (
		tscFlags []string
		constant bool
		nonstop  bool
	)
	for _, f := range strings.Fields(flags) {
		switch f {
		case "constant_tsc":
			constant = true
		case "nonstop_tsc":
			nonstop = true
		}
		if strings.Contains(f, "tsc") {
			tscFlags = append(tscFlags, f)
		}
	}
	return constant && nonstop, tscFlags
}

// HasVDSO reports whether a process memory map contains a vDSO mapping.
func HasVDSO(mapsLines []string) bool {
	for _, line := range mapsLines {
		if strings.HasSuffix(line, "[vdso]") {
			return true
		}
	}
	return false
}
