/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package advisor

import (
	"strings"

	"github.com/NVIDIA/perf-advisor/pkg/header"
)

// ClockSource identifies the kernel-selected timekeeping mechanism.
type ClockSource string

const (
	ClockSourceTSC      ClockSource = "tsc"
	ClockSourceKVMClock ClockSource = "kvm-clock"
	ClockSourceHPET     ClockSource = "hpet"
	ClockSourceACPIPM   ClockSource = "acpi_pm"
	ClockSourceXen      ClockSource = "xen"
	ClockSourceOther    ClockSource = "other"
)

// String returns the string representation of the ClockSource.
func (c ClockSource) String() string {
	return string(c)
}

// ParseClockSource maps a raw clock source identifier to a ClockSource.
// Unrecognized values map to ClockSourceOther; parsing never fails.
func ParseClockSource(s string) ClockSource {
	switch ClockSource(strings.TrimSpace(s)) {
	case ClockSourceTSC:
		return ClockSourceTSC
	case ClockSourceKVMClock:
		return ClockSourceKVMClock
	case ClockSourceHPET:
		return ClockSourceHPET
	case ClockSourceACPIPM:
		return ClockSourceACPIPM
	case ClockSourceXen:
		return ClockSourceXen
	default:
		return ClockSourceOther
	}
}

// Severity ranks the urgency of a verdict.
type Severity string

const (
	SeverityOptimal    Severity = "Optimal"
	SeverityAcceptable Severity = "Acceptable"
	SeverityWarning    Severity = "Warning"
	SeverityCritical   Severity = "Critical"
)

// String returns the string representation of the Severity.
func (s Severity) String() string {
	return string(s)
}

// Rank returns an ordinal for severity comparisons; higher is worse.
func (s Severity) Rank() int {
	switch s {
	case SeverityOptimal:
		return 0
	case SeverityAcceptable:
		return 1
	case SeverityWarning:
		return 2
	case SeverityCritical:
		return 3
	default:
		return 2
	}
}

// Actionable reports whether the severity requires operator attention.
// It drives the CLI exit code: Warning and Critical exit non-zero.
func (s Severity) Actionable() bool {
	return s.Rank() >= SeverityWarning.Rank()
}

// Confidence qualifies a verdict based on how many facts were available.
type Confidence string

const (
	// ConfidenceFull means all base facts (clock source, TSC support,
	// vDSO presence) were available to the evaluation.
	ConfidenceFull Confidence = "full"

	// ConfidencePartial means one or more base facts were absent and the
	// corresponding checks were skipped.
	ConfidencePartial Confidence = "partial"
)

// Facts is the input to Evaluate. Pointer fields model facts that the
// collaborating probes could not determine; the advisor skips the
// corresponding checks rather than failing.
type Facts struct {
	// ClockSource is the currently active clock source.
	ClockSource ClockSource `json:"clockSource" yaml:"clockSource"`

	// TSCSupported reports whether the CPU/kernel exposes a stable,
	// constant TSC. Nil when unknown.
	TSCSupported *bool `json:"tscSupported,omitempty" yaml:"tscSupported,omitempty"`

	// VDSOPresent reports whether the vDSO fast path is mapped into the
	// probing process. Nil when unknown.
	VDSOPresent *bool `json:"vdsoPresent,omitempty" yaml:"vdsoPresent,omitempty"`

	// BenchmarkCyclesPerCall is the measured average cost of a
	// timestamp read. Nil when no benchmark was run.
	BenchmarkCyclesPerCall *float64 `json:"benchmarkCyclesPerCall,omitempty" yaml:"benchmarkCyclesPerCall,omitempty"`
}

// Verdict is the evaluation result. Created fresh per call; immutable.
type Verdict struct {
	header.Header `json:",inline" yaml:",inline"`

	// Severity ranks the urgency of the finding.
	Severity Severity `json:"severity" yaml:"severity"`

	// Message describes the finding.
	Message string `json:"message" yaml:"message"`

	// RecommendedAction is the suggested remediation, when one exists.
	RecommendedAction string `json:"recommendedAction,omitempty" yaml:"recommendedAction,omitempty"`

	// Advisories are findings orthogonal to the clock source severity
	// (e.g. missing vDSO indicates a kernel/libc fault class of its own).
	Advisories []string `json:"advisories,omitempty" yaml:"advisories,omitempty"`

	// Confidence reflects how many facts were available.
	Confidence Confidence `json:"confidence" yaml:"confidence"`

	// Facts echoes the evaluated inputs for traceability.
	Facts Facts `json:"facts" yaml:"facts"`
}
