/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package advisor

import "github.com/NVIDIA/perf-advisor/pkg/header"

const (
	// APIVersion is the schema version for verdict resources.
	APIVersion = "kairos/v1alpha1"

	// BenchmarkCycleThreshold is the per-call cycle cost above which a
	// tsc clock source is considered to have an inactive fast path
	// (vDSO reads land in the low hundreds of cycles; anything beyond
	// this indicates the call is taking a real syscall).
	BenchmarkCycleThreshold = 500.0
)

// Verdict messages and actions. Exported so callers can match on them
// without string duplication.
const (
	MsgXen            = "losing significant CPU to slow timekeeping"
	MsgLegacyDevice   = "legacy hardware clock source in use; every timestamp read is a slow device access"
	MsgKVMClock       = "paravirtual clock source in use; adequate but not the fastest available"
	MsgTSC            = "tsc clock source with fast-path reads; nothing to do"
	MsgUnknownSource  = "unrecognized clock source in use"
	MsgTSCSlowPath    = "tsc selected but fast path appears inactive; check for syscall interception (audit/seccomp)"
	ActionXen         = "switch to tsc if supported, else kvm-clock"
	ActionLegacy      = "switch to tsc or kvm-clock"
	ActionKVMClock    = "tsc is better if supported"
	ActionUnknown     = "investigate; consider tsc"
	AdvisoryNoTSC     = "TSC not available; do not force tsc clocksource"
	AdvisoryNoVDSO    = "vDSO missing; timestamp fast path unavailable, investigate kernel/runtime configuration"
	AdvisoryBenchSlow = "measured timestamp-read cost exceeds fast-path budget"
)

// Evaluate maps observed timekeeping facts to a Verdict. It is a pure,
// total function: every input produces a verdict, absent facts skip
// their checks, and identical inputs yield identical verdicts.
func Evaluate(facts Facts) Verdict {
	v := Verdict{
		Facts:      facts,
		Confidence: confidenceOf(facts),
	}

	// Clock source policy, first match wins.
	switch facts.ClockSource {
	case ClockSourceXen:
		v.Severity = SeverityCritical
		v.Message = MsgXen
		v.RecommendedAction = ActionXen
	case ClockSourceHPET, ClockSourceACPIPM:
		v.Severity = SeverityCritical
		v.Message = MsgLegacyDevice
		v.RecommendedAction = ActionLegacy
	case ClockSourceKVMClock:
		v.Severity = SeverityAcceptable
		v.Message = MsgKVMClock
		v.RecommendedAction = ActionKVMClock
	case ClockSourceTSC:
		v.Severity = SeverityOptimal
		v.Message = MsgTSC
	default:
		v.Severity = SeverityWarning
		v.Message = MsgUnknownSource
		v.RecommendedAction = ActionUnknown
	}

	// Benchmark override: a tsc source reading slower than the fast-path
	// budget means the vDSO path is not actually being taken.
	if facts.ClockSource == ClockSourceTSC &&
		facts.BenchmarkCyclesPerCall != nil &&
		*facts.BenchmarkCyclesPerCall > BenchmarkCycleThreshold {
		v.Severity = SeverityWarning
		v.Message = MsgTSCSlowPath
		v.RecommendedAction = ""
		v.Advisories = append(v.Advisories, AdvisoryBenchSlow)
	}

	// Advisory sub-flags, independent of the severity above.
	if facts.TSCSupported != nil && !*facts.TSCSupported {
		v.Advisories = append(v.Advisories, AdvisoryNoTSC)
	}
	if facts.VDSOPresent != nil && !*facts.VDSOPresent {
		v.Advisories = append(v.Advisories, AdvisoryNoVDSO)
	}

	evaluationsTotal.WithLabelValues(string(v.Severity)).Inc()

	return v
}

// EvaluateWithHeader evaluates facts and stamps the verdict with the
// standard resource header carrying the tool version.
func EvaluateWithHeader(facts Facts, version string) Verdict {
	v := Evaluate(facts)
	v.Init(header.KindVerdict, APIVersion, version)
	return v
}

func confidenceOf(facts Facts) Confidence {
	if facts.TSCSupported != nil && facts.VDSOPresent != nil {
		return ConfidenceFull
	}
	return ConfidencePartial
}
