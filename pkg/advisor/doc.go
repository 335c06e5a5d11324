// Package advisor evaluates observed timekeeping facts into a
// severity-ranked verdict with remediation advice.
//
// The advisor is a pure decision function: it performs no I/O, holds no
// state between calls, and is total over its input domain. Unrecognized
// clock sources degrade to ClockSourceOther and absent facts (nil
// pointer fields on Facts) skip their checks rather than failing, so the
// advisor can be invoked with whatever subset of facts the probes were
// able to gather. The Confidence field on the verdict reflects that.
//
// Decision policy, first match wins:
//
//	xen              -> Critical (slow hypervisor timekeeping)
//	hpet, acpi_pm    -> Critical (legacy device clock)
//	kvm-clock        -> Acceptable (tsc is better if supported)
//	tsc              -> Optimal
//	anything else    -> Warning (investigate)
//
// A tsc verdict is downgraded to Warning when a supplied microbenchmark
// reading exceeds BenchmarkCycleThreshold cycles per call, since that
// indicates timestamp reads are taking a real syscall despite the fast
// clock source (typically audit/seccomp interception).
//
// Facts gathering lives in pkg/collector; FactsFromSnapshot bridges a
// previously captured snapshot back into advisor inputs so verdicts can
// be produced offline.
package advisor
