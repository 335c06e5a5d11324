// Package benchmark measures the average cost of a monotonic timestamp
// read on the current host.
//
// The runner samples unix.ClockGettime in tight batches for a bounded
// window and converts the per-call wall time into CPU cycles using the
// core frequency reported by /proc/cpuinfo. The resulting cycles-per-call
// figure feeds the advisor's fast-path override check: a tsc clock source
// whose reads cost more than a few hundred cycles is not being served
// through the vDSO.
package benchmark
