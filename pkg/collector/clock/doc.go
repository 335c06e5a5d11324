/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package clock collects timekeeping facts: the kernel's active and
// available clock sources, TSC capability flags from /proc/cpuinfo, vDSO
// presence in the process memory map, and optionally the measured cost of
// a monotonic timestamp read.
package clock
