/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package timesync collects the systemd state of time synchronization
// services. Drifting clocks masquerade as performance problems (stalled
// TLS handshakes, skewed latency percentiles), so whether chrony, ntpd,
// or systemd-timesyncd is actually running belongs in every snapshot.
package timesync
