// Package snapshotter captures timekeeping state snapshots from a host.
//
// The snapshotter orchestrates parallel collection of clock source facts,
// time sync service states, and kernel tuning parameters, and produces a
// structured snapshot that can be serialized for analysis now or replayed
// through the advisor later on another machine.
//
// Basic snapshot with defaults (stdout JSON):
//
//	s := &snapshotter.HostSnapshotter{Version: "v1.0.0"}
//	snap, err := s.Measure(ctx)
//
// The clock and sysctl collectors are required; the time sync collector is
// advisory and hosts without systemd still produce a valid snapshot.
package snapshotter
