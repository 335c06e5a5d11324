/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/perf-advisor/pkg/collector"
	"github.com/NVIDIA/perf-advisor/pkg/defaults"
	"github.com/NVIDIA/perf-advisor/pkg/snapshotter"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Capture timekeeping state for later analysis",
		Description: `Capture a snapshot of the host's timekeeping state including:
  - Active and available clock sources
  - TSC capability flags from /proc/cpuinfo
  - vDSO presence in the process memory map
  - Time sync service states (chrony, ntpd, systemd-timesyncd)
  - Kernel tuning parameters from /proc/sys

The snapshot can be output in JSON, YAML, or table format and replayed
through 'kairos check --snapshot' or 'kairos audit --snapshot' on any
machine.

# Examples

Snapshot to stdout:
  kairos snapshot

Snapshot with the timestamp-read microbenchmark to a file:
  kairos snapshot --benchmark -o node42.yaml -f yaml`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "benchmark",
				Usage: "include the timestamp-read microbenchmark in the snapshot",
			},
			&cli.StringSliceFlag{
				Name:  "timesync-unit",
				Usage: "systemd unit to check for time sync state (can be repeated)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			writer, err := outputWriter(cmd)
			if err != nil {
				return err
			}
			defer closeWriter(writer)

			opts := []collector.Option{
				collector.WithBenchmark(cmd.Bool("benchmark")),
			}
			if units := cmd.StringSlice("timesync-unit"); len(units) > 0 {
				opts = append(opts, collector.WithTimeSyncUnits(units...))
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLISnapshotTimeout)
			defer cancel()

			hs := &snapshotter.HostSnapshotter{
				Version:    version,
				Factory:    collector.NewDefaultFactory(opts...),
				Serializer: writer,
			}

			if _, err := hs.Measure(ctx); err != nil {
				return fmt.Errorf("snapshot failed: %w", err)
			}
			return nil
		},
	}
}
