/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/perf-advisor/pkg/advisor"
	"github.com/NVIDIA/perf-advisor/pkg/collector"
	"github.com/NVIDIA/perf-advisor/pkg/defaults"
	"github.com/NVIDIA/perf-advisor/pkg/serializer"
	"github.com/NVIDIA/perf-advisor/pkg/snapshotter"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Evaluate the host's clock source and report a verdict",
		Description: `Evaluate the timekeeping configuration of the current host (or of a
previously captured snapshot) and report a verdict.

The verdict severity reflects the active clock source:
  tsc        Optimal    hardware fast path
  kvm-clock  Acceptable paravirtual clock, tsc is better when supported
  xen        Critical   slow hypervisor timekeeping
  hpet       Critical   legacy hardware, every read is expensive
  acpi_pm    Critical   legacy hardware, every read is expensive
  other      Warning    unrecognized source, investigate

With --benchmark, the measured cost of a clock read can downgrade an
otherwise Optimal tsc verdict when reads take longer than the expected
fast path, which usually means syscall interception.

# Exit Codes

  0  Optimal or Acceptable
  1  Warning or Critical (or evaluation error)

# Examples

Check the current host:
  kairos check

Check with the timestamp-read microbenchmark:
  kairos check --benchmark

Re-evaluate a snapshot captured elsewhere:
  kairos check --snapshot node42.yaml -f table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "snapshot",
				Aliases: []string{"s"},
				Usage:   "path to a previously captured snapshot (default: probe the current host)",
			},
			&cli.BoolFlag{
				Name:  "benchmark",
				Usage: "measure the cost of a clock read and factor it into the verdict",
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

			snap, err := loadOrProbeSnapshot(ctx, cmd)
			if err != nil {
				return err
			}

			facts, err := advisor.FactsFromSnapshot(snap)
			if err != nil {
				return fmt.Errorf("failed to extract facts: %w", err)
			}

			verdict := advisor.EvaluateWithHeader(facts, version)

			if err := writer.Serialize(ctx, verdict); err != nil {
				return fmt.Errorf("failed to serialize verdict: %w", err)
			}

			slog.Info("check completed",
				"clock_source", facts.ClockSource,
				"severity", verdict.Severity,
				"confidence", verdict.Confidence)

			if verdict.Severity.Actionable() {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// loadOrProbeSnapshot returns the snapshot named by --snapshot, or probes
// the current host. The probe serializes to io.Discard: check only emits
// the verdict.
func loadOrProbeSnapshot(ctx context.Context, cmd *cli.Command) (*snapshotter.Snapshot, error) {
	if path := cmd.String("snapshot"); path != "" {
		slog.Debug("loading snapshot", "path", path)
		snap, err := serializer.FromFile[snapshotter.Snapshot](path)
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot from %q: %w", path, err)
		}
		return snap, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.CLICheckTimeout)
	defer cancel()

	hs := &snapshotter.HostSnapshotter{
		Version: version,
		Factory: collector.NewDefaultFactory(
			collector.WithBenchmark(cmd.Bool("benchmark")),
		),
		Serializer: serializer.NewWriter(serializer.FormatJSON, io.Discard),
	}
	return hs.Measure(ctx)
}
