/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	sysctlcollector "github.com/NVIDIA/perf-advisor/pkg/collector/sysctl"
	"github.com/NVIDIA/perf-advisor/pkg/measurement"
	"github.com/NVIDIA/perf-advisor/pkg/serializer"
	"github.com/NVIDIA/perf-advisor/pkg/snapshotter"
	"github.com/NVIDIA/perf-advisor/pkg/sysctl"
)

func auditCmd() *cli.Command {
	return &cli.Command{
		Name:                  "audit",
		EnableShellCompletion: true,
		Usage:                 "Compare live sysctl values against the tuning reference",
		Description: `Audit the running kernel's tuning parameters against the built-in
reference of performance-relevant sysctl recommendations (vm, net,
kernel, fs).

The audit is read-only: it never writes to /proc/sys. Parameters absent
on this kernel are reported as skipped, not failed.

# Examples

Audit and print the full report:
  kairos audit

Audit a previously captured snapshot instead of the live host:
  kairos audit --snapshot node42.yaml

Fail in CI when any parameter misses its recommendation:
  kairos audit --fail-on-error -f table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "snapshot",
				Aliases: []string{"s"},
				Usage:   "audit the sysctl values captured in a snapshot file instead of /proc/sys",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "exit with non-zero status if any parameter fails the audit",
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

			opts := []sysctl.Option{sysctl.WithVersion(version)}
			if path := cmd.String("snapshot"); path != "" {
				read, err := snapshotReadValue(path)
				if err != nil {
					return err
				}
				opts = append(opts, sysctl.WithReadValue(read))
			}

			a := sysctl.New(opts...)
			result, err := a.Audit(ctx)
			if err != nil {
				return fmt.Errorf("audit failed: %w", err)
			}

			if err := writer.Serialize(ctx, result); err != nil {
				return fmt.Errorf("failed to serialize audit result: %w", err)
			}

			slog.Info("audit completed",
				"status", result.Summary.Status,
				"passed", result.Summary.Passed,
				"failed", result.Summary.Failed,
				"skipped", result.Summary.Skipped,
				"duration", result.Summary.Duration)

			if cmd.Bool("fail-on-error") && result.Summary.Status == sysctl.AuditStatusFail {
				return cli.Exit(
					fmt.Sprintf("audit failed: %d parameter(s) did not pass", result.Summary.Failed), 1)
			}
			return nil
		},
	}
}

// snapshotReadValue resolves parameter reads against the sysctl measurement
// of a captured snapshot. Parameters the snapshot did not capture come back
// as read errors, which the auditor reports as skipped.
func snapshotReadValue(path string) (func(string) (string, error), error) {
	snap, err := serializer.FromFile[snapshotter.Snapshot](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	m := snap.GetMeasurement(measurement.TypeSysctl)
	if m == nil {
		return nil, fmt.Errorf("snapshot %q has no sysctl measurement", path)
	}
	st := m.GetSubtype(sysctlcollector.SubtypeParams)

	return func(key string) (string, error) {
		if st == nil || !st.Has(key) {
			return "", fmt.Errorf("parameter %q not captured in snapshot", key)
		}
		return st.GetString(key)
	}, nil
}
