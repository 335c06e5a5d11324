/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/perf-advisor/pkg/logging"
)

const (
	name           = "kairos"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Linux timekeeping and tuning advisor",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Description: `kairos inspects how a Linux host keeps time and whether its kernel is
tuned for performance work:

  check     evaluate the host's clock source and report a verdict
  snapshot  capture timekeeping state for later analysis
  audit     compare live sysctl values against the tuning reference
  catalog   browse the diagnostic one-liner reference`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			checkCmd(),
			snapshotCmd(),
			auditCmd(),
			catalogCmd(),
		},
	}
}

// Execute runs the root command with signal-aware cancellation.
// It is called by main.main() and exits the process on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
