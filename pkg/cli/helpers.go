/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/perf-advisor/pkg/serializer"
)

// Flags shared by commands that serialize a resource.
func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   fmt.Sprintf("output format %v", serializer.SupportedFormats()),
		Value:   string(serializer.FormatJSON),
	}
}

// outputWriter builds a Writer from the shared output/format flags.
func outputWriter(cmd *cli.Command) (*serializer.Writer, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return nil, fmt.Errorf("unknown output format: %q", outFormat)
	}
	return serializer.NewFileWriterOrStdout(outFormat, cmd.String("output")), nil
}

func closeWriter(w *serializer.Writer) {
	if err := w.Close(); err != nil {
		slog.Warn("failed to close output writer", "error", err)
	}
}
