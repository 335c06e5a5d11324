/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/perf-advisor/pkg/catalog"
)

func catalogCmd() *cli.Command {
	return &cli.Command{
		Name:                  "catalog",
		EnableShellCompletion: true,
		Usage:                 "Browse the diagnostic one-liner reference",
		Description: `List diagnostic commands for Linux performance analysis, grouped by
the resource they probe (cpu, memory, io, network, timekeeping).

# Examples

Full catalog:
  kairos catalog

Timekeeping probes only:
  kairos catalog --category timekeeping

Everything mentioning retransmits:
  kairos catalog --keyword retrans -f table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"c"},
				Usage:   fmt.Sprintf("restrict to one category %v", catalog.Categories),
			},
			&cli.StringFlag{
				Name:    "keyword",
				Aliases: []string{"k"},
				Usage:   "case-insensitive substring match on name, command, and description",
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

			q := catalog.Query{
				Category: catalog.Category(cmd.String("category")),
				Keyword:  cmd.String("keyword"),
			}
			if q.Category != "" && !q.Category.IsValid() {
				return fmt.Errorf("unknown category: %q, supported values: %v",
					q.Category, catalog.Categories)
			}

			return writer.Serialize(ctx, catalog.New(q, version))
		},
	}
}
