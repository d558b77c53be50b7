/*
Copyright © 2026 The apdb Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/internal/ioload"
	"github.com/ptnexus/apdb/internal/iosources"
	"github.com/ptnexus/apdb/pkg/schema"
	"github.com/spf13/cobra"
)

// getLoadCmd returns the load command.
func getLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Load legacy export files into staging tables",
		Long: `Copy tab-delimited appraisal district exports into legacy staging tables.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Reads sources.yaml to find export files
  3. Matches file headers to staging table columns
  4. Copies rows in batches, several files at a time

Export files are configured in: ~/.config/apdb/sources.yaml
Valid tables: property_data, structural_elements,
extra_features_detail, fixtures.

Accounts in property_data are unique, so reloading it needs --truncate.

Examples:
  # Load all files from sources.yaml
  apdb load

  # Reload two tables from scratch
  apdb load --tables property_data,fixtures --truncate
  apdb load -t fixtures -x`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLoad(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	loadCmd.Flags().StringSliceP(
		"tables", "t", []string{},
		"legacy tables to load (empty = all)",
	)
	loadCmd.Flags().BoolP(
		"truncate", "x", false,
		"empty target tables before loading",
	)
	loadCmd.Flags().IntP(
		"batch-size", "b", 0,
		"rows per COPY batch",
	)
	loadCmd.Flags().IntP(
		"jobs", "j", 0,
		"number of files loaded concurrently",
	)

	return loadCmd
}

func runLoad(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	loadOpts := flagOptions(cmd,
		tablesFlag, truncateFlag, batchSizeFlag, jobsFlag,
	)
	if len(loadOpts) > 0 {
		cfg.Update(loadOpts)
	}

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = requireSchema(ctx, op); err != nil {
		return err
	}

	gn.Info("Loading legacy export files...")
	l := ioload.New(cfg, op, iosources.New(cfg))
	res, err := l.Load(ctx)
	if err != nil {
		return err
	}
	fmt.Print(report("Rows loaded:", res))

	totals := make(map[string]int64)
	for _, table := range schema.LegacyTables() {
		n, err := op.CountRows(ctx, table)
		if err != nil {
			return err
		}
		totals[table] = n
	}
	slog.Info("Staging tables", "rows", totals)
	fmt.Print(report("Rows in staging tables:", totals))

	gn.Info("Next step: run '<em>apdb migrate</em>'")
	return nil
}
