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
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/internal/iobootstrap"
	"github.com/ptnexus/apdb/internal/iomigrate"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
func getMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate legacy records into the canonical model",
		Long: `Convert staged legacy records into canonical property data.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Creates the jurisdiction, lookup types and seed code maps
  3. Reads legacy properties in windows ordered by account
  4. Creates addresses, properties, valuations, structures,
     structure elements, extra features and fixtures
  5. Commits every window as one transaction

A record that fails is rolled back alone and counted, the rest of
its window still commits. Use --resume to continue after an
interrupted run, reference data is then reused and already migrated
accounts are counted as duplicates.

Examples:
  apdb migrate
  apdb migrate --tax-year 2024 --batch-size 500
  apdb migrate -y 2024 --prior-year
  apdb migrate --resume`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runMigrate(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	migrateCmd.Flags().IntP(
		"batch-size", "b", 0,
		"legacy records per transaction window",
	)
	migrateCmd.Flags().IntP(
		"tax-year", "y", 0,
		"tax year of current valuations",
	)
	migrateCmd.Flags().BoolP(
		"resume", "r", false,
		"reuse reference data of an earlier run",
	)
	migrateCmd.Flags().Bool(
		"prior-year", false,
		"create valuations of the previous tax year",
	)

	return migrateCmd
}

func runMigrate(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	migrateOpts := flagOptions(cmd,
		batchSizeFlag, taxYearFlag, resumeFlag, priorYearFlag,
	)
	if len(migrateOpts) > 0 {
		cfg.Update(migrateOpts)
	}

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = requireSchema(ctx, op); err != nil {
		return err
	}

	j := cfg.Migrate.Jurisdiction
	gn.Info("Migrating <em>%s</em> (%s) for tax year <em>%d</em>...",
		j.FullName, j.FIPSCode, cfg.Migrate.TaxYear)

	m := iomigrate.New(cfg, op, iobootstrap.New(cfg, op))
	res, err := m.MigrateAll(ctx)
	if err != nil {
		return err
	}

	fmt.Print(report("Entities created:", res))
	return nil
}
