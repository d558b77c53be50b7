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

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/internal/iobootstrap"
	"github.com/ptnexus/apdb/internal/iocodemap"
	"github.com/spf13/cobra"
)

// getLookupCmd returns the lookup command.
func getLookupCmd() *cobra.Command {
	lookupCmd := &cobra.Command{
		Use:   "lookup <code-type> <code>",
		Short: "Translate a county code with the code maps",
		Long: `Find the standard code of a county source code.

The lookup uses active code maps of the configured jurisdiction.
With --year only mappings effective in that year qualify. When
several versions match, the highest version wins.

Examples:
  apdb lookup grade A+
  apdb lookup grade A_PLUS --reverse
  apdb lookup condition A -y 2024`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLookup(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	lookupCmd.Flags().IntP(
		"year", "y", 0,
		"only use mappings effective in this year",
	)
	lookupCmd.Flags().BoolP(
		"reverse", "r", false,
		"translate a standard code back to the source code",
	)

	return lookupCmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	codeType, code := args[0], args[1]

	var year *int
	if cmd.Flags().Changed("year") {
		y, _ := cmd.Flags().GetInt("year")
		year = &y
	}
	reverse, _ := cmd.Flags().GetBool("reverse")

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = requireSchema(ctx, op); err != nil {
		return err
	}

	ref, err := iobootstrap.New(cfg, op).Existing(ctx)
	if err != nil {
		return err
	}

	gormDB, err := op.GORM()
	if err != nil {
		return err
	}
	cm := iocodemap.New(gormDB)

	resolve := cm.ResolveToStandard
	if reverse {
		resolve = cm.ResolveToSource
	}
	res, ok, err := resolve(ctx, ref.JurisdictionID, codeType, code, year)
	if err != nil {
		return err
	}
	if !ok {
		gn.Warn("No active mapping for <em>%s</em> '%s'", codeType, code)
		return nil
	}

	fmt.Println(res)
	return nil
}
