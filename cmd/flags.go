package cmd

import (
	"github.com/ptnexus/apdb/pkg/config"
	"github.com/spf13/cobra"
)

// funcFlag converts an explicitly set flag into config options.
// Flags left at their defaults produce no options, so values from
// config.yaml and environment stay in force.
type funcFlag func(cmd *cobra.Command) []config.Option

func flagOptions(cmd *cobra.Command, fs ...funcFlag) []config.Option {
	var res []config.Option
	for _, f := range fs {
		res = append(res, f(cmd)...)
	}
	return res
}

func batchSizeFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("batch-size") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("batch-size")
	return []config.Option{config.OptDatabaseBatchSize(i)}
}

func jobsFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("jobs") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("jobs")
	return []config.Option{config.OptJobsNumber(i)}
}

func taxYearFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("tax-year") {
		return nil
	}
	i, _ := cmd.Flags().GetInt("tax-year")
	return []config.Option{config.OptMigrateTaxYear(i)}
}

func resumeFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("resume") {
		return nil
	}
	b, _ := cmd.Flags().GetBool("resume")
	return []config.Option{config.OptMigrateResume(b)}
}

func priorYearFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("prior-year") {
		return nil
	}
	b, _ := cmd.Flags().GetBool("prior-year")
	return []config.Option{config.OptMigrateWithPriorYear(b)}
}

func tablesFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("tables") {
		return nil
	}
	ss, _ := cmd.Flags().GetStringSlice("tables")
	return []config.Option{config.OptLoadTables(ss)}
}

func truncateFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("truncate") {
		return nil
	}
	b, _ := cmd.Flags().GetBool("truncate")
	return []config.Option{config.OptLoadTruncate(b)}
}
