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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/internal/iofs"
	"github.com/ptnexus/apdb/internal/iologger"
	app "github.com/ptnexus/apdb/pkg"
	"github.com/ptnexus/apdb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
// Every call creates an independent command tree.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "apdb",
		Short:   "APdb migrates appraisal district exports to a canonical database",
		Long: `APdb moves county appraisal district exports into a canonical
PostgreSQL property database.

Features:
  - Schema Management: create canonical and legacy staging tables
  - Legacy Loading: copy tab-delimited export files into staging tables
  - Migration: convert staged records into jurisdictions, properties,
    valuations, structures, features and fixtures
  - Code Maps: translate county codes to standard codes

Typical workflow:
  apdb create
  apdb load
  apdb migrate

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (APDB_*)
  3. Config file (~/.config/apdb/config.yaml)
  4. Built-in defaults`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "apdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for apdb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getSchemaCmd(),
		getLoadCmd(),
		getMigrateCmd(),
		getLookupCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureSourcesFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Env variables are bound one by one so it is clear which of them
	// are allowed. They match the fields of config.ToOptions().
	v.SetEnvPrefix("APDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.host", "APDB_DATABASE_HOST")
	v.BindEnv("database.port", "APDB_DATABASE_PORT")
	v.BindEnv("database.user", "APDB_DATABASE_USER")
	v.BindEnv("database.password", "APDB_DATABASE_PASSWORD")
	v.BindEnv("database.database", "APDB_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "APDB_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "APDB_DATABASE_BATCH_SIZE")

	// Migration configuration
	v.BindEnv("migrate.tax_year", "APDB_MIGRATE_TAX_YEAR")
	v.BindEnv("migrate.data_source", "APDB_MIGRATE_DATA_SOURCE")
	v.BindEnv("migrate.with_prior_year", "APDB_MIGRATE_WITH_PRIOR_YEAR")
	for _, key := range jurisdictionKeys {
		env := "APDB_MIGRATE_JURISDICTION_" + strings.ToUpper(key)
		v.BindEnv("migrate.jurisdiction."+key, env)
	}

	// Log configuration
	v.BindEnv("log.level", "APDB_LOG_LEVEL")
	v.BindEnv("log.format", "APDB_LOG_FORMAT")
	v.BindEnv("log.destination", "APDB_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "APDB_JOBS_NUMBER")

	v.AutomaticEnv()
}

var jurisdictionKeys = []string{
	"state",
	"county_name",
	"fips_code",
	"full_name",
	"short_name",
	"source_system",
	"data_format",
	"default_city",
}
