// Package config provides configuration management for apdb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Migrate: tax_year, data_source, with_prior_year, jurisdiction.*
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Migrate.Resume, Load.Truncate, Load.Tables (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use APDB_ prefix with underscores for nesting:
//
//	APDB_DATABASE_HOST=localhost
//	APDB_DATABASE_PORT=5432
//	APDB_MIGRATE_TAX_YEAR=2024
//	APDB_MIGRATE_JURISDICTION_FIPS_CODE=48201
//	APDB_LOG_LEVEL=info
//	APDB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete apdb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Migrate contains settings of the legacy-to-canonical migration.
	Migrate MigrateConfig `mapstructure:"migrate" yaml:"migrate"`

	// Load contains settings specific to the load command.
	Load LoadConfig `mapstructure:"load" yaml:"load"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of legacy records in one migration window,
	// and the number of rows sent per COPY during load.
	// Every migration window is committed as a single transaction,
	// so larger windows hold locks longer.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// MigrateConfig contains settings of the migrate command.
type MigrateConfig struct {
	// TaxYear is the year assigned to valuations created from
	// current legacy values.
	TaxYear int `mapstructure:"tax_year" yaml:"tax_year"`

	// DataSource is the provenance label stored with each valuation.
	DataSource string `mapstructure:"data_source" yaml:"data_source"`

	// WithPriorYear creates an additional valuation for TaxYear-1
	// from the prior_* legacy columns when they carry values.
	WithPriorYear bool `mapstructure:"with_prior_year" yaml:"with_prior_year"`

	// Jurisdiction describes the county that produced the legacy export.
	Jurisdiction JurisdictionConfig `mapstructure:"jurisdiction" yaml:"jurisdiction"`

	// Resume skips reference data bootstrap and reuses the jurisdiction
	// and lookup tables created by an earlier run.
	// Runtime-only field.
	Resume bool `mapstructure:"-" yaml:"-"`
}

// JurisdictionConfig describes the taxing authority of the legacy data.
type JurisdictionConfig struct {
	// State is a two-letter state code.
	State string `mapstructure:"state" yaml:"state"`

	CountyName string `mapstructure:"county_name" yaml:"county_name"`

	// FIPSCode is the five-digit federal county code. It identifies
	// the jurisdiction when a migration is resumed.
	FIPSCode string `mapstructure:"fips_code" yaml:"fips_code"`

	FullName     string `mapstructure:"full_name" yaml:"full_name"`
	ShortName    string `mapstructure:"short_name" yaml:"short_name"`
	SourceSystem string `mapstructure:"source_system" yaml:"source_system"`
	DataFormat   string `mapstructure:"data_format" yaml:"data_format"`

	// DefaultCity is written to every situs address, the legacy
	// export does not carry a city.
	DefaultCity string `mapstructure:"default_city" yaml:"default_city"`
}

// LoadConfig contains settings of the load command.
type LoadConfig struct {
	// Tables limits loading to the given legacy tables.
	// Empty slice means all files from sources.yaml.
	// Runtime-only field.
	Tables []string `mapstructure:"-" yaml:"-"`

	// Truncate empties target legacy tables before loading.
	// Runtime-only field.
	Truncate bool `mapstructure:"-" yaml:"-"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "apdb",
			SSLMode:   "disable",
			BatchSize: 1000,
		},
		Migrate: MigrateConfig{
			TaxYear:    2024,
			DataSource: "HCAD_MIGRATION",
			Jurisdiction: JurisdictionConfig{
				State:        "TX",
				CountyName:   "Harris",
				FIPSCode:     "48201",
				FullName:     "Harris County, Texas",
				ShortName:    "HCAD",
				SourceSystem: "HCAD Export",
				DataFormat:   "CSV",
				DefaultCity:  "Houston",
			},
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
