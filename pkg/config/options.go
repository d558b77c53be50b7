package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of records per migration window
// and per bulk load.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptMigrateTaxYear sets the tax year of migrated valuations.
func OptMigrateTaxYear(i int) Option {
	return func(c *Config) {
		if isValidYear("Tax Year", i) {
			c.Migrate.TaxYear = i
		}
	}
}

// OptMigrateDataSource sets the provenance label of migrated valuations.
func OptMigrateDataSource(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data Source", s) {
			c.Migrate.DataSource = s
		}
	}
}

// OptMigrateWithPriorYear toggles creation of prior-year valuations.
func OptMigrateWithPriorYear(b bool) Option {
	return func(c *Config) {
		c.Migrate.WithPriorYear = b
	}
}

// OptMigrateResume reuses reference data of an earlier run instead of
// bootstrapping it.
// Runtime-only field - not in ToOptions().
func OptMigrateResume(b bool) Option {
	return func(c *Config) {
		c.Migrate.Resume = b
	}
}

// OptJurisdictionState sets the two-letter state code.
func OptJurisdictionState(s string) Option {
	s = strings.ToUpper(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidLen("Jurisdiction State", s, 2) {
			c.Migrate.Jurisdiction.State = s
		}
	}
}

// OptJurisdictionCountyName sets the county name.
func OptJurisdictionCountyName(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Jurisdiction County Name", s) {
			c.Migrate.Jurisdiction.CountyName = s
		}
	}
}

// OptJurisdictionFIPSCode sets the five-digit county FIPS code.
func OptJurisdictionFIPSCode(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidLen("Jurisdiction FIPS Code", s, 5) {
			c.Migrate.Jurisdiction.FIPSCode = s
		}
	}
}

// OptJurisdictionFullName sets the display name of the jurisdiction.
func OptJurisdictionFullName(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Jurisdiction Full Name", s) {
			c.Migrate.Jurisdiction.FullName = s
		}
	}
}

// OptJurisdictionShortName sets the abbreviation of the jurisdiction.
func OptJurisdictionShortName(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Jurisdiction Short Name", s) {
			c.Migrate.Jurisdiction.ShortName = s
		}
	}
}

// OptJurisdictionSourceSystem sets the label of the legacy system.
func OptJurisdictionSourceSystem(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Jurisdiction Source System", s) {
			c.Migrate.Jurisdiction.SourceSystem = s
		}
	}
}

// OptJurisdictionDataFormat sets the format label of the legacy export.
func OptJurisdictionDataFormat(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Jurisdiction Data Format", s) {
			c.Migrate.Jurisdiction.DataFormat = s
		}
	}
}

// OptJurisdictionDefaultCity sets the city written to situs addresses.
func OptJurisdictionDefaultCity(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Jurisdiction Default City", s) {
			c.Migrate.Jurisdiction.DefaultCity = s
		}
	}
}

// OptLoadTables limits loading to the given legacy tables.
// Runtime-only field - not in ToOptions().
func OptLoadTables(ss []string) Option {
	return func(c *Config) {
		var tables []string
		for _, s := range ss {
			s = strings.TrimSpace(s)
			if s != "" {
				tables = append(tables, s)
			}
		}
		if len(tables) > 0 {
			c.Load.Tables = tables
		}
	}
}

// OptLoadTruncate empties legacy tables before loading.
// Runtime-only field - not in ToOptions().
func OptLoadTruncate(b bool) Option {
	return func(c *Config) {
		c.Load.Truncate = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
