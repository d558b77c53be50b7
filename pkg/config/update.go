package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Migrate.Resume, Load.*).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}
	i = c.Database.BatchSize
	if i > 0 {
		res = append(res, OptDatabaseBatchSize(i))
	}

	i = c.Migrate.TaxYear
	if i > 0 {
		res = append(res, OptMigrateTaxYear(i))
	}
	s = c.Migrate.DataSource
	if s != "" {
		res = append(res, OptMigrateDataSource(s))
	}
	if c.Migrate.WithPriorYear {
		res = append(res, OptMigrateWithPriorYear(true))
	}
	res = append(res, c.Migrate.Jurisdiction.toOptions()...)

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func (j JurisdictionConfig) toOptions() []Option {
	var res []Option
	fields := []struct {
		val string
		opt func(string) Option
	}{
		{j.State, OptJurisdictionState},
		{j.CountyName, OptJurisdictionCountyName},
		{j.FIPSCode, OptJurisdictionFIPSCode},
		{j.FullName, OptJurisdictionFullName},
		{j.ShortName, OptJurisdictionShortName},
		{j.SourceSystem, OptJurisdictionSourceSystem},
		{j.DataFormat, OptJurisdictionDataFormat},
		{j.DefaultCity, OptJurisdictionDefaultCity},
	}
	for _, f := range fields {
		if f.val != "" {
			res = append(res, f.opt(f.val))
		}
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidYear(name string, i int) bool {
	res := i >= 1800 && i <= 2200
	if !res {
		gn.Warn("<em>%s</em> is not a plausible year, ignoring %d", name, i)
	}
	return res
}

func isValidLen(name, s string, l int) bool {
	res := len(s) == l
	if !res {
		gn.Warn(
			"<em>%s</em> has to be %d characters long, ignoring '%s'",
			name, l, s,
		)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
