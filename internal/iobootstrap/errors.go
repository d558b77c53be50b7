package iobootstrap

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/pkg/errcode"
)

// NotConnectedError is returned when the GORM handle is not available.
func NotConnectedError(err error) error {
	msg := "Bootstrap attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database: %w", err),
	}
}

// JurisdictionError is returned when the jurisdiction cannot be created.
func JurisdictionError(fips string, err error) error {
	msg := `Cannot create jurisdiction with FIPS code <em>%s</em>

<em>Possible causes:</em>
  - The jurisdiction was already created by an earlier migration
  - Database schema is missing

<em>How to fix:</em>
  1. Continue the earlier migration: <em>apdb migrate --resume</em>
  2. Or start over: <em>apdb create</em>`
	vars := []any{fips}

	return &gn.Error{
		Code: errcode.BootstrapJurisdictionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to create jurisdiction %s: %w", fips, err),
	}
}

// LookupTypesError is returned when lookup types cannot be read from a
// legacy table or saved.
func LookupTypesError(table string, err error) error {
	msg := "Cannot create lookup types from <em>%s</em>"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.BootstrapLookupTypesError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to create lookup types from %s: %w", table, err),
	}
}

// CodeMapsError is returned when seed code maps cannot be saved.
func CodeMapsError(err error) error {
	msg := "Cannot create standard code maps"

	return &gn.Error{
		Code: errcode.BootstrapCodeMapsError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to create code maps: %w", err),
	}
}

// SeedError is returned when embedded code maps cannot be parsed.
func SeedError(err error) error {
	msg := "Cannot read built-in code maps"

	return &gn.Error{
		Code: errcode.BootstrapSeedError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to parse seed code maps: %w", err),
	}
}

// NotFoundError is returned when a resumed migration cannot find its
// jurisdiction.
func NotFoundError(fips string, err error) error {
	msg := `No jurisdiction with FIPS code <em>%s</em>

<em>How to fix:</em>
  1. Run migration without <em>--resume</em> to create reference data
  2. Check <em>migrate.jurisdiction.fips_code</em> in config.yaml`
	vars := []any{fips}

	return &gn.Error{
		Code: errcode.BootstrapNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("jurisdiction %s not found: %w", fips, err),
	}
}
