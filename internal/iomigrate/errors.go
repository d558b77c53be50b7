package iomigrate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/pkg/errcode"
)

// NotConnectedError is returned when the GORM handle is not available.
func NotConnectedError(err error) error {
	msg := "Migration attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database: %w", err),
	}
}

// CountError is returned when legacy properties cannot be counted.
func CountError(err error) error {
	msg := `Cannot count legacy properties

<em>How to fix:</em>
  1. Create the schema: <em>apdb create</em>
  2. Load legacy exports: <em>apdb load</em>`

	return &gn.Error{
		Code: errcode.MigrateCountError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to count legacy properties: %w", err),
	}
}

// WindowError is returned when a window of records cannot be committed.
// Windows before offset stay in the database.
func WindowError(offset int, err error) error {
	msg := `Migration stopped at record <em>%d</em>

Records before this offset are saved.

<em>How to fix:</em>
  1. Check database logs and connectivity
  2. Run <em>apdb migrate --resume</em>, migrated accounts are
     reported as duplicates`
	vars := []any{offset}

	return &gn.Error{
		Code: errcode.MigrateWindowError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to migrate window at offset %d: %w", offset, err),
	}
}

// CancelledError is returned when the migration is interrupted.
func CancelledError(offset int, err error) error {
	msg := `Migration cancelled at record <em>%d</em>

Records before this offset are saved.
Continue with <em>apdb migrate --resume</em>`
	vars := []any{offset}

	return &gn.Error{
		Code: errcode.MigrateCancelledError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("migration cancelled at offset %d: %w", offset, err),
	}
}
