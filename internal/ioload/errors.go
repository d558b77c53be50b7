package ioload

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/pkg/errcode"
)

// NotConnectedError is returned when there is no connection pool.
func NotConnectedError() error {
	msg := "Load attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("no connection pool"),
	}
}

// NoSourcesError is returned when no file matches requested tables.
func NoSourcesError(tables []string) error {
	msg := `No legacy files to load

<em>How to fix:</em>
  1. Add files to <em>~/.config/apdb/sources.yaml</em>
  2. Check table names given with <em>--tables</em>`

	return &gn.Error{
		Code: errcode.LoadNoSourcesError,
		Msg:  msg,
		Err: fmt.Errorf(
			"no legacy files for tables [%s]", strings.Join(tables, ", ")),
	}
}

// FileOpenError is returned when a legacy file cannot be opened.
func FileOpenError(path string, err error) error {
	msg := "Cannot open legacy file <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.LoadFileOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to open %s: %w", path, err),
	}
}

// HeaderError is returned when the header row cannot be read.
func HeaderError(path string, err error) error {
	msg := `Cannot read header of <em>%s</em>

Legacy files must be tab-delimited with column names in the first row.`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.LoadHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read header of %s: %w", path, err),
	}
}

// ReadError is returned when a data row cannot be parsed.
func ReadError(path string, line int, err error) error {
	msg := "Cannot read line <em>%d</em> of <em>%s</em>"
	vars := []any{line, path}

	return &gn.Error{
		Code: errcode.LoadReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read %s line %d: %w", path, line, err),
	}
}

// UnknownTableError is returned for a table without legacy columns.
func UnknownTableError(table, path string) error {
	msg := "Unknown legacy table <em>%s</em> for <em>%s</em>"
	vars := []any{table, path}

	return &gn.Error{
		Code: errcode.LoadUnknownTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown legacy table %s", table),
	}
}

// MissingColumnError is returned when a required column is absent.
func MissingColumnError(path, column string) error {
	msg := "Legacy file <em>%s</em> has no <em>%s</em> column"
	vars := []any{path, column}

	return &gn.Error{
		Code: errcode.LoadMissingColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("column %s is missing in %s", column, path),
	}
}

// CopyError is returned when rows cannot be written.
func CopyError(table, path string, err error) error {
	msg := `Cannot copy rows of <em>%s</em> into <em>%s</em>

<em>How to fix:</em>
  1. Create the schema: <em>apdb create</em>
  2. Check database logs for details`
	vars := []any{path, table}

	return &gn.Error{
		Code: errcode.LoadCopyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to copy %s into %s: %w", path, table, err),
	}
}

// TruncateError is returned when legacy tables cannot be emptied.
func TruncateError(tables []string, err error) error {
	msg := "Cannot truncate legacy tables <em>%s</em>"
	vars := []any{strings.Join(tables, ", ")}

	return &gn.Error{
		Code: errcode.LoadTruncateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to truncate %v: %w", tables, err),
	}
}

// CancelledError is returned when loading is interrupted.
func CancelledError(err error) error {
	msg := "Loading of legacy files cancelled"

	return &gn.Error{
		Code: errcode.LoadCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("load cancelled: %w", err),
	}
}
