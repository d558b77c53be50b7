package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/pkg/errcode"
)

// caller returns the name of the function that created the error.
func caller() string {
	pc, _, _, _ := runtime.Caller(2)
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return "unknown"
}

// CreateDirError is returned when an apdb directory cannot be created.
func CreateDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create directory <em>%s</em>",
		Vars: []any{dir},
		Err: fmt.Errorf("from %s: cannot create directory %s: %w",
			caller(), dir, err),
	}
}

// CopyFileError is returned when a template cannot be written.
func CopyFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  "Cannot copy template file to <em>%s</em>",
		Vars: []any{path},
		Err: fmt.Errorf("from %s: cannot copy file to %s: %w",
			caller(), path, err),
	}
}

// ReadFileError is returned when a configuration file cannot be read
// or parsed.
func ReadFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  "Cannot read <em>%s</em>",
		Vars: []any{path},
		Err: fmt.Errorf("from %s: cannot read %s: %w",
			caller(), path, err),
	}
}
