package iocodemap

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/pkg/errcode"
)

// LookupError is returned when the code_maps table cannot be queried.
func LookupError(codeType, code string, err error) error {
	msg := "Cannot look up <em>%s</em> code <em>%s</em>"
	vars := []any{codeType, code}

	return &gn.Error{
		Code: errcode.CodeMapLookupError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to look up %s code %q: %w", codeType, code, err),
	}
}
