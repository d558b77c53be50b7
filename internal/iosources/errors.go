package iosources

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/pkg/errcode"
)

// SourcesConfigError is returned when sources.yaml cannot be read or
// is invalid.
func SourcesConfigError(path string, err error) error {
	msg := `Cannot use sources configuration <em>%s</em>

<em>How to fix:</em>
  1. Check the file is valid YAML with a <em>legacy_files</em> list
  2. Every entry needs a <em>table</em> and a <em>path</em>
  3. Delete the file to get a fresh template on next run`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.LoadSourcesConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid sources config %s: %w", path, err),
	}
}
