package lifecycle

import (
	"context"

	"github.com/google/uuid"
)

// CodeMapper translates between jurisdiction source codes and
// standard codes. Lookups are read-only.
type CodeMapper interface {
	// ResolveToStandard finds the standard code of a source code.
	// When year is not nil only mappings effective in that year qualify.
	// The boolean is false when no active mapping exists.
	ResolveToStandard(
		ctx context.Context,
		jurisdictionID uuid.UUID,
		codeType, sourceCode string,
		year *int,
	) (string, bool, error)

	// ResolveToSource is the reverse of ResolveToStandard.
	ResolveToSource(
		ctx context.Context,
		jurisdictionID uuid.UUID,
		codeType, stdCode string,
		year *int,
	) (string, bool, error)
}
