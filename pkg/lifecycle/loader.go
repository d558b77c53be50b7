package lifecycle

import "context"

// Loader copies legacy export files into legacy staging tables.
type Loader interface {
	// Load reads files listed in sources.yaml and returns the number of
	// rows written per table.
	Load(ctx context.Context) (map[string]int64, error)
}
