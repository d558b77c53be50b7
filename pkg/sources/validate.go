package sources

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ptnexus/apdb/pkg/schema"
)

// Validate checks the configuration for errors and collects warnings.
func (c *SourcesConfig) Validate() error {
	if len(c.LegacyFiles) == 0 {
		return fmt.Errorf("no legacy files specified in configuration")
	}

	seen := make(map[string]int)
	for i := range c.LegacyFiles {
		f := &c.LegacyFiles[i]
		if err := f.Validate(); err != nil {
			return fmt.Errorf("legacy file %d: %w", i+1, err)
		}
		if j, ok := seen[f.Path]; ok {
			c.Warnings = append(c.Warnings, ValidationWarning{
				Index:      i + 1,
				Field:      "path",
				Message:    fmt.Sprintf("file is also listed at position %d", j),
				Suggestion: "Remove the duplicate entry to avoid loading rows twice",
			})
			continue
		}
		seen[f.Path] = i + 1
	}

	return nil
}

// Validate checks a single legacy file entry. It normalizes the table
// name to lower case. File existence is checked by the I/O layer.
func (f *LegacyFile) Validate() error {
	f.Table = strings.ToLower(strings.TrimSpace(f.Table))
	f.Path = strings.TrimSpace(f.Path)

	if f.Table == "" {
		return fmt.Errorf("table is required")
	}
	if !slices.Contains(schema.LegacyTables(), f.Table) {
		return fmt.Errorf(
			"unknown table '%s', valid tables are: %s",
			f.Table, strings.Join(schema.LegacyTables(), ", "),
		)
	}
	if f.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}
