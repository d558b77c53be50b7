// Package sources provides configuration and validation of legacy
// export files.
//
// This package defines the schema for sources.yaml, which lists the flat
// county export files that 'apdb load' copies into legacy staging tables.
// It validates the list, filters it by table and resolves file paths.
// Reading the file is left to the I/O layer.
package sources

// Sources loads the sources.yaml configuration.
type Sources interface {
	Load() (*SourcesConfig, error)
}

// SourcesConfig represents the complete sources.yaml configuration file.
type SourcesConfig struct {
	// LegacyFiles is the list of files to load, in load order.
	LegacyFiles []LegacyFile `yaml:"legacy_files"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Index      int    // 1-based position of the file in sources.yaml
	Field      string // Field name that has the issue
	Message    string // Description of the issue
	Suggestion string // How to fix it
}

// LegacyFile is one tab-delimited export file.
type LegacyFile struct {
	// Table is the legacy staging table receiving the rows, one of
	// property_data, structural_elements, extra_features_detail, fixtures.
	Table string `yaml:"table"`

	// Path is the location of the file. A leading ~ means the home
	// directory.
	Path string `yaml:"path"`
}
