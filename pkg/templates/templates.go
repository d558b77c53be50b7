// Package templates provides embedded YAML templates.
package templates

import _ "embed"

// SourcesYAML contains the default sources.yaml template that lists
// legacy export files.
//
//go:embed sources.yaml
var SourcesYAML string

// ConfigYAML contains the default config.yaml template for application configuration.
//
//go:embed config.yaml
var ConfigYAML string

// CodeMapsYAML contains standard code mappings seeded for every new
// jurisdiction.
//
//go:embed codemaps.yaml
var CodeMapsYAML string
