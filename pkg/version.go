// Package apdb migrates county appraisal district exports into a
// canonical property database.
package apdb

var (
	// Version of apdb. It is set during the build.
	Version = "v0.1.0"

	// Build timestamp. It is set during the build.
	Build = "n/a"
)
