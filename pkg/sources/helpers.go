package sources

import (
	"path/filepath"
	"slices"
	"strings"
)

// Filter returns files that load into one of the given tables.
// Empty tables means all files.
func (c *SourcesConfig) Filter(tables []string) []LegacyFile {
	if len(tables) == 0 {
		return slices.Clone(c.LegacyFiles)
	}
	var res []LegacyFile
	for _, f := range c.LegacyFiles {
		if slices.Contains(tables, f.Table) {
			res = append(res, f)
		}
	}
	return res
}

// Tables returns distinct target tables in the order of first use.
func Tables(files []LegacyFile) []string {
	var res []string
	for _, f := range files {
		if !slices.Contains(res, f.Table) {
			res = append(res, f.Table)
		}
	}
	return res
}

// ExpandPath replaces a leading ~ with homeDir.
func ExpandPath(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
