package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

// report formats counters as an aligned two-column table sorted by name.
// Zero counters are omitted.
func report[T int | int64](title string, counts map[string]T) string {
	keys := slices.Sorted(maps.Keys(counts))
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	for _, k := range keys {
		if counts[k] == 0 {
			continue
		}
		fmt.Fprintf(&sb, "  %-*s %12s\n", width, k, humanize.Comma(int64(counts[k])))
	}
	return sb.String()
}
