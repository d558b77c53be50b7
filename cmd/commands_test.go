package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoadCmd(t *testing.T) {
	cmd := getLoadCmd()
	assert.Equal(t, "load", cmd.Use)
	assert.Contains(t, cmd.Long, "sources.yaml")
	for _, name := range []string{"tables", "truncate", "batch-size", "jobs"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestGetMigrateCmd(t *testing.T) {
	cmd := getMigrateCmd()
	assert.Equal(t, "migrate", cmd.Use)
	assert.Contains(t, cmd.Long, "--resume")

	tests := []struct {
		name, short string
	}{
		{"batch-size", "b"},
		{"tax-year", "y"},
		{"resume", "r"},
		{"prior-year", ""},
	}
	for _, v := range tests {
		f := cmd.Flags().Lookup(v.name)
		require.NotNil(t, f, v.name)
		assert.Equal(t, v.short, f.Shorthand, v.name)
	}
}

func TestGetLookupCmd(t *testing.T) {
	cmd := getLookupCmd()
	assert.True(t, strings.HasPrefix(cmd.Use, "lookup"))
	assert.NotNil(t, cmd.Flags().Lookup("year"))
	assert.NotNil(t, cmd.Flags().Lookup("reverse"))

	assert.Error(t, cmd.Args(cmd, []string{"grade"}))
	assert.Error(t, cmd.Args(cmd, []string{"grade", "A", "B"}))
	assert.NoError(t, cmd.Args(cmd, []string{"grade", "A+"}))
}
