package sources_test

import (
	"path/filepath"
	"testing"

	"github.com/ptnexus/apdb/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		msg   string
		files []sources.LegacyFile
		err   string
	}{
		{"empty", nil, "no legacy files"},
		{
			"missing table",
			[]sources.LegacyFile{{Path: "a.txt"}},
			"table is required",
		},
		{
			"unknown table",
			[]sources.LegacyFile{{Table: "owners", Path: "a.txt"}},
			"unknown table 'owners'",
		},
		{
			"missing path",
			[]sources.LegacyFile{{Table: "fixtures", Path: " "}},
			"path is required",
		},
		{
			"valid",
			[]sources.LegacyFile{
				{Table: " Property_Data ", Path: "real_acct.txt"},
				{Table: "fixtures", Path: "fixtures.txt"},
			},
			"",
		},
	}

	for _, v := range tests {
		cfg := sources.SourcesConfig{LegacyFiles: v.files}
		err := cfg.Validate()
		if v.err == "" {
			require.NoError(t, err, v.msg)
			assert.Equal(t, "property_data", cfg.LegacyFiles[0].Table, v.msg)
			continue
		}
		require.Error(t, err, v.msg)
		assert.Contains(t, err.Error(), v.err, v.msg)
	}
}

func TestValidate_DuplicatePath(t *testing.T) {
	cfg := sources.SourcesConfig{LegacyFiles: []sources.LegacyFile{
		{Table: "fixtures", Path: "fixtures.txt"},
		{Table: "fixtures", Path: "fixtures.txt"},
	}}
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Warnings, 1)
	assert.Equal(t, 2, cfg.Warnings[0].Index)
	assert.Equal(t, "path", cfg.Warnings[0].Field)
}

func TestFilter(t *testing.T) {
	cfg := sources.SourcesConfig{LegacyFiles: []sources.LegacyFile{
		{Table: "property_data", Path: "real_acct.txt"},
		{Table: "structural_elements", Path: "structural_elem1.txt"},
		{Table: "structural_elements", Path: "structural_elem2.txt"},
		{Table: "fixtures", Path: "fixtures.txt"},
	}}

	assert.Len(t, cfg.Filter(nil), 4)

	res := cfg.Filter([]string{"structural_elements"})
	require.Len(t, res, 2)
	assert.Equal(t, "structural_elem2.txt", res[1].Path)

	assert.Equal(t,
		[]string{"property_data", "structural_elements", "fixtures"},
		sources.Tables(cfg.LegacyFiles),
	)
}

func TestExpandPath(t *testing.T) {
	home := filepath.Join("/home", "appraiser")
	tests := []struct {
		input, res string
	}{
		{"~", home},
		{"~/data/real_acct.txt", filepath.Join(home, "data", "real_acct.txt")},
		{"/srv/hcad/real_acct.txt", "/srv/hcad/real_acct.txt"},
		{"relative.txt", "relative.txt"},
		{"~other/file", "~other/file"},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, sources.ExpandPath(v.input, home), v.input)
	}
}
