package ioload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gnames/gn"
	"github.com/ptnexus/apdb/internal/iotesting"
	"github.com/ptnexus/apdb/pkg/config"
	"github.com/ptnexus/apdb/pkg/errcode"
	"github.com/ptnexus/apdb/pkg/lifecycle"
	"github.com/ptnexus/apdb/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu        sync.Mutex
	columns   map[string][]string
	rows      map[string][][]any
	batches   int
	truncated []string
	analyzed  []string
	err       error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{
		columns: make(map[string][]string),
		rows:    make(map[string][][]any),
	}
}

func (w *fakeWriter) WriteRows(
	_ context.Context,
	table string,
	columns []string,
	rows [][]any,
) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return 0, w.err
	}
	w.columns[table] = columns
	for _, v := range rows {
		w.rows[table] = append(w.rows[table], append([]any(nil), v...))
	}
	w.batches++
	return int64(len(rows)), nil
}

func (w *fakeWriter) Truncate(_ context.Context, tables []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.truncated = append(w.truncated, tables...)
	return nil
}

func (w *fakeWriter) Analyze(_ context.Context, tables []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.analyzed = append(w.analyzed, tables...)
	return nil
}

type fakeSources struct {
	files []sources.LegacyFile
}

func (s fakeSources) Load() (*sources.SourcesConfig, error) {
	return &sources.SourcesConfig{LegacyFiles: s.files}, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestLoader(cfg *config.Config, w RowWriter, files ...sources.LegacyFile) *loader {
	return &loader{cfg: cfg, sources: fakeSources{files: files}, writer: w}
}

const propertyTSV = "ACCT\tsite_addr_1\ttot_mkt_val\tunknown\tTOT_APPR_VAL\n" +
	"1234567890123\t100 MAIN ST\t150,000\tx\t\n" +
	"\t200 OAK ST\t1\tx\t2\n" +
	"  \t300 ELM ST\t1\tx\t2\n" +
	"0000000000002\t 5\" PIPE RD \n"

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	props := writeFile(t, dir, "real_acct.txt", propertyTSV)
	elems1 := writeFile(t, dir, "structural_elem1.txt",
		"acct\tbld_num\tcode\ttype_dscr\n1\t1\tFND\tFoundation\n2\t1\tRF\tRoof\n")
	elems2 := writeFile(t, dir, "structural_elem2.txt",
		"acct\tbld_num\tcode\ttype_dscr\n3\t1\tEXT\tExterior\n")

	cfg := config.New()
	cfg.Update([]config.Option{config.OptDatabaseBatchSize(1), config.OptJobsNumber(2)})
	w := newFakeWriter()
	l := newTestLoader(cfg, w,
		sources.LegacyFile{Table: "property_data", Path: props},
		sources.LegacyFile{Table: "structural_elements", Path: elems1},
		sources.LegacyFile{Table: "structural_elements", Path: elems2},
	)

	res, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"property_data":       2,
		"structural_elements": 3,
	}, res)
	assert.Equal(t, 5, w.batches)
	assert.Empty(t, w.truncated)
	assert.Equal(t, []string{"property_data", "structural_elements"}, w.analyzed)

	assert.Equal(t,
		[]string{"acct", "site_addr_1", "tot_mkt_val", "tot_appr_val"},
		w.columns["property_data"],
	)
	assert.Equal(t,
		[][]any{
			{"1234567890123", "100 MAIN ST", "150,000", nil},
			{"0000000000002", "5\" PIPE RD", nil, nil},
		},
		w.rows["property_data"],
	)
}

func TestLoadQuotedValues(t *testing.T) {
	dir := t.TempDir()
	props := writeFile(t, dir, "real_acct.txt",
		"acct\tlgl_1\n0001\t\"A\" BLK 2 TR 4\n0002\tLT 5\n0003\tLT 6\n")

	w := newFakeWriter()
	l := newTestLoader(config.New(), w,
		sources.LegacyFile{Table: "property_data", Path: props},
	)

	res, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"property_data": 3}, res)
	assert.Equal(t,
		[][]any{
			{"0001", "\"A\" BLK 2 TR 4"},
			{"0002", "LT 5"},
			{"0003", "LT 6"},
		},
		w.rows["property_data"],
	)
}

func TestLoadFilterAndTruncate(t *testing.T) {
	dir := t.TempDir()
	fixtures := writeFile(t, dir, "fixtures.txt",
		"acct\tbld_num\ttype\ttype_dscr\tunits\n1\t1\tFPL\tFireplace\t2\n")

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptLoadTables([]string{"fixtures"}),
		config.OptLoadTruncate(true),
	})
	w := newFakeWriter()
	l := newTestLoader(cfg, w,
		sources.LegacyFile{Table: "property_data", Path: filepath.Join(dir, "none.txt")},
		sources.LegacyFile{Table: "fixtures", Path: fixtures},
	)

	res, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"fixtures": 1}, res)
	assert.Equal(t, []string{"fixtures"}, w.truncated)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	noAcct := writeFile(t, dir, "no_acct.txt", "bld_num\tcode\n1\tFND\n")
	empty := writeFile(t, dir, "empty.txt", "")
	good := writeFile(t, dir, "good.txt", "acct\ttype\n1\tFPL\n")

	tests := []struct {
		msg    string
		file   sources.LegacyFile
		tables []string
		werr   error
		code   gn.ErrorCode
	}{
		{
			"missing file",
			sources.LegacyFile{Table: "fixtures", Path: filepath.Join(dir, "none.txt")},
			nil, nil, errcode.LoadFileOpenError,
		},
		{
			"no acct column",
			sources.LegacyFile{Table: "structural_elements", Path: noAcct},
			nil, nil, errcode.LoadMissingColumnError,
		},
		{
			"empty file",
			sources.LegacyFile{Table: "fixtures", Path: empty},
			nil, nil, errcode.LoadHeaderError,
		},
		{
			"unknown table",
			sources.LegacyFile{Table: "owners", Path: good},
			nil, nil, errcode.LoadUnknownTableError,
		},
		{
			"no matching files",
			sources.LegacyFile{Table: "fixtures", Path: good},
			[]string{"property_data"}, nil, errcode.LoadNoSourcesError,
		},
		{
			"writer fails",
			sources.LegacyFile{Table: "fixtures", Path: good},
			nil, errors.New("copy failed"), errcode.LoadCopyError,
		},
	}

	for _, v := range tests {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptLoadTables(v.tables)})
		w := newFakeWriter()
		w.err = v.werr

		_, err := newTestLoader(cfg, w, v.file).Load(context.Background())
		require.Error(t, err, v.msg)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
	}
}

func TestLoadCancelled(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "acct\ttype\n1\tFPL\n2\tFPL\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.New()
	cfg.Update([]config.Option{config.OptDatabaseBatchSize(1)})
	l := newTestLoader(cfg, newFakeWriter(),
		sources.LegacyFile{Table: "fixtures", Path: good})

	_, err := l.Load(ctx)
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.LoadCancelledError, gnErr.Code)
}

func TestNotConnected(t *testing.T) {
	l := &loader{cfg: config.New(), operator: &iotesting.GORMOperator{}}
	_, err := l.Load(context.Background())
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}

func TestLoaderContract(t *testing.T) {
	var _ lifecycle.Loader = New(nil, nil, nil)
}
