// Package ioload copies tab-delimited county exports into legacy staging
// tables. This is an impure I/O package that implements
// lifecycle.Loader.
package ioload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/ptnexus/apdb/pkg/config"
	"github.com/ptnexus/apdb/pkg/db"
	"github.com/ptnexus/apdb/pkg/lifecycle"
	"github.com/ptnexus/apdb/pkg/schema"
	"github.com/ptnexus/apdb/pkg/sources"
	"golang.org/x/sync/errgroup"
)

type loader struct {
	cfg      *config.Config
	operator db.Operator
	sources  sources.Sources
	writer   RowWriter
}

// New creates a Loader that copies files listed by src through the
// connection pool of op.
func New(
	cfg *config.Config,
	op db.Operator,
	src sources.Sources,
) lifecycle.Loader {
	return &loader{cfg: cfg, operator: op, sources: src}
}

// fileResult is the outcome of loading one file.
type fileResult struct {
	table string
	rows  int64
}

// Load copies all configured files, several at a time, and returns the
// number of rows written per table.
func (l *loader) Load(ctx context.Context) (map[string]int64, error) {
	start := time.Now()

	w, err := l.rowWriter()
	if err != nil {
		return nil, err
	}

	srcCfg, err := l.sources.Load()
	if err != nil {
		return nil, err
	}

	files := srcCfg.Filter(l.cfg.Load.Tables)
	if len(files) == 0 {
		return nil, NoSourcesError(l.cfg.Load.Tables)
	}

	if l.cfg.Load.Truncate {
		tables := sources.Tables(files)
		if err = w.Truncate(ctx, tables); err != nil {
			return nil, TruncateError(tables, err)
		}
		slog.Info("Legacy tables truncated", "tables", tables)
	}

	chIn := make(chan sources.LegacyFile)
	chOut := make(chan fileResult)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		for _, f := range files {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case chIn <- f:
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for range max(l.cfg.JobsNumber, 1) {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return l.worker(gCtx, w, chIn, chOut)
		})
	}

	go func() {
		wg.Wait()
		close(chOut)
	}()

	res := make(map[string]int64)
	for r := range chOut {
		res[r.table] += r.rows
	}

	if err = g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, CancelledError(ctx.Err())
		}
		return nil, err
	}

	l.analyze(ctx, w, res)

	var total int64
	for _, v := range res {
		total += v
	}
	slog.Info("Legacy files loaded",
		"files", len(files),
		"rows", humanize.Comma(total),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}

func (l *loader) rowWriter() (RowWriter, error) {
	if l.writer != nil {
		return l.writer, nil
	}
	pool := l.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}
	l.writer = newCopyWriter(pool)
	return l.writer, nil
}

func (l *loader) worker(
	ctx context.Context,
	w RowWriter,
	chIn <-chan sources.LegacyFile,
	chOut chan<- fileResult,
) error {
	for f := range chIn {
		n, err := l.loadFile(ctx, w, f)
		if err != nil {
			// drain so the feeder does not block
			for range chIn {
			}
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- fileResult{table: f.Table, rows: n}:
		}
	}
	return nil
}

// loadFile copies one file in batches of Database.BatchSize rows.
// Rows without an account number are skipped.
func (l *loader) loadFile(
	ctx context.Context,
	w RowWriter,
	f sources.LegacyFile,
) (int64, error) {
	known := schema.LegacyColumns(f.Table)
	if known == nil {
		return 0, UnknownTableError(f.Table, f.Path)
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return 0, FileOpenError(f.Path, err)
	}
	defer file.Close()

	r := newTSVReader(file)
	header, err := r.Read()
	if err != nil {
		return 0, HeaderError(f.Path, err)
	}
	cols := matchHeader(header, known)
	acctIdx := columnPosition(cols, "acct")
	if acctIdx < 0 {
		return 0, MissingColumnError(f.Path, "acct")
	}
	names := columnNames(cols)

	batchSize := max(l.cfg.Database.BatchSize, 1)
	batch := make([][]any, 0, batchSize)
	var total, skipped int64

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := w.WriteRows(ctx, f.Table, names, batch)
		if err != nil {
			return CopyError(f.Table, f.Path, err)
		}
		total += n
		batch = batch[:0]
		return nil
	}

	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, ReadError(f.Path, line, err)
		}

		vals := rowValues(record, cols)
		if vals[acctIdx] == nil {
			skipped++
			continue
		}
		batch = append(batch, vals)

		if len(batch) >= batchSize {
			if err = ctx.Err(); err != nil {
				return 0, err
			}
			if err = flush(); err != nil {
				return 0, err
			}
		}
	}
	if err = flush(); err != nil {
		return 0, err
	}

	if skipped > 0 {
		slog.Warn("Rows without account number skipped",
			"file", f.Path, "rows", skipped)
	}
	slog.Info("Legacy file loaded",
		"table", f.Table,
		"file", f.Path,
		"rows", humanize.Comma(total),
	)
	gn.Info("Loaded <em>%s</em> rows into %s", humanize.Comma(total), f.Table)
	return total, nil
}

func columnPosition(cols []columnIndex, name string) int {
	for i, v := range cols {
		if v.name == name {
			return i
		}
	}
	return -1
}

// analyze refreshes statistics of loaded tables, so the window
// queries of migration get a good plan. Failure is not fatal.
func (l *loader) analyze(ctx context.Context, w RowWriter, res map[string]int64) {
	start := time.Now()
	tables := slices.Sorted(maps.Keys(res))
	if err := w.Analyze(ctx, tables); err != nil {
		slog.Warn("Cannot analyze legacy tables", "tables", tables, "error", err)
		return
	}
	slog.Info("Legacy tables analyzed",
		"tables", tables,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
}
