// Package iomigrate converts legacy staging rows into the canonical
// model. This is an impure I/O package that implements
// lifecycle.Migrator.
//
// Legacy properties are read in windows ordered by account number. Every
// window is one transaction and every record in it runs in a savepoint,
// so a failing record is rolled back alone, and a failing window loses
// only its own records.
package iomigrate

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/ptnexus/apdb/pkg/config"
	"github.com/ptnexus/apdb/pkg/db"
	"github.com/ptnexus/apdb/pkg/lifecycle"
	"github.com/ptnexus/apdb/pkg/schema"
	"gorm.io/gorm"
)

type migrator struct {
	cfg          *config.Config
	operator     db.Operator
	bootstrapper lifecycle.Bootstrapper
	state        atomic.Int32

	// windowHook runs after every committed window, used in tests.
	windowHook func(offset int)
}

// New creates a Migrator. Reference data comes from b, it is created
// anew unless cfg.Migrate.Resume is set.
func New(
	cfg *config.Config,
	op db.Operator,
	b lifecycle.Bootstrapper,
) lifecycle.Migrator {
	return &migrator{cfg: cfg, operator: op, bootstrapper: b}
}

// State reports the current stage of the run.
func (m *migrator) State() lifecycle.State {
	return lifecycle.State(m.state.Load())
}

func (m *migrator) setState(s lifecycle.State) {
	m.state.Store(int32(s))
}

// MigrateAll bootstraps reference data and migrates all legacy
// properties. Counters are returned only when every window committed.
func (m *migrator) MigrateAll(ctx context.Context) (lifecycle.Counts, error) {
	m.setState(lifecycle.NotStarted)
	start := time.Now()

	gormDB, err := m.operator.GORM()
	if err != nil {
		m.setState(lifecycle.Failed)
		return nil, NotConnectedError(err)
	}
	gormDB = gormDB.WithContext(ctx)

	m.setState(lifecycle.Bootstrapping)
	ref, err := m.reference(ctx)
	if err != nil {
		m.setState(lifecycle.Failed)
		return nil, err
	}

	res := lifecycle.Counts{}
	res.Add(ref.Counts)

	var total int64
	if err = gormDB.Model(&schema.LegacyProperty{}).Count(&total).Error; err != nil {
		m.setState(lifecycle.Failed)
		return nil, CountError(err)
	}

	m.setState(lifecycle.Migrating)
	slog.Info("Migrating legacy properties",
		"total", humanize.Comma(total),
		"batch_size", m.batchSize(),
		"tax_year", m.cfg.Migrate.TaxYear,
	)

	bar := pb.Full.Start64(total)
	bar.Set("prefix", "Migrating properties: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	r := newRun(m.cfg, ref)
	for offset := 0; int64(offset) < total; offset += m.batchSize() {
		if err = ctx.Err(); err != nil {
			m.setState(lifecycle.Failed)
			return nil, CancelledError(offset, err)
		}

		counts, n, err := m.window(ctx, gormDB, r, offset)
		if err != nil {
			m.setState(lifecycle.Failed)
			if ctx.Err() != nil {
				return nil, CancelledError(offset, ctx.Err())
			}
			return nil, WindowError(offset, err)
		}

		res.Add(counts)
		bar.Add(n)
		slog.Debug("Window committed",
			"offset", offset,
			"records", n,
			"properties", counts[lifecycle.CountProperties],
			"failed", counts[lifecycle.CountFailedRecords],
		)
		if m.windowHook != nil {
			m.windowHook(offset)
		}
	}

	m.setState(lifecycle.Completed)
	slog.Info("Migration complete",
		"properties", humanize.Comma(int64(res[lifecycle.CountProperties])),
		"failed", res[lifecycle.CountFailedRecords],
		"duplicates", res[lifecycle.CountDuplicates],
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}

func (m *migrator) reference(ctx context.Context) (*lifecycle.Reference, error) {
	if m.cfg.Migrate.Resume {
		return m.bootstrapper.Existing(ctx)
	}
	return m.bootstrapper.Bootstrap(ctx)
}

// window migrates one slice of legacy properties in a transaction.
// Counters are returned only after the commit.
func (m *migrator) window(
	ctx context.Context,
	gormDB *gorm.DB,
	r *run,
	offset int,
) (lifecycle.Counts, int, error) {
	counts := lifecycle.Counts{}
	var n int

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		var rows []schema.LegacyProperty
		err := tx.Order("acct, id").
			Offset(offset).
			Limit(m.batchSize()).
			Find(&rows).Error
		if err != nil {
			return err
		}

		for i := range rows {
			if err = ctx.Err(); err != nil {
				return err
			}
			r.record(ctx, tx, &rows[i], counts)
		}
		n = len(rows)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if n == 0 {
		return nil, 0, errors.New("no legacy rows at offset, table changed during migration")
	}
	return counts, n, nil
}

func (m *migrator) batchSize() int {
	if m.cfg.Database.BatchSize < 1 {
		return 1000
	}
	return m.cfg.Database.BatchSize
}
